package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllReturnsCopy(t *testing.T) {
	first := All()
	require.NotEmpty(t, first)

	first[0].Domain = "mutated.example"

	second := All()
	assert.NotEqual(t, "mutated.example", second[0].Domain, "callers cannot mutate the registry")
}

func TestByID(t *testing.T) {
	source, ok := ByID("craigslist")
	require.True(t, ok)
	assert.Equal(t, "Craigslist", source.Name)
	assert.Equal(t, ProviderCrawl, source.Provider)

	_, ok = ByID("unknown")
	assert.False(t, ok)
}

func TestRegistryProviders(t *testing.T) {
	for _, source := range All() {
		assert.NotEmpty(t, source.ID)
		assert.NotEmpty(t, source.Domain)
		if source.ID == "craigslist" {
			assert.Equal(t, ProviderCrawl, source.Provider)
		} else {
			assert.Equal(t, ProviderSearch, source.Provider)
		}
	}
}
