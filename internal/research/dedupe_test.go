package research

import (
	"testing"

	"github.com/nestscout/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDeduplicateCaseInsensitiveAddress(t *testing.T) {
	listings := []models.RawListing{
		{ID: "a", Address: "123 Main St, Brooklyn", Bedrooms: 2, Rent: 2500},
		{ID: "b", Address: "123 MAIN ST, Brooklyn", Bedrooms: 2, Rent: 2500},
		{ID: "c", Address: "123 Main St, Brooklyn", Bedrooms: 3, Rent: 2500},
	}

	unique := Deduplicate(listings)

	assert.Len(t, unique, 2)
	assert.Equal(t, "a", unique[0].ID, "first occurrence wins")
	assert.Equal(t, "c", unique[1].ID, "different bedrooms is not a duplicate")
}

func TestDeduplicatePreservesOrder(t *testing.T) {
	listings := []models.RawListing{
		{ID: "x", Address: "1 First Ave", Bedrooms: 1, Rent: 1000},
		{ID: "y", Address: "2 Second Ave", Bedrooms: 1, Rent: 1100},
		{ID: "z", Address: "1 First Ave", Bedrooms: 1, Rent: 1000},
	}

	unique := Deduplicate(listings)

	assert.Equal(t, []string{"x", "y"}, []string{unique[0].ID, unique[1].ID})
}

func TestDeduplicateIdempotent(t *testing.T) {
	listings := []models.RawListing{
		{ID: "a", Address: "10 Elm St", Bedrooms: 2, Rent: 2000},
		{ID: "b", Address: "10 elm st", Bedrooms: 2, Rent: 2000},
		{ID: "c", Address: "11 Elm St", Bedrooms: 2, Rent: 2000},
	}

	once := Deduplicate(listings)
	twice := Deduplicate(once)
	assert.Equal(t, once, twice)
}

func TestDeduplicateEmpty(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
	assert.Empty(t, Deduplicate([]models.RawListing{}))
}
