// Package sources holds the closed registry of property listing origins the
// research engine queries. The set is fixed at compile time; callers never
// mutate it.
package sources

import (
	"github.com/nestscout/backend/internal/models"
)

// Provider selects how a source's snippets are obtained.
type Provider int

const (
	// ProviderSearch sources are queried through the web-search API with a
	// site restriction.
	ProviderSearch Provider = iota
	// ProviderCrawl sources are fetched directly from the source's own
	// search page.
	ProviderCrawl
)

// Source pairs a PropertySource with its snippet provider and domain.
type Source struct {
	models.PropertySource
	Domain   string
	Provider Provider
}

var registry = []Source{
	{PropertySource: models.PropertySource{ID: "apartments", Name: "Apartments.com", URL: "https://apartments.com"}, Domain: "apartments.com", Provider: ProviderSearch},
	{PropertySource: models.PropertySource{ID: "zillow", Name: "Zillow", URL: "https://zillow.com"}, Domain: "zillow.com", Provider: ProviderSearch},
	{PropertySource: models.PropertySource{ID: "streeteasy", Name: "StreetEasy", URL: "https://streeteasy.com"}, Domain: "streeteasy.com", Provider: ProviderSearch},
	{PropertySource: models.PropertySource{ID: "craigslist", Name: "Craigslist", URL: "https://craigslist.org"}, Domain: "craigslist.org", Provider: ProviderCrawl},
}

// All returns a copy of the registry in its fixed order.
func All() []Source {
	out := make([]Source, len(registry))
	copy(out, registry)
	return out
}

// ByID looks a source up by its stable identifier.
func ByID(id string) (Source, bool) {
	for _, s := range registry {
		if s.ID == id {
			return s, true
		}
	}
	return Source{}, false
}
