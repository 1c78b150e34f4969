package research

import (
	"fmt"
	"strings"

	"github.com/nestscout/backend/internal/models"
	"github.com/nestscout/backend/internal/sources"
)

// Query is one per-source search request produced by the query builder.
type Query struct {
	Text   string
	Domain string
	Source sources.Source
}

// BuildQueries turns search criteria into one site-restricted query per
// configured source. Deterministic for identical inputs; no side effects.
func BuildQueries(criteria models.SearchCriteria, registry []sources.Source) []Query {
	parts := []string{"apartment for rent"}

	if criteria.HasBedrooms() {
		parts = append(parts, fmt.Sprintf("%d bedroom", *criteria.Bedrooms))
	}
	if len(criteria.Neighborhoods) > 0 {
		parts = append(parts, strings.Join(criteria.Neighborhoods, " OR "))
	}
	if criteria.HasBudget() {
		parts = append(parts, fmt.Sprintf("under $%d", *criteria.MaxRent))
	}
	if len(criteria.Amenities) > 0 {
		parts = append(parts, strings.Join(criteria.Amenities, " "))
	}
	if criteria.PetFriendly {
		parts = append(parts, "pet friendly")
	}

	baseQuery := strings.Join(parts, " ")

	queries := make([]Query, 0, len(registry))
	for _, source := range registry {
		queries = append(queries, Query{
			Text:   fmt.Sprintf("%s site:%s", baseQuery, source.Domain),
			Domain: source.Domain,
			Source: source,
		})
	}

	return queries
}
