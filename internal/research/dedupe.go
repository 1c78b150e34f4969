package research

import (
	"fmt"
	"strings"

	"github.com/nestscout/backend/internal/models"
)

// Deduplicate collapses near-identical listings across sources. Two listings
// are the same when their case-folded address, bedroom count, and rent all
// match exactly; the first occurrence wins and input order is preserved.
func Deduplicate(listings []models.RawListing) []models.RawListing {
	seen := make(map[string]struct{}, len(listings))
	unique := make([]models.RawListing, 0, len(listings))

	for _, listing := range listings {
		key := fmt.Sprintf("%s-%d-%d", strings.ToLower(listing.Address), listing.Bedrooms, listing.Rent)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, listing)
	}

	return unique
}
