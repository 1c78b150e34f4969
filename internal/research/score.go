package research

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/nestscout/backend/internal/models"
)

// Score weights. Together they sum to 1.0.
const (
	budgetWeight       = 0.30
	locationWeight     = 0.25
	amenitiesWeight    = 0.20
	sizeWeight         = 0.15
	availabilityWeight = 0.10
)

// Default sub-scores applied when the criteria express no preference for a
// dimension. Distinct from "preference not met".
const (
	defaultBudgetScore    = 75
	defaultLocationScore  = 80
	defaultAmenitiesScore = 70
	defaultSizeScore      = 80
)

const maxResults = 10

// ScoreListings computes the five-dimension breakdown for every listing,
// ranks the set by descending overall score (stable on ties), and returns at
// most the top 10 with dense 1-based ranks.
func ScoreListings(listings []models.RawListing, criteria models.SearchCriteria) []models.ScoredListing {
	return scoreListingsAt(listings, criteria, time.Now())
}

func scoreListingsAt(listings []models.RawListing, criteria models.SearchCriteria, now time.Time) []models.ScoredListing {
	scored := make([]models.ScoredListing, 0, len(listings))

	for _, listing := range listings {
		breakdown := models.ScoreBreakdown{
			Budget:       scoreBudget(listing, criteria),
			Location:     scoreLocation(listing, criteria),
			Amenities:    scoreAmenities(listing, criteria),
			Size:         scoreSize(listing, criteria),
			Availability: scoreAvailability(listing, now),
		}
		breakdown.Overall = clampScore(math.Round(
			float64(breakdown.Budget)*budgetWeight +
				float64(breakdown.Location)*locationWeight +
				float64(breakdown.Amenities)*amenitiesWeight +
				float64(breakdown.Size)*sizeWeight +
				float64(breakdown.Availability)*availabilityWeight))

		scored = append(scored, models.ScoredListing{
			RawListing:     listing,
			Score:          breakdown.Overall,
			ScoreBreakdown: breakdown,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}

	// Ranks are assigned only after the full sort over the final set.
	for i := range scored {
		scored[i].Ranking = i + 1
	}

	return scored
}

func scoreBudget(listing models.RawListing, criteria models.SearchCriteria) int {
	if !criteria.HasBudget() {
		return defaultBudgetScore
	}

	maxRent := float64(*criteria.MaxRent)
	rent := float64(listing.Rent)

	if listing.Rent <= *criteria.MaxRent {
		// A listing at exactly the ceiling scores ~70; lower rents score higher.
		return clampScore(math.Round(math.Max(0, 100-(rent/maxRent*100-70))))
	}
	// Over budget: decay from 50 toward 0.
	return clampScore(math.Round(math.Max(0, 50-((rent-maxRent)/maxRent)*100)))
}

func scoreLocation(listing models.RawListing, criteria models.SearchCriteria) int {
	if len(criteria.Neighborhoods) == 0 {
		return defaultLocationScore
	}

	neighborhood := extractNeighborhood(listing.Address)
	for _, wanted := range criteria.Neighborhoods {
		if wanted == neighborhood {
			return 100
		}
	}
	return 60
}

func scoreAmenities(listing models.RawListing, criteria models.SearchCriteria) int {
	if len(criteria.Amenities) == 0 {
		return defaultAmenitiesScore
	}

	matched := 0
	for _, wanted := range criteria.Amenities {
		for _, have := range listing.Amenities {
			if strings.Contains(strings.ToLower(have), strings.ToLower(wanted)) {
				matched++
				break
			}
		}
	}

	return clampScore(math.Round(float64(matched) / float64(len(criteria.Amenities)) * 100))
}

func scoreSize(listing models.RawListing, criteria models.SearchCriteria) int {
	if !criteria.HasBedrooms() {
		return defaultSizeScore
	}

	diff := listing.Bedrooms - *criteria.Bedrooms
	if diff < 0 {
		diff = -diff
	}

	switch diff {
	case 0:
		return 100
	case 1:
		return 75
	default:
		return 50
	}
}

func scoreAvailability(listing models.RawListing, now time.Time) int {
	availableDate, err := time.Parse("2006-01-02", listing.AvailableDate)
	if err != nil {
		// Unparseable dates were defaulted at ingestion; treat as available now.
		return 100
	}

	days := int(math.Ceil(availableDate.Sub(now).Hours() / 24))
	switch {
	case days <= 0:
		return 100
	case days <= 30:
		return 90
	case days <= 60:
		return 70
	default:
		return 50
	}
}

// extractNeighborhood takes the second comma-delimited token of the address.
func extractNeighborhood(address string) string {
	parts := strings.Split(address, ", ")
	if len(parts) > 1 {
		return parts[1]
	}
	return "Unknown"
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
