package models

// PropertySource identifies a listings origin. Instances live in the fixed
// registry under internal/sources and are treated as immutable reference data.
type PropertySource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// ContactInfo carries whatever contact details the extraction step recovered.
// Any field may be absent.
type ContactInfo struct {
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Website *string `json:"website"`
}

// RawListing is an unscored candidate apartment. Listings with Rent <= 0 are
// dropped at ingestion and never reach the scorer.
type RawListing struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Address       string         `json:"address"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	Bedrooms      int            `json:"bedrooms"`
	Bathrooms     float64        `json:"bathrooms"`
	Rent          int            `json:"rent"`
	SquareFeet    *int           `json:"squareFeet,omitempty"`
	AvailableDate string         `json:"availableDate"`
	Amenities     []string       `json:"amenities"`
	Photos        []string       `json:"photos"`
	Contact       ContactInfo    `json:"contact"`
	Source        PropertySource `json:"source"`
}

// ScoreBreakdown holds the five weighted sub-scores plus the combined score,
// each on a 0-100 integer scale.
type ScoreBreakdown struct {
	Budget       int `json:"budget"`
	Location     int `json:"location"`
	Amenities    int `json:"amenities"`
	Size         int `json:"size"`
	Availability int `json:"availability"`
	Overall      int `json:"overall"`
}

// ScoredListing is a RawListing with its score breakdown and 1-based rank.
// Ranks are contiguous starting at 1 and assigned only after the full sort.
type ScoredListing struct {
	RawListing
	Score          int            `json:"score"`
	ScoreBreakdown ScoreBreakdown `json:"scoreBreakdown"`
	Ranking        int            `json:"ranking"`
}
