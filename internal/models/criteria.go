package models

// SearchCriteria is the normalized apartment search filter. Every field is
// optional; a zero/nil value means "no preference", which the scorer treats
// differently from "preference not met".
type SearchCriteria struct {
	Bedrooms      *int     `json:"bedrooms,omitempty"`
	Bathrooms     *float64 `json:"bathrooms,omitempty"`
	MaxRent       *int     `json:"maxRent,omitempty"`
	Neighborhoods []string `json:"neighborhoods,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	PetFriendly   bool     `json:"petFriendly,omitempty"`
	MoveInDate    string   `json:"moveInDate,omitempty"`
	Commute       string   `json:"commute,omitempty"`
}

// HasBudget reports whether a rent ceiling was specified.
func (c SearchCriteria) HasBudget() bool {
	return c.MaxRent != nil && *c.MaxRent > 0
}

// HasBedrooms reports whether a bedroom preference was specified.
func (c SearchCriteria) HasBedrooms() bool {
	return c.Bedrooms != nil && *c.Bedrooms >= 0
}
