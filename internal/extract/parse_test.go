package extract

import (
	"testing"
	"time"

	"github.com/nestscout/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSource = models.PropertySource{ID: "zillow", Name: "Zillow"}

func TestParseListingsCoercesStringNumbers(t *testing.T) {
	response := `[{
		"name": "Sunny 2BR",
		"address": "123 Main St, Williamsburg, Brooklyn",
		"bedrooms": "2",
		"bathrooms": "1.5",
		"rent": "$2500",
		"squareFeet": "850",
		"availableDate": "2026-02-01",
		"amenities": ["gym", "laundry"]
	}]`

	listings, err := ParseListings(response, testSource)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	l := listings[0]
	assert.Equal(t, 2, l.Bedrooms)
	assert.Equal(t, 1.5, l.Bathrooms)
	assert.Equal(t, 2500, l.Rent)
	require.NotNil(t, l.SquareFeet)
	assert.Equal(t, 850, *l.SquareFeet)
	assert.Equal(t, "2026-02-01", l.AvailableDate)
	assert.Equal(t, []string{"gym", "laundry"}, l.Amenities)
	assert.Equal(t, testSource, l.Source)
}

func TestParseListingsAppliesDefaults(t *testing.T) {
	response := `[{"rent": 1800}]`

	listings, err := ParseListings(response, testSource)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	l := listings[0]
	assert.Equal(t, "Unnamed Property", l.Name)
	assert.Equal(t, "Address not provided", l.Address)
	assert.Equal(t, 1, l.Bedrooms)
	assert.Equal(t, 1.0, l.Bathrooms)
	assert.Nil(t, l.SquareFeet)
	assert.Equal(t, time.Now().Format("2006-01-02"), l.AvailableDate, "missing date defaults to today")
	assert.Empty(t, l.Amenities)
	assert.Equal(t, []string{placeholderPhoto}, l.Photos)
}

func TestParseListingsDropsZeroRent(t *testing.T) {
	response := `[
		{"name": "No price", "rent": 0},
		{"name": "Negative", "rent": -100},
		{"name": "Garbage rent", "rent": "call for pricing"},
		{"name": "Keeper", "rent": 2000}
	]`

	listings, err := ParseListings(response, testSource)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Keeper", listings[0].Name)
}

func TestParseListingsStripsCodeFences(t *testing.T) {
	response := "```json\n[{\"name\": \"Fenced\", \"rent\": 1500}]\n```"

	listings, err := ParseListings(response, testSource)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Fenced", listings[0].Name)
}

func TestParseListingsMalformedJSON(t *testing.T) {
	_, err := ParseListings("I could not find any listings, sorry!", testSource)
	assert.Error(t, err)

	_, err = ParseListings(`{"not": "an array"}`, testSource)
	assert.Error(t, err)
}

func TestParseListingsInvalidDateDefaultsToToday(t *testing.T) {
	response := `[{"rent": 2000, "availableDate": "next month sometime"}]`

	listings, err := ParseListings(response, testSource)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, time.Now().Format("2006-01-02"), listings[0].AvailableDate)
}

func TestParseListingsIDsAreSourceScopedAndUnique(t *testing.T) {
	response := `[{"rent": 1000}, {"rent": 1100}, {"rent": 1200}]`

	listings, err := ParseListings(response, testSource)
	require.NoError(t, err)
	require.Len(t, listings, 3)

	seen := make(map[string]bool)
	for _, l := range listings {
		assert.Contains(t, l.ID, "zillow-")
		assert.False(t, seen[l.ID], "ids must be unique within a batch")
		seen[l.ID] = true
	}
}

func TestParseListingsContactPassthrough(t *testing.T) {
	response := `[{"rent": 2000, "contact": {"phone": "555-0100", "email": null}}]`

	listings, err := ParseListings(response, testSource)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	contact := listings[0].Contact
	require.NotNil(t, contact.Phone)
	assert.Equal(t, "555-0100", *contact.Phone)
	assert.Nil(t, contact.Email)
	assert.Nil(t, contact.Website)
}
