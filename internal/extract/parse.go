package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nestscout/backend/internal/models"
)

// placeholderPhoto is used when the extraction output carries no photo URLs.
const placeholderPhoto = "/placeholder.svg?height=400&width=600&query=apartment"

// wireListing is the loosely-typed shape the completion capability returns.
// Numeric fields arrive as numbers or strings depending on the model's mood,
// so everything passes through an explicit coercion step.
type wireListing struct {
	Name          string      `json:"name"`
	Address       string      `json:"address"`
	Latitude      interface{} `json:"latitude"`
	Longitude     interface{} `json:"longitude"`
	Bedrooms      interface{} `json:"bedrooms"`
	Bathrooms     interface{} `json:"bathrooms"`
	Rent          interface{} `json:"rent"`
	SquareFeet    interface{} `json:"squareFeet"`
	AvailableDate string      `json:"availableDate"`
	Amenities     interface{} `json:"amenities"`
	Photos        interface{} `json:"photos"`
	Contact       struct {
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
		Website *string `json:"website"`
	} `json:"contact"`
}

// ParseListings converts the completion output into validated RawListings.
// Each accepted listing gets a synthetic source-scoped identifier; listings
// with rent <= 0 are dropped.
func ParseListings(response string, source models.PropertySource) ([]models.RawListing, error) {
	var wire []wireListing
	if err := json.Unmarshal([]byte(stripFences(response)), &wire); err != nil {
		return nil, fmt.Errorf("malformed extraction output: %w", err)
	}

	stamp := time.Now().UnixMilli()
	listings := make([]models.RawListing, 0, len(wire))

	for i, w := range wire {
		listing := models.RawListing{
			ID:            fmt.Sprintf("%s-%d-%d", source.ID, stamp, i),
			Name:          defaultString(w.Name, "Unnamed Property"),
			Address:       defaultString(w.Address, "Address not provided"),
			Latitude:      toFloat(w.Latitude, 0),
			Longitude:     toFloat(w.Longitude, 0),
			Bedrooms:      toInt(w.Bedrooms, 1),
			Bathrooms:     toFloat(w.Bathrooms, 1),
			Rent:          toInt(w.Rent, 0),
			AvailableDate: normalizeDate(w.AvailableDate),
			Amenities:     toStringSlice(w.Amenities, []string{}),
			Photos:        toStringSlice(w.Photos, []string{placeholderPhoto}),
			Contact: models.ContactInfo{
				Phone:   w.Contact.Phone,
				Email:   w.Contact.Email,
				Website: w.Contact.Website,
			},
			Source: source,
		}

		if sqft := toInt(w.SquareFeet, 0); sqft > 0 {
			listing.SquareFeet = &sqft
		}

		// Sole hard validation gate: a listing without real pricing is noise.
		if listing.Rent <= 0 {
			continue
		}

		listings = append(listings, listing)
	}

	return listings, nil
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	return strings.TrimSpace(text)
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func toInt(v interface{}, fallback int) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(t, "$"))); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return int(f)
		}
	}
	return fallback
}

func toFloat(v interface{}, fallback float64) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return fallback
}

func toStringSlice(v interface{}, fallback []string) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return fallback
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func normalizeDate(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return time.Now().Format("2006-01-02")
	}
	return v
}
