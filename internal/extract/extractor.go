// Package extract owns the listing-extraction contract: it assembles the
// prompt sent to the completion capability and defensively converts whatever
// JSON comes back into validated RawListings.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/nestscout/backend/internal/models"
	"github.com/sirupsen/logrus"
)

// CompletionClient is the text-completion capability the extractor calls.
type CompletionClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Extractor struct {
	client CompletionClient
	logger *logrus.Logger
}

func NewExtractor(client CompletionClient, logger *logrus.Logger) *Extractor {
	return &Extractor{
		client: client,
		logger: logger,
	}
}

// ExtractListings turns a batch of raw snippets into validated listings for
// one source. Listings without a positive rent are dropped. A malformed
// completion response is returned as an error; callers absorb it per source.
func (e *Extractor) ExtractListings(ctx context.Context, snippets []models.Snippet, criteria models.SearchCriteria, source models.PropertySource) ([]models.RawListing, error) {
	if len(snippets) == 0 {
		return nil, nil
	}

	prompt := buildPrompt(snippets, criteria)

	response, err := e.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}

	listings, err := ParseListings(response, source)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"source":   source.ID,
		"snippets": len(snippets),
		"listings": len(listings),
	}).Debug("Extraction completed")

	return listings, nil
}

func buildPrompt(snippets []models.Snippet, criteria models.SearchCriteria) string {
	var b strings.Builder

	b.WriteString(`You are a real estate data extraction expert. Parse the following apartment listing content and extract structured data.

For each listing, extract:
- name: Property or building name
- address: Full street address
- bedrooms: Number of bedrooms (integer)
- bathrooms: Number of bathrooms (number, can be decimal like 1.5)
- rent: Monthly rent amount (integer, just the number)
- squareFeet: Square footage if available
- availableDate: When available (YYYY-MM-DD format, use today's date if "available now")
- amenities: Array of amenities mentioned
- photos: Array of photo URLs if any
- contact: Object with phone, email, website if available
- latitude/longitude: Approximate coordinates for the address (use NYC coordinates if unsure)

Search Criteria Context:
`)

	bedrooms := "any"
	if criteria.HasBedrooms() {
		bedrooms = fmt.Sprintf("%d", *criteria.Bedrooms)
	}
	maxRent := "any"
	if criteria.HasBudget() {
		maxRent = fmt.Sprintf("$%d", *criteria.MaxRent)
	}
	neighborhoods := "any NYC area"
	if len(criteria.Neighborhoods) > 0 {
		neighborhoods = strings.Join(criteria.Neighborhoods, ", ")
	}
	amenities := "none specified"
	if len(criteria.Amenities) > 0 {
		amenities = strings.Join(criteria.Amenities, ", ")
	}

	fmt.Fprintf(&b, "- Looking for: %s bedrooms, max rent %s\n", bedrooms, maxRent)
	fmt.Fprintf(&b, "- Neighborhoods: %s\n", neighborhoods)
	fmt.Fprintf(&b, "- Required amenities: %s\n\nContent to parse:\n", amenities)

	for i, snippet := range snippets {
		fmt.Fprintf(&b, "\n=== LISTING %d ===\nURL: %s\nTitle: %s\nContent: %s\nHighlights: %s\n---\n",
			i+1, snippet.URL, snippet.Title, snippet.Text, strings.Join(snippet.Highlights, " "))
	}

	b.WriteString(`
Return a valid JSON array of property objects. If no valid listings found, return empty array [].
Only include listings that appear to be legitimate apartment rentals with actual pricing information.
`)

	return b.String()
}
