package exa

import (
	"context"

	"github.com/nestscout/backend/internal/models"
	"github.com/sirupsen/logrus"
)

// highlightQuery steers highlight extraction toward the rental details the
// extraction step needs.
const highlightQuery = "apartment rental details: rent, bedrooms, bathrooms, amenities, address, contact"

type Service struct {
	client *Client
	logger *logrus.Logger
}

func NewService(client *Client, logger *logrus.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// SearchListings runs one keyword search, optionally restricted to a single
// domain, and returns the raw snippets. An empty result set is not an error.
func (s *Service) SearchListings(ctx context.Context, query, domain string) ([]models.Snippet, error) {
	req := SearchRequest{
		Query:         query,
		Type:          "keyword",
		UseAutoprompt: true,
		NumResults:    10,
		Contents: &Contents{
			Text: true,
			Highlights: &Highlights{
				Query:        highlightQuery,
				NumSentences: 10,
			},
		},
	}
	if domain != "" {
		req.IncludeDomains = []string{domain}
	}

	response, err := s.client.SearchWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}

	snippets := make([]models.Snippet, 0, len(response.Results))
	for _, result := range response.Results {
		snippets = append(snippets, models.Snippet{
			URL:        result.URL,
			Title:      result.Title,
			Text:       result.Text,
			Highlights: result.Highlights,
		})
	}

	s.logger.WithFields(logrus.Fields{
		"query":   query,
		"domain":  domain,
		"results": len(snippets),
	}).Debug("Exa search completed")

	return snippets, nil
}
