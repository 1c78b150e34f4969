package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nestscout/backend/internal/models"
	"github.com/sirupsen/logrus"
)

const requirementsPrompt = `You are an AI agent designed to take a request to find an apartment and condense it into key criteria the user is searching for. You will output your criteria as a JSON dictionary. Each dictionary would have a key, which is the type of requirement, and a value, whose datatype depends on the key. Do not include null or none values. The possible keys are:
1. bedrooms (number)
2. bathrooms (number)
3. maxRent (number)
4. neighborhoods (String[])
5. amenities (String[])
6. petFriendly (boolean)
7. moveInDate (String)
8. commute (String)

Do not include any other text, and do not make ANY assumptions about the user's intent.

Request: `

const suggestionsPrompt = `You are an AI agent designed to take a request to find an apartment and create suggestions to make that request more specific. You will output your suggestions as JSON in the format {"drafts": "...", "final": ["suggestion 1", "suggestion 2"]}. Use the draft space to think through your suggestions before finalizing them. Limit yourself to a maximum of 2 suggestions, focus only on details that are necessary to find a good apartment, and do not ask for clarification of self-explanatory terms. Do not include any other text. Make sure the output is valid JSON.

Request: `

// Service wraps the completion client with the prompt contracts this backend
// owns: criteria condensation and refinement suggestions.
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

// ParseRequirements condenses a free-text apartment request into structured
// search criteria.
func (s *Service) ParseRequirements(ctx context.Context, text string) (models.SearchCriteria, error) {
	var criteria models.SearchCriteria

	response, err := s.client.GenerateContent(ctx, requirementsPrompt+text)
	if err != nil {
		return criteria, err
	}

	if err := json.Unmarshal([]byte(stripFences(response)), &criteria); err != nil {
		s.logger.WithError(err).WithField("response", response).Error("Failed to parse criteria response")
		return criteria, fmt.Errorf("failed to parse criteria: %w", err)
	}

	return criteria, nil
}

// Suggestions asks the model for up to two refinement suggestions for a
// free-text apartment request.
func (s *Service) Suggestions(ctx context.Context, text string) ([]string, error) {
	response, err := s.client.GenerateContent(ctx, suggestionsPrompt+text)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Drafts string   `json:"drafts"`
		Final  []string `json:"final"`
	}
	if err := json.Unmarshal([]byte(stripFences(response)), &parsed); err != nil {
		s.logger.WithError(err).WithField("response", response).Error("Failed to parse suggestions response")
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}

	return parsed.Final, nil
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
