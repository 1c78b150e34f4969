package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func completionServer(t *testing.T, responseText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		json.NewEncoder(w).Encode(GenerateResponse{
			Candidates: []Candidate{{Content: Content{Parts: []Part{{Text: responseText}}}}},
		})
	}))
}

func newTestService(t *testing.T, responseText string) (*Service, *httptest.Server) {
	t.Helper()
	server := completionServer(t, responseText)
	client := NewClient(server.URL, "test-key", "gemini-2.5-pro", testLogger())
	return NewService(client, testLogger()), server
}

func TestParseRequirements(t *testing.T) {
	service, server := newTestService(t, `{"bedrooms": 2, "maxRent": 3000, "neighborhoods": ["Williamsburg"], "petFriendly": true}`)
	defer server.Close()

	criteria, err := service.ParseRequirements(context.Background(), "2 bedroom in Williamsburg under 3000, I have a cat")
	require.NoError(t, err)

	require.NotNil(t, criteria.Bedrooms)
	assert.Equal(t, 2, *criteria.Bedrooms)
	require.NotNil(t, criteria.MaxRent)
	assert.Equal(t, 3000, *criteria.MaxRent)
	assert.Equal(t, []string{"Williamsburg"}, criteria.Neighborhoods)
	assert.True(t, criteria.PetFriendly)
	assert.Nil(t, criteria.Bathrooms)
}

func TestParseRequirementsFencedResponse(t *testing.T) {
	service, server := newTestService(t, "```json\n{\"bedrooms\": 1}\n```")
	defer server.Close()

	criteria, err := service.ParseRequirements(context.Background(), "studio or 1br")
	require.NoError(t, err)
	require.NotNil(t, criteria.Bedrooms)
	assert.Equal(t, 1, *criteria.Bedrooms)
}

func TestParseRequirementsMalformedResponse(t *testing.T) {
	service, server := newTestService(t, "Sure! Here are your criteria: bedrooms=2")
	defer server.Close()

	_, err := service.ParseRequirements(context.Background(), "2 bedroom")
	assert.Error(t, err)
}

func TestSuggestions(t *testing.T) {
	service, server := newTestService(t, `{"drafts": "thinking...", "final": ["What is your budget?", "Which neighborhoods?"]}`)
	defer server.Close()

	suggestions, err := service.Suggestions(context.Background(), "I need an apartment")
	require.NoError(t, err)
	assert.Equal(t, []string{"What is your budget?", "Which neighborhoods?"}, suggestions)
}

func TestGenerateContentEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerateResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-2.5-pro", testLogger())

	_, err := client.GenerateContent(context.Background(), "hello")
	assert.Error(t, err)
}

func TestGenerateContentErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "quota exceeded"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-2.5-pro", testLogger())

	_, err := client.GenerateContent(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
