package exa

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

func TestClientSearchSendsAuthAndPayload(t *testing.T) {
	var gotRequest SearchRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		json.NewEncoder(w).Encode(SearchResponse{
			Results: []Result{{URL: "https://zillow.com/a", Title: "Listing A", Text: "2br"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	resp, err := client.Search(context.Background(), SearchRequest{Query: "apartment", Type: "keyword"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Listing A", resp.Results[0].Title)
	assert.Equal(t, "apartment", gotRequest.Query)
	assert.Equal(t, "keyword", gotRequest.Type)
}

func TestClientSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", testLogger())

	_, err := client.Search(context.Background(), SearchRequest{Query: "apartment"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestServiceSearchListings(t *testing.T) {
	var gotRequest SearchRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		json.NewEncoder(w).Encode(SearchResponse{
			Results: []Result{
				{URL: "https://zillow.com/a", Title: "A", Text: "2br $2500", Highlights: []string{"rent $2500"}},
				{URL: "https://zillow.com/b", Title: "B", Text: "1br $1800"},
			},
		})
	}))
	defer server.Close()

	service := NewService(NewClient(server.URL, "test-key", testLogger()), testLogger())

	snippets, err := service.SearchListings(context.Background(), "apartment for rent site:zillow.com", "zillow.com")
	require.NoError(t, err)
	require.Len(t, snippets, 2)

	assert.Equal(t, "https://zillow.com/a", snippets[0].URL)
	assert.Equal(t, []string{"rent $2500"}, snippets[0].Highlights)

	assert.Equal(t, "keyword", gotRequest.Type)
	assert.True(t, gotRequest.UseAutoprompt)
	assert.Equal(t, 10, gotRequest.NumResults)
	assert.Equal(t, []string{"zillow.com"}, gotRequest.IncludeDomains)
	require.NotNil(t, gotRequest.Contents)
	assert.True(t, gotRequest.Contents.Text)
	require.NotNil(t, gotRequest.Contents.Highlights)
}

func TestServiceSearchListingsEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer server.Close()

	service := NewService(NewClient(server.URL, "test-key", testLogger()), testLogger())

	snippets, err := service.SearchListings(context.Background(), "apartment", "")
	require.NoError(t, err, "an empty result set is not an error")
	assert.Empty(t, snippets)
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(SearchResponse{Results: []Result{{Title: "recovered"}}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	resp, err := client.SearchWithRetry(context.Background(), SearchRequest{Query: "apartment"})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "recovered", resp.Results[0].Title)
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("http://127.0.0.1:0", "test-key", testLogger())

	_, err := client.SearchWithRetry(ctx, SearchRequest{Query: "apartment"})
	assert.ErrorIs(t, err, context.Canceled)
}
