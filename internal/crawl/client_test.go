package crawl

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient() *Client {
	return &Client{
		scheme:     "http",
		maxResults: 10,
		timeout:    5 * time.Second,
		logger:     testLogger(),
	}
}

const resultsPage = `<html><head><title>apartments / housing for rent</title></head><body>
<ul>
<li class="result-row"><a href="/apa/1.html">Sunny 2BR in Williamsburg - $2500</a> 2br 850ft</li>
<li class="result-row"><a href="/apa/2.html">Cozy 1BR near park - $1800</a> 1br 600ft</li>
<li class="result-row"><a href="/apa/3.html"></a></li>
</ul>
</body></html>`

func TestSearchListingsParsesResultRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/apa", r.URL.Path)
		assert.Equal(t, "2 bedroom apartment", r.URL.Query().Get("query"))
		w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	domain := strings.TrimPrefix(server.URL, "http://")
	snippets, err := newTestClient().SearchListings("2 bedroom apartment", domain)
	require.NoError(t, err)

	require.Len(t, snippets, 2, "rows without a title or link are skipped")
	assert.Equal(t, "Sunny 2BR in Williamsburg - $2500", snippets[0].Title)
	assert.Contains(t, snippets[0].URL, "/apa/1.html")
	assert.Contains(t, snippets[0].Text, "2br 850ft")
}

func TestSearchListingsWholePageFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>housing search</title></head><body>No structured rows here, just text about apartments.</body></html>`))
	}))
	defer server.Close()

	domain := strings.TrimPrefix(server.URL, "http://")
	snippets, err := newTestClient().SearchListings("apartment", domain)
	require.NoError(t, err)

	require.Len(t, snippets, 1)
	assert.Equal(t, "housing search", snippets[0].Title)
	assert.Contains(t, snippets[0].Text, "apartments")
}

func TestSearchListingsCapsResults(t *testing.T) {
	var page strings.Builder
	page.WriteString("<html><body><ul>")
	for i := 0; i < 25; i++ {
		page.WriteString(`<li class="result-row"><a href="/apa/x.html">Listing</a></li>`)
	}
	page.WriteString("</ul></body></html>")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page.String()))
	}))
	defer server.Close()

	domain := strings.TrimPrefix(server.URL, "http://")
	snippets, err := newTestClient().SearchListings("apartment", domain)
	require.NoError(t, err)
	assert.Len(t, snippets, 10)
}

func TestSearchListingsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	domain := strings.TrimPrefix(server.URL, "http://")
	_, err := newTestClient().SearchListings("apartment", domain)
	assert.Error(t, err)
}
