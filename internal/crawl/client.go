// Package crawl fetches listing snippets directly from a source's own search
// page, for registry sources that the web-search API does not cover well.
package crawl

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/nestscout/backend/internal/models"
	"github.com/sirupsen/logrus"
)

type Client struct {
	scheme     string
	maxResults int
	timeout    time.Duration
	logger     *logrus.Logger
}

func NewClient(logger *logrus.Logger) *Client {
	return &Client{
		scheme:     "https",
		maxResults: 10,
		timeout:    30 * time.Second,
		logger:     logger,
	}
}

// SearchListings fetches the source's apartment search page for the given
// query and returns one snippet per result row. An empty page yields a single
// whole-page snippet so the extraction step still has material to work with.
func (c *Client) SearchListings(query, domain string) ([]models.Snippet, error) {
	searchURL := fmt.Sprintf("%s://%s/search/apa?query=%s", c.scheme, domain, url.QueryEscape(query))

	collector := colly.NewCollector(
		colly.UserAgent("NestScout-Bot/1.0"),
	)
	collector.SetRequestTimeout(c.timeout)

	var snippets []models.Snippet
	var pageTitle, pageText string
	var fetchErr error

	collector.OnHTML("li.result-row, li.cl-static-search-result, div.result-info", func(e *colly.HTMLElement) {
		if len(snippets) >= c.maxResults {
			return
		}

		title := strings.TrimSpace(e.ChildText("a"))
		link := e.ChildAttr("a", "href")
		if title == "" || link == "" {
			return
		}

		snippets = append(snippets, models.Snippet{
			URL:   e.Request.AbsoluteURL(link),
			Title: title,
			Text:  strings.TrimSpace(e.Text),
		})
	})

	collector.OnHTML("title", func(e *colly.HTMLElement) {
		pageTitle = strings.TrimSpace(e.Text)
	})

	collector.OnHTML("body", func(e *colly.HTMLElement) {
		pageText = strings.TrimSpace(e.Text)
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := collector.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to visit search page: %w", err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fmt.Errorf("crawl error: %w", fetchErr)
	}

	// No structured rows matched: hand the whole page to extraction.
	if len(snippets) == 0 && pageText != "" {
		snippets = append(snippets, models.Snippet{
			URL:   searchURL,
			Title: pageTitle,
			Text:  pageText,
		})
	}

	c.logger.WithFields(logrus.Fields{
		"domain":  domain,
		"results": len(snippets),
	}).Debug("Crawl search completed")

	return snippets, nil
}
