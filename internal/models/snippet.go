package models

// Snippet is one raw search result before extraction: a URL plus whatever
// text the search capability returned for it.
type Snippet struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Highlights []string `json:"highlights,omitempty"`
}
