package exa

// Request models
type SearchRequest struct {
	Query          string    `json:"query"`
	Type           string    `json:"type,omitempty"`
	UseAutoprompt  bool      `json:"useAutoprompt,omitempty"`
	NumResults     int       `json:"numResults,omitempty"`
	IncludeDomains []string  `json:"includeDomains,omitempty"`
	Contents       *Contents `json:"contents,omitempty"`
}

type Contents struct {
	Text       bool        `json:"text,omitempty"`
	Highlights *Highlights `json:"highlights,omitempty"`
}

type Highlights struct {
	Query        string `json:"query,omitempty"`
	NumSentences int    `json:"numSentences,omitempty"`
}

// Response models
type SearchResponse struct {
	Results []Result `json:"results"`
}

type Result struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Highlights []string `json:"highlights"`
	Score      float64  `json:"score"`
}
