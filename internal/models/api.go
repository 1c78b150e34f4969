package models

type ResearchRequest struct {
	SessionID string         `json:"sessionId"`
	Criteria  SearchCriteria `json:"criteria"`
}

type ResearchResponse struct {
	SessionID           string          `json:"sessionId"`
	Status              string          `json:"status"`
	Results             []ScoredListing `json:"results"`
	TotalFound          int             `json:"totalFound"`
	ResearchCompletedAt string          `json:"researchCompletedAt"`
	Note                string          `json:"note,omitempty"`
}

type RequirementsRequest struct {
	Text string `json:"text" binding:"required"`
}

type RequirementsResponse struct {
	Criteria SearchCriteria `json:"criteria"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type CallRequest struct {
	ListingName    string   `json:"listingName" binding:"required"`
	ListingAddress string   `json:"listingAddress" binding:"required"`
	UserQuestions  []string `json:"userQuestions"`
}

type CallResponse struct {
	CallID     string `json:"callId"`
	Status     string `json:"status"`
	Summary    string `json:"summary,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Note       string `json:"note,omitempty"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
