package voicecall

// Request models
type CreateCallRequest struct {
	AssistantID        string             `json:"assistantId"`
	PhoneNumberID      string             `json:"phoneNumberId"`
	Customer           Customer           `json:"customer"`
	AssistantOverrides AssistantOverrides `json:"assistantOverrides"`
}

type Customer struct {
	Number string `json:"number"`
}

type AssistantOverrides struct {
	VariableValues map[string]string `json:"variableValues"`
}

// Response models
type Call struct {
	ID       string    `json:"id"`
	Status   string    `json:"status"`
	Analysis *Analysis `json:"analysis,omitempty"`
	Artifact *Artifact `json:"artifact,omitempty"`
}

type Analysis struct {
	Summary string `json:"summary"`
}

type Artifact struct {
	Transcript string `json:"transcript"`
}

// CallResult is the outcome of waiting on a call. InProgress is set when the
// bounded wait ran out before the call reached a terminal state.
type CallResult struct {
	CallID     string
	Status     string
	Summary    string
	Transcript string
	InProgress bool
}
