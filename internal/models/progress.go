package models

import "time"

// Research session lifecycle states. Terminal states are absorbing.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// ResearchProgress is the polling snapshot of one research session. It is
// owned by the progress tracker; the orchestrator mutates it only through the
// tracker's update contract.
type ResearchProgress struct {
	SessionID              string     `json:"sessionId"`
	Status                 string     `json:"status"`
	Progress               int        `json:"progress"` // 0-100
	Message                string     `json:"message"`
	CurrentStep            string     `json:"currentStep"`
	CurrentStepIndex       int        `json:"currentStepIndex"`
	TotalSteps             int        `json:"totalSteps"`
	StartedAt              time.Time  `json:"startedAt"`
	LastUpdatedAt          time.Time  `json:"lastUpdatedAt"`
	CompletedAt            *time.Time `json:"completedAt,omitempty"`
	Error                  string     `json:"error,omitempty"`
	EstimatedTimeRemaining string     `json:"estimatedTimeRemaining,omitempty"`
}

// Terminal reports whether the session has reached an absorbing state.
func (p ResearchProgress) Terminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusError
}

// ProgressUpdate carries the fields an update merges into a stored session.
// Nil pointers leave the stored value untouched.
type ProgressUpdate struct {
	Status           *string
	Progress         *int
	Message          *string
	CurrentStep      *string
	CurrentStepIndex *int
	Error            *string
}
