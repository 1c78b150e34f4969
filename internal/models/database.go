package models

import (
	"time"
)

// ResearchQuery is the analytics record written after each research run.
type ResearchQuery struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	SessionID      string    `json:"session_id" gorm:"index;not null"`
	CriteriaJSON   string    `json:"criteria_json"`
	ResultsCount   int       `json:"results_count"`
	Status         string    `json:"status"`
	ResponseTimeMs int       `json:"response_time_ms"`
	UserAgent      string    `json:"user_agent"`
	IPAddress      string    `json:"ip_address"`
	CreatedAt      time.Time `json:"created_at" gorm:"default:now()"`
}
