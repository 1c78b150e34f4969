// Package progress tracks research sessions: the orchestrator writes stage
// updates, polling clients read snapshots until the session is terminal.
package progress

import (
	"errors"

	"github.com/nestscout/backend/internal/models"
)

// ErrSessionNotFound is returned when a session id is unknown or was cleaned up.
var ErrSessionNotFound = errors.New("session not found")

// Store persists session records. Implementations must make Set a whole-record
// replace so readers never observe a torn update.
type Store interface {
	Get(sessionID string) (models.ResearchProgress, error)
	Set(session models.ResearchProgress) error
	Delete(sessionID string) error
	All() ([]models.ResearchProgress, error)
}
