package progress

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/nestscout/backend/internal/models"
	"github.com/sirupsen/logrus"
)

const totalSteps = 8

// etaCap drops the ETA string rather than report an implausibly large value.
const etaCap = 5 * time.Minute

// Tracker owns all session records for the process. Updates are serialized
// through a mutex and written to the store as whole-record replacements, so a
// polling reader always observes a consistent snapshot.
type Tracker struct {
	mu     sync.Mutex
	store  Store
	logger *logrus.Logger
	now    func() time.Time
}

func NewTracker(store Store, logger *logrus.Logger) *Tracker {
	return &Tracker{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// CreateSession registers a new pending session.
func (t *Tracker) CreateSession(sessionID string) (models.ResearchProgress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	session := models.ResearchProgress{
		SessionID:        sessionID,
		Status:           models.StatusPending,
		Progress:         0,
		Message:          "Initializing research...",
		CurrentStep:      "initialization",
		CurrentStepIndex: 0,
		TotalSteps:       totalSteps,
		StartedAt:        now,
		LastUpdatedAt:    now,
	}

	if err := t.store.Set(session); err != nil {
		return models.ResearchProgress{}, err
	}
	return session, nil
}

// UpdateProgress merges the supplied fields into the stored session, refreshes
// the last-updated timestamp, and derives an ETA from the observed progress rate.
func (t *Tracker) UpdateProgress(sessionID string, update models.ProgressUpdate) (models.ResearchProgress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, err := t.store.Get(sessionID)
	if err != nil {
		return models.ResearchProgress{}, err
	}

	now := t.now()

	if update.Progress != nil && *update.Progress > 0 && session.Progress > 0 {
		session.EstimatedTimeRemaining = t.estimateRemaining(session.StartedAt, *update.Progress, now)
	}

	if update.Status != nil {
		session.Status = *update.Status
	}
	if update.Progress != nil {
		session.Progress = *update.Progress
	}
	if update.Message != nil {
		session.Message = *update.Message
	}
	if update.CurrentStep != nil {
		session.CurrentStep = *update.CurrentStep
	}
	if update.CurrentStepIndex != nil {
		session.CurrentStepIndex = *update.CurrentStepIndex
	}
	if update.Error != nil {
		session.Error = *update.Error
	}
	session.LastUpdatedAt = now

	if session.Status == models.StatusCompleted {
		session.CompletedAt = &now
		session.EstimatedTimeRemaining = ""
	}

	if err := t.store.Set(session); err != nil {
		return models.ResearchProgress{}, err
	}
	return session, nil
}

// GetSession returns the current snapshot. Safe for arbitrary concurrent polling.
func (t *Tracker) GetSession(sessionID string) (models.ResearchProgress, error) {
	return t.store.Get(sessionID)
}

// CompleteSession marks the session completed with full progress.
func (t *Tracker) CompleteSession(sessionID string, resultCount int) error {
	status := models.StatusCompleted
	progress := 100
	message := fmt.Sprintf("Research completed - found %d apartments!", resultCount)
	step := "completed"

	_, err := t.UpdateProgress(sessionID, models.ProgressUpdate{
		Status:      &status,
		Progress:    &progress,
		Message:     &message,
		CurrentStep: &step,
	})
	return err
}

// FailSession marks the session errored with the failure message.
func (t *Tracker) FailSession(sessionID string, errMsg string) error {
	status := models.StatusError
	message := "Research failed"

	_, err := t.UpdateProgress(sessionID, models.ProgressUpdate{
		Status:  &status,
		Message: &message,
		Error:   &errMsg,
	})
	return err
}

// Cleanup removes sessions older than maxAge and returns how many were removed.
func (t *Tracker) Cleanup(maxAge time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	sessions, err := t.store.All()
	if err != nil {
		t.logger.WithError(err).Warn("Session cleanup sweep failed")
		return 0
	}

	cutoff := t.now().Add(-maxAge)
	removed := 0
	for _, session := range sessions {
		if session.StartedAt.Before(cutoff) {
			if err := t.store.Delete(session.SessionID); err != nil {
				t.logger.WithError(err).WithField("session_id", session.SessionID).Warn("Failed to delete session")
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		t.logger.WithField("removed", removed).Info("Cleaned up old research sessions")
	}
	return removed
}

// RunCleanupLoop sweeps expired sessions on the given interval until the
// channel is closed.
func (t *Tracker) RunCleanupLoop(interval, maxAge time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.Cleanup(maxAge)
		}
	}
}

func (t *Tracker) estimateRemaining(startedAt time.Time, progress int, now time.Time) string {
	elapsed := now.Sub(startedAt)
	if elapsed <= 0 {
		return ""
	}

	rate := float64(progress) / float64(elapsed.Milliseconds())
	if rate <= 0 {
		return ""
	}

	remaining := time.Duration(float64(100-progress)/rate) * time.Millisecond
	if remaining <= 0 || remaining >= etaCap {
		return ""
	}

	seconds := int(math.Ceil(remaining.Seconds()))
	if seconds < 60 {
		return fmt.Sprintf("%d seconds", seconds)
	}
	return fmt.Sprintf("%d minutes", int(math.Ceil(float64(seconds)/60)))
}
