package progress

import (
	"sync"

	"github.com/nestscout/backend/internal/models"
)

// MemoryStore is the default process-lifetime session store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.ResearchProgress
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]models.ResearchProgress),
	}
}

func (s *MemoryStore) Get(sessionID string) (models.ResearchProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return models.ResearchProgress{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *MemoryStore) Set(session models.ResearchProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.SessionID] = session
	return nil
}

func (s *MemoryStore) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryStore) All() ([]models.ResearchProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ResearchProgress, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out, nil
}
