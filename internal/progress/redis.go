package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nestscout/backend/internal/models"
)

const sessionKeyPrefix = "research:session:"

// RedisStore backs the tracker with Redis so progress survives a process
// restart and can be shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Get(sessionID string) (models.ResearchProgress, error) {
	ctx, cancel := opContext()
	defer cancel()

	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return models.ResearchProgress{}, ErrSessionNotFound
	}
	if err != nil {
		return models.ResearchProgress{}, fmt.Errorf("failed to read session: %w", err)
	}

	var session models.ResearchProgress
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return models.ResearchProgress{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}

func (s *RedisStore) Set(session models.ResearchProgress) error {
	ctx, cancel := opContext()
	defer cancel()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.client.Set(ctx, sessionKeyPrefix+session.SessionID, data, s.ttl).Err()
}

func (s *RedisStore) Delete(sessionID string) error {
	ctx, cancel := opContext()
	defer cancel()

	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

func (s *RedisStore) All() ([]models.ResearchProgress, error) {
	ctx, cancel := opContext()
	defer cancel()

	keys, err := s.client.Keys(ctx, sessionKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]models.ResearchProgress, 0, len(keys))
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read session: %w", err)
		}

		var session models.ResearchProgress
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
