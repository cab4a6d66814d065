package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotwise/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "chat:sess:"

// RedisStore keeps transcripts as TTL'd JSON blobs. The TTL doubles as the
// eviction policy: idle sessions expire instead of accumulating forever.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) History(ctx context.Context, sessionID string, n int) ([]models.Turn, error) {
	turns, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return lastN(turns, n), nil
}

func (s *RedisStore) AppendExchange(ctx context.Context, sessionID, userText, assistantText string) error {
	turns, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	turns = append(turns,
		models.Turn{Role: models.RoleUser, Text: userText},
		models.Turn{Role: models.RoleAssistant, Text: assistantText},
	)

	b, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	return s.client.Set(ctx, sessionKeyPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisStore) load(ctx context.Context, sessionID string) ([]models.Turn, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	var turns []models.Turn
	if err := json.Unmarshal([]byte(data), &turns); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return turns, nil
}
