package conversation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionTTL = 30 * time.Minute

type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(addr, password string) *RedisSessionStore {
	return &RedisSessionStore{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func sessionKey(sessionID string) string {
	return "conversation:draft:" + sessionID
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*BookingDraft, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return &BookingDraft{}, nil
	}
	if err != nil {
		return nil, err
	}

	var draft BookingDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return &BookingDraft{}, nil
	}
	return &draft, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, draft *BookingDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(sessionID), raw, sessionTTL).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

var _ SessionStore = (*RedisSessionStore)(nil)
