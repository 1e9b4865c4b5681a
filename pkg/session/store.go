package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Data is the server-side session record. The cookie only ever carries the
// opaque session id, never any of these fields.
type Data struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists session records keyed by session id.
type Store interface {
	Set(ctx context.Context, sid string, data Data, ttl time.Duration) error
	Get(ctx context.Context, sid string) (Data, bool, error)
	Delete(ctx context.Context, sid string) error
}

const redisKeyPrefix = "sess:"

// RedisStore keeps sessions in Redis with a server-side TTL.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Set(ctx context.Context, sid string, data Data, ttl time.Duration) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, redisKeyPrefix+sid, b, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sid string) (Data, bool, error) {
	b, err := s.rdb.Get(ctx, redisKeyPrefix+sid).Bytes()
	if errors.Is(err, redis.Nil) {
		return Data{}, false, nil
	}
	if err != nil {
		return Data{}, false, err
	}
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return Data{}, false, err
	}
	return d, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+sid).Err()
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore is a process-local Store used in development mode and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Set(ctx context.Context, sid string, data Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, sid string) (Data, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sid]
	if !ok {
		return Data{}, false, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.sessions, sid)
		return Data{}, false, nil
	}
	return e.data, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
