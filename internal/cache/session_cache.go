package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"redflag/internal/model"
)

// ErrSessionNotFound is returned when a session id has no live session
// (never created, expired, or evicted).
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps live sessions. Sessions are ephemeral: the TTL slides
// on every save and nothing survives it.
type SessionStore interface {
	Save(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore returns a Redis-backed store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func (s *redisSessionStore) Save(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, "session:"+session.ID, data, s.ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := s.client.Get(ctx, "session:"+id).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, "session:"+id).Err()
}

type memoryEntry struct {
	session   model.Session
	expiresAt time.Time
}

type memorySessionStore struct {
	mu  sync.Mutex
	m   map[string]memoryEntry
	ttl time.Duration
}

// NewMemorySessionStore returns a process-local store, used when Redis is
// not configured.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{m: make(map[string]memoryEntry), ttl: ttl}
}

func (s *memorySessionStore) Save(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[session.ID] = memoryEntry{session: *session, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.m[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.m, id)
		return nil, ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}
