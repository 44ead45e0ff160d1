package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"nalevel/internal/domain"
	"nalevel/internal/domain/repositories"
	accountSvc "nalevel/internal/domain/services/account"
)

// SessionKey is the single key holding the process-wide session token
const SessionKey = "session"

// KVSession keeps one session token in the key-value store under SessionKey.
// The value is the token as a JSON string.
type KVSession struct {
	store repositories.KeyValueStore
}

var _ accountSvc.SessionStore = (*KVSession)(nil)

// NewKVSession creates a session persisted in store
func NewKVSession(store repositories.KeyValueStore) *KVSession {
	return &KVSession{store: store}
}

func (s *KVSession) Token(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, SessionKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read session token: %w", err)
	}

	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		return "", fmt.Errorf("decode session token: %w", err)
	}
	return token, nil
}

func (s *KVSession) SetToken(ctx context.Context, token string) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode session token: %w", err)
	}
	return s.store.Apply(ctx, repositories.Put(SessionKey, raw))
}

func (s *KVSession) ClearToken(ctx context.Context) error {
	return s.store.Apply(ctx, repositories.Remove(SessionKey))
}

// MemorySession holds one caller's token for the duration of a request
type MemorySession struct {
	mu    sync.Mutex
	token string
}

var _ accountSvc.SessionStore = (*MemorySession)(nil)

// NewMemorySession starts with token, which may be empty
func NewMemorySession(token string) *MemorySession {
	return &MemorySession{token: token}
}

func (s *MemorySession) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemorySession) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemorySession) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
