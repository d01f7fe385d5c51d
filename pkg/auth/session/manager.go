package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/marianalima/joalheria-backend/pkg/config"
	redisclient "github.com/marianalima/joalheria-backend/pkg/redis"
)

// ErrNoSession signals that the session id has no live record.
var ErrNoSession = errors.New("session not found")

// Record is the JSON payload stored per session. The two trust domains share
// the cookie transport but nothing else: a customer principal grants no admin
// rights, and the admin capability names no customer.
type Record struct {
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	AdminCapability string     `json:"admin_capability,omitempty"`
}

// IsEmpty reports whether the record carries no principal at all.
func (r Record) IsEmpty() bool {
	return r.UserID == nil && r.AdminCapability == ""
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Manager persists session records in Redis keyed by an opaque session id.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{
		store: client,
		keyer: client,
		ttl:   cfg.TTL,
	}, nil
}

// NewSessionID produces an opaque identifier for the cookie.
func NewSessionID() string {
	return uuid.NewString()
}

// Get loads the record for the given session id.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Record, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrNoSession
	}
	raw, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	return &record, nil
}

// Put stores the record under the session id, refreshing the TTL.
func (m *Manager) Put(ctx context.Context, sessionID string, record Record) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	return m.store.Set(ctx, m.keyer.SessionKey(sessionID), raw, m.ttl)
}

// Regenerate stores the record under a fresh session id and deletes the old
// one, so a pre-auth session id never survives privilege elevation.
func (m *Manager) Regenerate(ctx context.Context, oldSessionID string, record Record) (string, error) {
	newID := NewSessionID()
	if err := m.Put(ctx, newID, record); err != nil {
		return "", err
	}
	if strings.TrimSpace(oldSessionID) != "" {
		if err := m.store.Del(ctx, m.keyer.SessionKey(oldSessionID)); err != nil {
			return "", err
		}
	}
	return newID, nil
}

// Touch refreshes the TTL without rewriting the record.
func (m *Manager) Touch(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrNoSession
	}
	return m.store.Expire(ctx, m.keyer.SessionKey(sessionID), m.ttl)
}

// Destroy removes the session record entirely.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}
