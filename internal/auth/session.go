// Copyright (c) 2026 GroupMela. All rights reserved.

package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown, expired, or
// already revoked.
var ErrSessionNotFound = errors.New("session not found")

// Session is one live admin login.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore persists live sessions. Logout revokes by deleting, so a
// stolen token dies with its session record.
type SessionStore interface {
	// Create persists a new session until its expiry.
	Create(context context.Context, session *Session) error

	// Find returns the session or [ErrSessionNotFound].
	Find(context context.Context, sessionID string) (*Session, error)

	// Revoke deletes the session. Revoking an unknown id is a no-op.
	Revoke(context context.Context, sessionID string) error
}

// # In-Memory Store

// MemorySessionStore keeps sessions in a map. It backs single-process
// deployments where no Redis is configured; sessions die with the process.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemorySessionStore returns an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Session)}
}

// Create implements [SessionStore].
func (store *MemorySessionStore) Create(_ context.Context, session *Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	copied := *session
	store.sessions[session.ID] = &copied
	return nil
}

// Find implements [SessionStore]. Expired sessions are treated as absent.
func (store *MemorySessionStore) Find(_ context.Context, sessionID string) (*Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	session, ok := store.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		delete(store.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

// Revoke implements [SessionStore].
func (store *MemorySessionStore) Revoke(_ context.Context, sessionID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.sessions, sessionID)
	return nil
}
