// Copyright (c) 2026 GroupMela. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/groupmela/admin-api/internal/platform/constants"
)

// RedisSessionStore keeps sessions in Redis with a TTL matching their
// expiry, so revocation survives restarts and expired sessions clean
// themselves up.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore wraps an already-connected Redis client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return constants.RedisPrefixSession + sessionID
}

// Create implements [SessionStore].
func (store *RedisSessionStore) Create(context context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session store: marshal: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session store: session already expired")
	}

	if err := store.client.Set(context, sessionKey(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("session store: create: %w", err)
	}
	return nil
}

// Find implements [SessionStore].
func (store *RedisSessionStore) Find(context context.Context, sessionID string) (*Session, error) {
	payload, err := store.client.Get(context, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session store: find: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("session store: unmarshal: %w", err)
	}
	return &session, nil
}

// Revoke implements [SessionStore].
func (store *RedisSessionStore) Revoke(context context.Context, sessionID string) error {
	if err := store.client.Del(context, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("session store: revoke: %w", err)
	}
	return nil
}
