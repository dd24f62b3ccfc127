// Copyright (c) 2026 GroupMela. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupmela/admin-api/internal/auth"
	"github.com/groupmela/admin-api/internal/platform/apperr"
	"github.com/groupmela/admin-api/internal/platform/sec"
)

// stubTokens avoids RSA key material in unit tests.
type stubTokens struct{}

func (stubTokens) GenerateSessionToken(sessionID, username string, _ time.Duration) (string, error) {
	return "token-" + sessionID + "-" + username, nil
}

func newTestService(t *testing.T) (*auth.Service, *auth.MemorySessionStore) {
	t.Helper()

	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	sessions := auth.NewMemorySessionStore()
	service := auth.NewService("admin", hash, sessions, stubTokens{})
	return service, sessions
}

func TestService_Login(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	t.Run("valid credentials open a session", func(t *testing.T) {
		session, err := service.Login(ctx, auth.LoginInput{
			Username: "admin",
			Password: "correct horse battery staple",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, session.AccessToken)
		assert.Equal(t, "admin", session.Username)
		assert.True(t, session.ExpiresAt.After(time.Now()))
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := service.Login(ctx, auth.LoginInput{
			Username: "admin",
			Password: "guess",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("wrong username reads the same as wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, auth.LoginInput{
			Username: "root",
			Password: "correct horse battery staple",
		})
		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})
}

func TestService_LogoutRevokes(t *testing.T) {
	service, sessions := newTestService(t)
	ctx := context.Background()

	session := &auth.Session{
		ID:        "sess-1",
		Username:  "admin",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, sessions.Create(ctx, session))

	active, err := service.IsActive(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, service.Logout(ctx, "sess-1"))

	active, err = service.IsActive(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, active)

	// Logging out twice is still fine.
	assert.NoError(t, service.Logout(ctx, "sess-1"))
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	store := auth.NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &auth.Session{
		ID:        "old",
		Username:  "admin",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := store.Find(ctx, "old")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}
