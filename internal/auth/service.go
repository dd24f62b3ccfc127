// Copyright (c) 2026 GroupMela. All rights reserved.

/*
Package auth implements the admin session gate.

The console has exactly one operator account, configured through the
environment as a username and a bcrypt hash. Logging in issues a signed
session token; every admin route verifies the token AND checks the session
is still alive in the store, so logout revokes access server-side instead
of trusting the client to forget a flag.
*/
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/groupmela/admin-api/internal/platform/apperr"
	"github.com/groupmela/admin-api/internal/platform/constants"
	"github.com/groupmela/admin-api/internal/platform/sec"
	"github.com/groupmela/admin-api/pkg/uuid"
)

// TokenProvider defines the contract for minting session tokens.
type TokenProvider interface {
	// GenerateSessionToken creates a signed JWT bound to one session.
	//
	// # Parameters
	//   - sessionID: The session record the token references.
	//   - username: The operator name embedded in the claims.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateSessionToken(sessionID, username string, timeToLive time.Duration) (string, error)
}

// Service implements the admin login use cases.
//
// # Review Process
//
// This service is the only thing standing between the open internet and the
// mutation endpoints. Changes here need a second pair of eyes.
type Service struct {
	adminUsername     string
	adminPasswordHash string
	sessions          SessionStore
	tokens            TokenProvider
}

// NewService constructs a new [Service] with its dependencies.
//
// The username and password hash come straight from configuration; there is
// no account table to consult.
func NewService(adminUsername, adminPasswordHash string, sessions SessionStore, tokens TokenProvider) *Service {
	return &Service{
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		sessions:          sessions,
		tokens:            tokens,
	}
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginSession represents a successfully established admin session.
type LoginSession struct {
	AccessToken string    `json:"access_token"`
	Username    string    `json:"username"`
	ExpiresAt   time.Time `json:"expires_at"`
}

/*
Login validates the operator credentials and opens a session.

# Parameters
  - context: Context for the session store write.
  - input: The submitted username and plain-text password.

# Returns
  - A [*LoginSession] carrying the signed access token.
  - Returns [apperr.Unauthorized] when either credential is wrong; the
    message never says which, to keep probing uninformative.

# Flow
 1. Compare the username in constant time.
 2. Verify the password against the configured bcrypt hash.
 3. Persist a session record and mint a JWT referencing it.
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	// ── 1. Credential Verification ────────────────────────────────────────

	usernameMatches := subtle.ConstantTimeCompare(
		[]byte(input.Username), []byte(service.adminUsername)) == 1

	// Bcrypt comparison runs regardless so both branches cost the same.
	passwordMatches := sec.CheckPasswordHash(input.Password, service.adminPasswordHash)

	if !usernameMatches || !passwordMatches {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 2. Session Creation ───────────────────────────────────────────────

	now := time.Now()
	session := &Session{
		ID:        uuid.New(),
		Username:  service.adminUsername,
		CreatedAt: now,
		ExpiresAt: now.Add(constants.AdminSessionTTL),
	}
	if err := service.sessions.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	accessToken, err := service.tokens.GenerateSessionToken(
		session.ID, session.Username, constants.AdminSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		Username:    session.Username,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// Logout revokes the session behind the presented token. Revoking an
// already-dead session still succeeds; logout is idempotent.
func (service *Service) Logout(context context.Context, sessionID string) error {
	if err := service.sessions.Revoke(context, sessionID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// IsActive reports whether a session id is still alive. It satisfies the
// middleware's session check; a missing session is not an error, just false.
func (service *Service) IsActive(context context.Context, sessionID string) (bool, error) {
	_, err := service.sessions.Find(context, sessionID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrSessionNotFound) {
		return false, nil
	}
	return false, err
}
