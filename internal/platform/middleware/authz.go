// Copyright (c) 2026 GroupMela. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/groupmela/admin-api/internal/platform/apperr"
	"github.com/groupmela/admin-api/internal/platform/ctxutil"
	"github.com/groupmela/admin-api/internal/platform/respond"
	"github.com/groupmela/admin-api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from [sec.TokenService],
// allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AdminClaims, error)
}

// SessionChecker reports whether a session id is still active (not revoked by
// logout, not expired out of the session store).
type SessionChecker interface {
	IsActive(ctx context.Context, sessionID string) (bool, error)
}

// Authenticate extracts and verifies the session JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AdminClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAdmin(request.Context(), claims)))
		})
	}
}

// RequireAdmin blocks requests without a live admin session.
//
// This is the server-side replacement for the old client-held login flag: the
// gate lives at the API boundary where a client cannot edit state around it.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.AdminClaims] exists in context.
//  2. Check the session id against the session store (logout revokes).
//  3. If either fails, abort with HTTP 401 Unauthorized.
func RequireAdmin(checker SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAdmin(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Admin session required"))
				return
			}

			active, err := checker.IsActive(request.Context(), claims.SessionID)
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}
			if !active {
				respond.Error(writer, request, apperr.Unauthorized("Session has been revoked"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
