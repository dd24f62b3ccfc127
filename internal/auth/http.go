// Copyright (c) 2026 GroupMela. All rights reserved.

package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groupmela/admin-api/internal/platform/apperr"
	requestutil "github.com/groupmela/admin-api/internal/platform/request"
	"github.com/groupmela/admin-api/internal/platform/respond"
	"github.com/groupmela/admin-api/internal/platform/validate"
)

// Handler implements the session HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the session routes.
//
// # Endpoints
//   - POST /login  : Authenticates the operator and returns a session token.
//   - POST /logout : Revokes the presented session (gated).
//   - GET  /me     : Echoes the authenticated operator (gated).
//
// The gate middleware comes from the caller so this package stays free of
// session-store wiring.
func (handler *Handler) Routes(requireAdmin func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)

	router.Group(func(protected chi.Router) {
		protected.Use(requireAdmin)
		protected.Post("/logout", handler.logout)
		protected.Get("/me", handler.me)
	})

	return router
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login handles POST /api/v1/auth/login requests.
//
// # Parameters
//   - writer: The HTTP response constructor.
//   - request: The incoming HTTP request payload.
//
// # Returns
//   - Writes HTTP 200 OK on success with the access token and expiry.
//   - Writes HTTP 401 Unauthorized for bad credentials.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := validate.New().
		Required("username", input.Username).
		Required("password", input.Password)
	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, session)
}

// logout handles POST /api/v1/auth/logout requests. The session to revoke
// comes from the verified token, never from the payload.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), claims.SessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// me handles GET /api/v1/auth/me requests.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Claims(request)
	if claims == nil {
		respond.Error(writer, request, apperr.Unauthorized("Admin session required"))
		return
	}

	respond.OK(writer, map[string]any{
		"username":   claims.Username,
		"session_id": claims.SessionID,
	})
}
