// Copyright (c) 2026 GroupMela. All rights reserved.

package notify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/groupmela/admin-api/internal/platform/respond"
)

// Handler exposes the toast surface over HTTP.
//
// # Scope
//
// Read-only: toasts are published by the admin services as side effects of
// mutations, never directly through this handler.
type Handler struct {
	center *Center
}

// NewHandler constructs a new [Handler] over the center.
func NewHandler(center *Center) *Handler {
	return &Handler{center: center}
}

// Routes returns a [chi.Router] configured with notification routes.
//
// # Endpoints
//   - GET /  : The currently active toast stack.
//
// The event stream is not here: [Handler.Stream] must be mounted outside any
// request-timeout middleware or the deadline would sever the connection.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	return router
}

// list handles GET /api/v1/notifications requests.
//
// # Parameters
//   - writer: The HTTP response constructor.
//   - request: The incoming HTTP request.
//
// # Returns
//   - Writes HTTP 200 OK with the unexpired toasts in publish order.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.center.Active())
}

// Stream handles GET /api/v1/notifications/stream requests.
//
// The connection stays open until the client disconnects; each published
// toast arrives as one "notification" SSE event with a JSON body. The
// server's write deadline is lifted for this connection so pushes keep
// working past the timeout every ordinary response lives under.
//
// # Parameters
//   - writer: The HTTP response constructor; must support flushing.
//   - request: The incoming HTTP request; its context bounds the stream.
func (handler *Handler) Stream(writer http.ResponseWriter, request *http.Request) {
	flusher, ok := writer.(http.Flusher)
	if !ok {
		http.Error(writer, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// A zero time clears the per-connection deadline inherited from the
	// server's WriteTimeout.
	_ = http.NewResponseController(writer).SetWriteDeadline(time.Time{})

	writer.Header().Set("Content-Type", "text/event-stream")
	writer.Header().Set("Cache-Control", "no-cache")
	writer.Header().Set("Connection", "keep-alive")
	writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	events := handler.center.Subscribe(request.Context())
	for {
		select {
		case <-request.Context().Done():
			return
		case notification := <-events:
			payload, err := json.Marshal(notification)
			if err != nil {
				continue
			}
			fmt.Fprintf(writer, "event: notification\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
