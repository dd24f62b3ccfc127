// Copyright (c) 2026 GroupMela. All rights reserved.

package notify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupmela/admin-api/internal/notify"
)

// streamRecorder is a flushable writer that records what the stream pushes
// and any write deadline set on the connection.
type streamRecorder struct {
	mu       sync.Mutex
	header   http.Header
	body     strings.Builder
	status   int
	deadline *time.Time
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{header: make(http.Header)}
}

func (r *streamRecorder) Header() http.Header { return r.header }

func (r *streamRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.Write(p)
}

func (r *streamRecorder) WriteHeader(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = code
}

func (r *streamRecorder) Flush() {}

func (r *streamRecorder) SetWriteDeadline(deadline time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deadline = &deadline
	return nil
}

func (r *streamRecorder) snapshot() (int, string, *time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status, r.body.String(), r.deadline
}

func TestStream(t *testing.T) {
	center := notify.NewCenter(time.Minute, nil)
	handler := notify.NewHandler(center)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	request := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(ctx)
	recorder := newStreamRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.Stream(recorder, request)
	}()

	require.Eventually(t, func() bool {
		status, _, _ := recorder.snapshot()
		return status == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	// The connection must shed the server write deadline, or pushes start
	// failing once the ordinary response window passes.
	_, _, deadline := recorder.snapshot()
	require.NotNil(t, deadline)
	assert.True(t, deadline.IsZero())

	require.Eventually(t, func() bool {
		center.Publish("Group approved!", notify.SeveritySuccess)
		_, body, _ := recorder.snapshot()
		return strings.Contains(body, "event: notification") &&
			strings.Contains(body, "Group approved!")
	}, time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream did not stop on client disconnect")
	}
}
