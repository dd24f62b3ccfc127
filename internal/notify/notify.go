// Copyright (c) 2026 GroupMela. All rights reserved.

/*
Package notify implements the console's toast surface.

Every admin mutation publishes a short-lived notification. Toasts stack in
publish order, expire on their own after a few seconds, and fan out to any
connected event-stream listeners.
*/
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/groupmela/admin-api/internal/platform/constants"
	"github.com/groupmela/admin-api/pkg/uuid"
)

// # Severities

// Severity selects the toast's visual treatment.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// # Notification Center

// Notification is one toast.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Center holds the active toast stack and fans new toasts out to stream
// subscribers. Expiry is lazy: expired toasts are pruned whenever the stack
// is read, so no timer goroutine is needed.
type Center struct {
	mu          sync.Mutex
	items       []Notification
	subscribers map[string]chan Notification
	ttl         time.Duration
	now         func() time.Time
}

/*
NewCenter builds a notification center.

Parameters:
  - ttl: How long a toast stays active; zero selects the standard lifetime.
  - clock: The time source; nil selects [time.Now]. Tests inject a fixed one.

Returns:
  - *Center: A ready center with no active toasts.
*/
func NewCenter(ttl time.Duration, clock func() time.Time) *Center {
	if ttl <= 0 {
		ttl = constants.NotificationTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &Center{
		subscribers: make(map[string]chan Notification),
		ttl:         ttl,
		now:         clock,
	}
}

// Publish pushes a toast onto the stack and broadcasts it to subscribers.
// Unknown severities are coerced to info rather than rejected; a mutation
// must never fail because its toast was mislabeled.
func (c *Center) Publish(message string, severity Severity) Notification {
	if !severity.Valid() {
		severity = SeverityInfo
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	notification := Notification{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.pruneLocked(now)
	c.items = append(c.items, notification)

	for _, subscriber := range c.subscribers {
		select {
		case subscriber <- notification:
		default: // slow listener; it can reconcile from Active
		}
	}
	return notification
}

// Active returns the unexpired stack in publish order.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruneLocked(c.now())
	active := make([]Notification, len(c.items))
	copy(active, c.items)
	return active
}

// Subscribe registers a stream listener. The channel receives every toast
// published until the context is canceled.
func (c *Center) Subscribe(ctx context.Context) <-chan Notification {
	id := uuid.New()
	events := make(chan Notification, 16)

	c.mu.Lock()
	c.subscribers[id] = events
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}()

	return events
}

// pruneLocked drops expired toasts. Callers hold the lock.
func (c *Center) pruneLocked(now time.Time) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ExpiresAt.After(now) {
			kept = append(kept, item)
		}
	}
	c.items = kept
}
