// Copyright (c) 2026 GroupMela. All rights reserved.

package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupmela/admin-api/internal/notify"
)

// fixedClock steps time manually so expiry is deterministic.
type fixedClock struct {
	current time.Time
}

func (c *fixedClock) now() time.Time          { return c.current }
func (c *fixedClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestCenter(ttl time.Duration) (*notify.Center, *fixedClock) {
	clock := &fixedClock{current: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)}
	return notify.NewCenter(ttl, clock.now), clock
}

func TestCenter_PublishAndActive(t *testing.T) {
	center, _ := newTestCenter(3 * time.Second)

	first := center.Publish("Group approved!", notify.SeveritySuccess)
	second := center.Publish("Settings saved!", notify.SeverityInfo)

	active := center.Active()
	require.Len(t, active, 2)

	// Stacking order is publish order.
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)
	assert.Equal(t, notify.SeveritySuccess, active[0].Severity)
}

func TestCenter_Expiry(t *testing.T) {
	center, clock := newTestCenter(3 * time.Second)

	center.Publish("Old toast", notify.SeverityInfo)
	clock.advance(2 * time.Second)
	center.Publish("Fresh toast", notify.SeverityInfo)

	clock.advance(1500 * time.Millisecond) // old: 3.5s elapsed, fresh: 1.5s

	active := center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Fresh toast", active[0].Message)
}

func TestCenter_UnknownSeverityCoerced(t *testing.T) {
	center, _ := newTestCenter(3 * time.Second)

	toast := center.Publish("Something happened", notify.Severity("loud"))
	assert.Equal(t, notify.SeverityInfo, toast.Severity)
}

func TestCenter_Subscribe(t *testing.T) {
	center, _ := newTestCenter(3 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := center.Subscribe(ctx)
	published := center.Publish("Group deleted", notify.SeverityWarning)

	select {
	case got := <-events:
		assert.Equal(t, published.ID, got.ID)
		assert.Equal(t, notify.SeverityWarning, got.Severity)
	case <-time.After(time.Second):
		t.Fatal("expected a streamed notification")
	}
}

func TestCenter_SubscribeStopsOnCancel(t *testing.T) {
	center, _ := newTestCenter(3 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	events := center.Subscribe(ctx)
	cancel()

	// The unsubscription lands asynchronously; once it does, a publish
	// delivers nothing to the canceled listener. Delivery itself is
	// synchronous, so checking right after Publish is reliable.
	assert.Eventually(t, func() bool {
		drained := false
		for !drained {
			select {
			case <-events:
			default:
				drained = true
			}
		}
		center.Publish("after cancel", notify.SeverityInfo)
		select {
		case <-events:
			return false
		default:
			return true
		}
	}, time.Second, 20*time.Millisecond)
}
