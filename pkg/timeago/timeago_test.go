// Copyright (c) 2026 GroupMela. All rights reserved.

package timeago_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/groupmela/admin-api/pkg/timeago"
)

func TestFormat(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"just_now", now.Add(-30 * time.Second), "Just now"},
		{"one_minute", now.Add(-1 * time.Minute), "1 min ago"},
		{"minutes", now.Add(-45 * time.Minute), "45 mins ago"},
		{"one_hour", now.Add(-90 * time.Minute), "1 hour ago"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"one_day", now.Add(-25 * time.Hour), "1 day ago"},
		{"days", now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{"older_than_week", now.Add(-10 * 24 * time.Hour), "Aug 19, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timeago.Format(tt.at, now))
		})
	}
}
