// Copyright (c) 2026 GroupMela. All rights reserved.

package admin_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupmela/admin-api/internal/admin"
	"github.com/groupmela/admin-api/internal/directory"
	"github.com/groupmela/admin-api/internal/mirror"
	"github.com/groupmela/admin-api/internal/notify"
	"github.com/groupmela/admin-api/internal/platform/apperr"
	"github.com/groupmela/admin-api/internal/platform/config"
	"github.com/groupmela/admin-api/internal/store"
)

// harness wires a service over the in-memory store in manual sync mode, so
// every mutation lands in the mirror synchronously and tests stay
// deterministic without goroutines.
type harness struct {
	service *admin.Service
	store   *store.MemoryStore
	mirror  *mirror.Mirror
	center  *notify.Center
}

func newHarness(t *testing.T, rejectionPolicy string) *harness {
	t.Helper()

	st := store.NewMemoryStore()
	m := mirror.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	syncer := mirror.NewSyncer(st, m, log)
	center := notify.NewCenter(0, nil)

	cfg := &config.Config{
		SyncMode:        config.SyncManual,
		RejectionPolicy: rejectionPolicy,
	}

	return &harness{
		service: admin.NewService(st, m, syncer, center, cfg, log),
		store:   st,
		mirror:  m,
		center:  center,
	}
}

// seedCategory plants a category and syncs it into the mirror.
func (h *harness) seedCategory(t *testing.T, name string) string {
	t.Helper()
	id, err := h.service.CreateCategory(context.Background(), admin.CategoryInput{Name: name})
	require.NoError(t, err)
	return id
}

// seedPendingGroup plants a visitor submission the way the public site
// writes them: straight into the store with status pending.
func (h *harness) seedPendingGroup(t *testing.T, name, categoryID string) string {
	t.Helper()
	ctx := context.Background()

	id, err := h.store.Create(ctx, store.CollGroups, map[string]any{
		"name":       name,
		"link":       "https://chat.whatsapp.com/" + name,
		"categoryId": categoryID,
		"status":     "pending",
	})
	require.NoError(t, err)
	require.NoError(t, h.service.SyncAll(ctx))
	return id
}

func TestModerationFlow(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	ctx := context.Background()

	categoryID := h.seedCategory(t, "Technology")
	groupID := h.seedPendingGroup(t, "Go Developers", categoryID)

	// The submission sits in the moderation queue.
	pending := h.service.PendingGroups()
	require.Len(t, pending.Rows, 1)
	assert.Equal(t, groupID, pending.Rows[0].ID)

	// Approving moves it out of the queue and onto the public status.
	require.NoError(t, h.service.ApproveGroup(ctx, groupID))

	assert.Empty(t, h.service.PendingGroups().Rows)
	group, ok := h.mirror.Group(groupID)
	require.True(t, ok)
	assert.Equal(t, directory.StatusApproved, group.Status)

	// The stats strip reflects the move.
	stats := h.service.Stats()
	assert.Equal(t, 1, stats.TotalGroups)
	assert.Equal(t, 0, stats.PendingGroups)
	assert.Equal(t, 1, stats.ApprovedGroups)
}

func TestRejectGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("retain policy keeps the record", func(t *testing.T) {
		h := newHarness(t, config.RejectRetain)
		categoryID := h.seedCategory(t, "Technology")
		groupID := h.seedPendingGroup(t, "Spam Group", categoryID)

		require.NoError(t, h.service.RejectGroup(ctx, groupID))

		group, ok := h.mirror.Group(groupID)
		require.True(t, ok)
		assert.Equal(t, directory.StatusRejected, group.Status)
		assert.False(t, group.Featured)
	})

	t.Run("delete policy removes the record", func(t *testing.T) {
		h := newHarness(t, config.RejectDelete)
		categoryID := h.seedCategory(t, "Technology")
		groupID := h.seedPendingGroup(t, "Spam Group", categoryID)

		require.NoError(t, h.service.RejectGroup(ctx, groupID))

		_, ok := h.mirror.Group(groupID)
		assert.False(t, ok)
	})

	t.Run("unknown group is not found", func(t *testing.T) {
		h := newHarness(t, config.RejectRetain)
		err := h.service.RejectGroup(ctx, "missing")
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestSetFeatured(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	ctx := context.Background()

	categoryID := h.seedCategory(t, "Technology")
	groupID := h.seedPendingGroup(t, "Go Developers", categoryID)

	// Featuring a pending group is refused.
	err := h.service.SetFeatured(ctx, groupID, true)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Approved groups can be featured, and unfeatured again.
	require.NoError(t, h.service.ApproveGroup(ctx, groupID))
	require.NoError(t, h.service.SetFeatured(ctx, groupID, true))

	group, _ := h.mirror.Group(groupID)
	assert.True(t, group.Featured)

	require.NoError(t, h.service.SetFeatured(ctx, groupID, false))
	group, _ = h.mirror.Group(groupID)
	assert.False(t, group.Featured)
}

func TestCreateGroup(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	ctx := context.Background()

	categoryID := h.seedCategory(t, "Technology")

	t.Run("console listings go live approved", func(t *testing.T) {
		id, err := h.service.CreateGroup(ctx, admin.GroupInput{
			Name:       "Go Developers",
			InviteLink: "https://chat.whatsapp.com/abc123",
			CategoryID: categoryID,
		})
		require.NoError(t, err)

		group, ok := h.mirror.Group(id)
		require.True(t, ok)
		assert.Equal(t, directory.StatusApproved, group.Status)
		assert.Equal(t, "Technology", group.CategoryName)
	})

	t.Run("non-invite links are rejected", func(t *testing.T) {
		_, err := h.service.CreateGroup(ctx, admin.GroupInput{
			Name:       "Bad Link",
			InviteLink: "https://example.com/join",
			CategoryID: categoryID,
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		_, err := h.service.CreateGroup(ctx, admin.GroupInput{
			Name:       "Orphan",
			InviteLink: "https://chat.whatsapp.com/abc123",
			CategoryID: "missing",
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestUpdateGroup_ResnapshotsCategoryName(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	ctx := context.Background()

	oldCategory := h.seedCategory(t, "Technology")
	newCategory := h.seedCategory(t, "Programming")
	groupID := h.seedPendingGroup(t, "Go Developers", oldCategory)

	require.NoError(t, h.service.UpdateGroup(ctx, groupID, admin.GroupInput{
		Name:       "Go Developers",
		InviteLink: "https://chat.whatsapp.com/abc123",
		CategoryID: newCategory,
	}))

	group, ok := h.mirror.Group(groupID)
	require.True(t, ok)
	assert.Equal(t, newCategory, group.CategoryID)
	assert.Equal(t, "Programming", group.CategoryName)
}

func TestIncrementViews(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	ctx := context.Background()

	categoryID := h.seedCategory(t, "Technology")
	groupID := h.seedPendingGroup(t, "Go Developers", categoryID)

	views, err := h.service.IncrementViews(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)

	views, err = h.service.IncrementViews(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), views)

	_, err = h.service.IncrementViews(ctx, "missing")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestMutationsPublishToasts(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	ctx := context.Background()

	categoryID := h.seedCategory(t, "Technology")
	groupID := h.seedPendingGroup(t, "Go Developers", categoryID)
	require.NoError(t, h.service.ApproveGroup(ctx, groupID))

	messages := make([]string, 0)
	for _, toast := range h.center.Active() {
		messages = append(messages, toast.Message)
	}
	assert.Contains(t, messages, "Group approved!")
	assert.Contains(t, messages, "Category added successfully!")
}
