// Copyright (c) 2026 GroupMela. All rights reserved.

package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupmela/admin-api/internal/admin"
	"github.com/groupmela/admin-api/internal/directory"
	"github.com/groupmela/admin-api/internal/platform/apperr"
	"github.com/groupmela/admin-api/internal/platform/config"
	"github.com/groupmela/admin-api/internal/store"
)

func TestCreateCategory(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	ctx := context.Background()

	t.Run("slug derives from the name", func(t *testing.T) {
		id, err := h.service.CreateCategory(ctx, admin.CategoryInput{Name: "Remote Jobs"})
		require.NoError(t, err)

		category, ok := h.mirror.Category(id)
		require.True(t, ok)
		assert.Equal(t, "remote-jobs", category.Slug)
		assert.Equal(t, directory.DefaultCategoryIcon, category.Icon)
	})

	t.Run("duplicate names are refused", func(t *testing.T) {
		_, err := h.service.CreateCategory(ctx, admin.CategoryInput{Name: "Remote Jobs"})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestUpdateCategory(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	ctx := context.Background()

	id := h.seedCategory(t, "Technology")

	require.NoError(t, h.service.UpdateCategory(ctx, id, admin.CategoryInput{
		Name: "Tech & Gadgets",
		Icon: "🔌",
	}))

	category, ok := h.mirror.Category(id)
	require.True(t, ok)
	assert.Equal(t, "Tech & Gadgets", category.Name)
	assert.Equal(t, "tech-gadgets", category.Slug)
	assert.Equal(t, "🔌", category.Icon)
}

func TestDeleteCategory_GroupsKeepSnapshotName(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	ctx := context.Background()

	categoryID := h.seedCategory(t, "Technology")
	groupID, err := h.service.CreateGroup(ctx, admin.GroupInput{
		Name:       "Go Developers",
		InviteLink: "https://chat.whatsapp.com/abc123",
		CategoryID: categoryID,
	})
	require.NoError(t, err)

	require.NoError(t, h.service.DeleteCategory(ctx, categoryID))

	// The listing survives and its row falls back to the snapshot name.
	table := h.service.AllGroups(directory.GroupFilter{})
	require.Len(t, table.Rows, 1)
	assert.Equal(t, groupID, table.Rows[0].ID)
	assert.Equal(t, "Technology", table.Rows[0].CategoryName)
}

func TestReportQueue(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	ctx := context.Background()

	reportID, err := h.store.Create(ctx, store.CollReports, map[string]any{
		"groupId":   "g1",
		"groupName": "Go Developers",
		"reason":    "broken link",
	})
	require.NoError(t, err)
	require.NoError(t, h.service.SyncAll(ctx))

	require.Len(t, h.service.Reports().Rows, 1)

	require.NoError(t, h.service.ResolveReport(ctx, reportID))
	assert.Empty(t, h.service.Reports().Rows)

	err = h.service.DismissReport(ctx, reportID)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
