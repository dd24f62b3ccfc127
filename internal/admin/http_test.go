// Copyright (c) 2026 GroupMela. All rights reserved.

package admin_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupmela/admin-api/internal/admin"
	"github.com/groupmela/admin-api/internal/directory"
	"github.com/groupmela/admin-api/internal/platform/config"
	"github.com/groupmela/admin-api/internal/platform/respond"
)

func TestConfirmationGate(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	categoryID := h.seedCategory(t, "Technology")
	groupID := h.seedPendingGroup(t, "Go Developers", categoryID)

	router := admin.NewHandler(h.service).Routes()

	t.Run("no flag yields 428 and no store call", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/groups/"+groupID+"/approve", nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusPreconditionRequired, recorder.Code)

		var envelope respond.ErrorEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "CONFIRMATION_REQUIRED", envelope.Code)

		group, ok := h.mirror.Group(groupID)
		require.True(t, ok)
		assert.Equal(t, directory.StatusPending, group.Status)
	})

	t.Run("confirm=true lets the mutation through", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/groups/"+groupID+"/approve?confirm=true", nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNoContent, recorder.Code)

		group, ok := h.mirror.Group(groupID)
		require.True(t, ok)
		assert.Equal(t, directory.StatusApproved, group.Status)
	})

	t.Run("delete is gated too", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodDelete, "/groups/"+groupID, nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusPreconditionRequired, recorder.Code)
		_, ok := h.mirror.Group(groupID)
		assert.True(t, ok)
	})
}

func TestPublicViewCounter(t *testing.T) {
	h := newHarness(t, config.RejectRetain)
	categoryID := h.seedCategory(t, "Technology")
	groupID := h.seedPendingGroup(t, "Go Developers", categoryID)

	router := admin.NewHandler(h.service).PublicRoutes()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/groups/"+groupID+"/views", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, int64(1), envelope.Data["views"])
}
