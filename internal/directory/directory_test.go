// Copyright (c) 2026 GroupMela. All rights reserved.

package directory_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupmela/admin-api/internal/directory"
)

func TestDecodeGroup(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantStatus directory.Status
		wantName   string
	}{
		{
			name:       "complete record",
			raw:        `{"name":"Go Developers","status":"approved","link":"https://chat.whatsapp.com/abc"}`,
			wantStatus: directory.StatusApproved,
			wantName:   "Go Developers",
		},
		{
			name:       "missing status defaults to pending",
			raw:        `{"name":"Legacy Group"}`,
			wantStatus: directory.StatusPending,
			wantName:   "Legacy Group",
		},
		{
			name:       "missing name gets the placeholder",
			raw:        `{"status":"approved"}`,
			wantStatus: directory.StatusApproved,
			wantName:   directory.DefaultGroupName,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			group, err := directory.DecodeGroup("g1", json.RawMessage(tc.raw))
			require.NoError(t, err)

			assert.Equal(t, "g1", group.ID)
			assert.Equal(t, tc.wantStatus, group.Status)
			assert.Equal(t, tc.wantName, group.Name)
		})
	}
}

func TestDecodeGroup_CategoryFields(t *testing.T) {
	// Stored records keep the weak reference under "categoryId" and the
	// denormalized display name under "category"; the public site writes
	// this shape too, so the mapping must not drift.
	raw := `{"name":"Go Developers","categoryId":"cat-1","category":"Technology","status":"approved"}`

	group, err := directory.DecodeGroup("g1", json.RawMessage(raw))
	require.NoError(t, err)

	assert.Equal(t, "cat-1", group.CategoryID)
	assert.Equal(t, "Technology", group.CategoryName)
}

func TestDecodeGroup_Malformed(t *testing.T) {
	_, err := directory.DecodeGroup("g1", json.RawMessage(`{broken`))
	assert.Error(t, err)
}

func TestDecode_RejectsNonObjects(t *testing.T) {
	// A stored null must never surface as an "Unnamed" pending row; the
	// sync pass skips anything that is not a JSON object.
	for _, raw := range []string{`null`, `[]`, `"text"`, `42`, ``} {
		t.Run("group "+raw, func(t *testing.T) {
			_, err := directory.DecodeGroup("g1", json.RawMessage(raw))
			assert.Error(t, err)
		})
	}

	_, err := directory.DecodeCategory("c1", json.RawMessage(`null`))
	assert.Error(t, err)
	_, err = directory.DecodeReport("r1", json.RawMessage(`null`))
	assert.Error(t, err)
}

func TestDecodeCategory_DefaultIcon(t *testing.T) {
	category, err := directory.DecodeCategory("c1", json.RawMessage(`{"name":"Technology"}`))
	require.NoError(t, err)

	assert.Equal(t, directory.DefaultCategoryIcon, category.Icon)
}

func TestDecodeReport_DefaultReason(t *testing.T) {
	report, err := directory.DecodeReport("r1", json.RawMessage(`{"groupId":"g1"}`))
	require.NoError(t, err)

	assert.Equal(t, directory.DefaultReportReason, report.Reason)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, directory.StatusPending.Valid())
	assert.True(t, directory.StatusApproved.Valid())
	assert.True(t, directory.StatusRejected.Valid())
	assert.False(t, directory.Status("archived").Valid())
}
