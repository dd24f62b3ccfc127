// Copyright (c) 2026 GroupMela. All rights reserved.

package directory_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupmela/admin-api/internal/directory"
)

var renderNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func sampleCategories() []directory.Category {
	return []directory.Category{
		{ID: "cat-tech", Name: "Technology", Icon: "💻", Slug: "technology"},
		{ID: "cat-jobs", Name: "Jobs", Icon: "💼", Slug: "jobs"},
	}
}

func sampleGroups() []directory.Group {
	return []directory.Group{
		{
			ID: "g1", Name: "Go Developers", CategoryID: "cat-tech",
			Status: directory.StatusApproved, Featured: true, Views: 120,
			CreatedAt: renderNow.Add(-2 * time.Hour),
		},
		{
			ID: "g2", Name: "Remote Jobs India", CategoryID: "cat-jobs",
			Description: "Hiring alerts and openings",
			Status:      directory.StatusPending,
			CreatedAt:   renderNow.Add(-30 * time.Minute),
		},
		{
			ID: "g3", Name: "Crypto Signals", CategoryID: "cat-gone",
			CategoryName: "Finance", Status: directory.StatusRejected,
			CreatedAt: renderNow.Add(-48 * time.Hour),
		},
	}
}

func TestRenderStats(t *testing.T) {
	stats := directory.RenderStats(sampleGroups(), sampleCategories(), []directory.Report{
		{ID: "r1", GroupID: "g1", Reason: "spam"},
	})

	assert.Equal(t, 3, stats.TotalGroups)
	assert.Equal(t, 1, stats.PendingGroups)
	assert.Equal(t, 1, stats.ApprovedGroups)
	assert.Equal(t, 1, stats.FeaturedGroups)
	assert.Equal(t, int64(120), stats.TotalViews)
	assert.Equal(t, 2, stats.TotalCategories)
	assert.Equal(t, 1, stats.OpenReports)
}

func TestRenderRecentGroups(t *testing.T) {
	t.Run("newest first with stable ties", func(t *testing.T) {
		groups := sampleGroups()
		groups = append(groups, directory.Group{
			ID: "g0", Name: "Tie Breaker", CategoryID: "cat-tech",
			Status:    directory.StatusApproved,
			CreatedAt: renderNow.Add(-30 * time.Minute), // same instant as g2
		})

		got := directory.RenderRecentGroups(groups, sampleCategories(), renderNow)

		require.Len(t, got.Rows, 4)
		assert.Equal(t, "g0", got.Rows[0].ID) // tie resolved by ID
		assert.Equal(t, "g2", got.Rows[1].ID)
		assert.Equal(t, "g1", got.Rows[2].ID)
		assert.Equal(t, "g3", got.Rows[3].ID)
	})

	t.Run("caps at five rows", func(t *testing.T) {
		groups := make([]directory.Group, 0, 8)
		for i := 0; i < 8; i++ {
			groups = append(groups, directory.Group{
				ID:        string(rune('a' + i)),
				Name:      "Group",
				Status:    directory.StatusApproved,
				CreatedAt: renderNow.Add(-time.Duration(i) * time.Hour),
			})
		}

		got := directory.RenderRecentGroups(groups, nil, renderNow)
		assert.Len(t, got.Rows, 5)
	})

	t.Run("empty snapshot yields placeholder", func(t *testing.T) {
		got := directory.RenderRecentGroups(nil, nil, renderNow)
		assert.Empty(t, got.Rows)
		assert.Equal(t, "No groups yet", got.Placeholder)
	})
}

func TestRenderPendingGroups(t *testing.T) {
	got := directory.RenderPendingGroups(sampleGroups(), sampleCategories(), renderNow)

	require.Len(t, got.Rows, 1)
	row := got.Rows[0]
	assert.Equal(t, "g2", row.ID)
	assert.Equal(t, "Jobs", row.CategoryName)
	assert.Equal(t, []directory.Action{
		{Kind: directory.ActionApprove, TargetID: "g2"},
		{Kind: directory.ActionReject, TargetID: "g2"},
	}, row.Actions)
}

func TestRenderAllGroups(t *testing.T) {
	tests := []struct {
		name    string
		filter  directory.GroupFilter
		wantIDs []string
	}{
		{
			name:    "zero filter matches everything",
			filter:  directory.GroupFilter{},
			wantIDs: []string{"g1", "g2", "g3"},
		},
		{
			name:    "by status",
			filter:  directory.GroupFilter{Status: directory.StatusApproved},
			wantIDs: []string{"g1"},
		},
		{
			name:    "by category",
			filter:  directory.GroupFilter{CategoryID: "cat-jobs"},
			wantIDs: []string{"g2"},
		},
		{
			name:    "query is case-insensitive substring",
			filter:  directory.GroupFilter{Query: "jobs"},
			wantIDs: []string{"g2"},
		},
		{
			name:    "query also searches descriptions",
			filter:  directory.GroupFilter{Query: "hiring"},
			wantIDs: []string{"g2"},
		},
		{
			name: "predicates conjoin",
			filter: directory.GroupFilter{
				Status: directory.StatusPending, CategoryID: "cat-tech",
			},
			wantIDs: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := directory.RenderAllGroups(sampleGroups(), sampleCategories(), tc.filter, renderNow)

			ids := make([]string, 0, len(got.Rows))
			for _, row := range got.Rows {
				ids = append(ids, row.ID)
			}
			assert.ElementsMatch(t, tc.wantIDs, ids)
		})
	}
}

func TestRenderAllGroups_FeatureToggle(t *testing.T) {
	got := directory.RenderAllGroups(sampleGroups(), sampleCategories(), directory.GroupFilter{}, renderNow)

	byID := make(map[string]directory.GroupRow, len(got.Rows))
	for _, row := range got.Rows {
		byID[row.ID] = row
	}

	// Approved and featured: first action is the unfeature toggle.
	assert.Equal(t, directory.ActionUnfeature, byID["g1"].Actions[0].Kind)
	// Pending: no feature toggle at all, just edit and delete.
	assert.Equal(t, []directory.Action{
		{Kind: directory.ActionEdit, TargetID: "g2"},
		{Kind: directory.ActionDelete, TargetID: "g2"},
	}, byID["g2"].Actions)
}

func TestRenderAllGroups_CategoryNameFallback(t *testing.T) {
	got := directory.RenderAllGroups(sampleGroups(), sampleCategories(), directory.GroupFilter{}, renderNow)

	byID := make(map[string]directory.GroupRow, len(got.Rows))
	for _, row := range got.Rows {
		byID[row.ID] = row
	}

	// Live join wins over the denormalized snapshot.
	assert.Equal(t, "Technology", byID["g1"].CategoryName)
	// Category deleted after submission: the snapshot name still shows.
	assert.Equal(t, "Finance", byID["g3"].CategoryName)

	orphan := []directory.Group{{ID: "g9", Name: "Orphan", CategoryID: "cat-none"}}
	gotOrphan := directory.RenderAllGroups(orphan, nil, directory.GroupFilter{}, renderNow)
	require.Len(t, gotOrphan.Rows, 1)
	assert.Equal(t, directory.UnknownCategoryName, gotOrphan.Rows[0].CategoryName)
}

func TestRenderCategories(t *testing.T) {
	got := directory.RenderCategories(sampleCategories(), sampleGroups())

	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Technology", got.Rows[0].Name)
	assert.Equal(t, 1, got.Rows[0].GroupCount)
	assert.Equal(t, 1, got.Rows[1].GroupCount)

	empty := directory.RenderCategories(nil, nil)
	assert.Empty(t, empty.Rows)
	assert.Equal(t, "No categories yet", empty.Placeholder)
}

func TestRenderReports(t *testing.T) {
	reports := []directory.Report{
		{ID: "r1", GroupID: "g1", GroupName: "Go Developers", Reason: "spam",
			CreatedAt: renderNow.Add(-3 * time.Hour)},
		{ID: "r2", GroupID: "g3", Reason: "broken link",
			CreatedAt: renderNow.Add(-10 * time.Minute)},
	}

	got := directory.RenderReports(reports, renderNow)

	require.Len(t, got.Rows, 2)
	assert.Equal(t, "r2", got.Rows[0].ID) // newest first
	assert.Equal(t, directory.DefaultGroupName, got.Rows[0].GroupName)
	assert.Equal(t, "10 mins ago", got.Rows[0].ReportedAgo)
	assert.Equal(t, []directory.Action{
		{Kind: directory.ActionResolve, TargetID: "r1"},
		{Kind: directory.ActionDelete, TargetID: "r1"},
	}, got.Rows[1].Actions)

	empty := directory.RenderReports(nil, renderNow)
	assert.Empty(t, empty.Rows)
	assert.Equal(t, "No reports", empty.Placeholder)
}

func TestRenderActivity(t *testing.T) {
	groups := []directory.Group{
		{ID: "g1", CreatedAt: renderNow.Add(-1 * time.Hour)},  // today
		{ID: "g2", CreatedAt: renderNow.Add(-26 * time.Hour)}, // two days back
		{ID: "g3", CreatedAt: renderNow.Add(-26 * time.Hour)}, // same bucket
		{ID: "g4", CreatedAt: renderNow.AddDate(0, 0, -30)},   // outside the window
		{ID: "g5", CreatedAt: renderNow.Add(24 * time.Hour)},  // clock skew, future
	}

	got := directory.RenderActivity(groups, renderNow)

	require.Len(t, got, 7)
	assert.Equal(t, "2026-08-23", got[0].Date)
	assert.Equal(t, "2026-08-29", got[6].Date)

	total := 0
	for _, bucket := range got {
		total += bucket.Count
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, got[6].Count)
	assert.Equal(t, 2, got[5].Count)
}

func TestRenderActivity_LocalCalendarDays(t *testing.T) {
	ist := time.FixedZone("IST", int((5*time.Hour + 30*time.Minute).Seconds()))
	now := time.Date(2026, 8, 29, 1, 0, 0, 0, ist)

	groups := []directory.Group{
		// Submitted 23:00 the previous local evening; the UTC date is still
		// the 28th, so both clocks agree, but epoch-day truncation would
		// split today's bucket at 05:30 instead of local midnight.
		{ID: "g1", CreatedAt: now.Add(-2 * time.Hour).UTC()},
		{ID: "g2", CreatedAt: now.Add(-30 * time.Minute).UTC()},
	}

	got := directory.RenderActivity(groups, now)

	require.Len(t, got, 7)
	assert.Equal(t, "2026-08-29", got[6].Date)
	assert.Equal(t, 1, got[5].Count) // local Aug 28
	assert.Equal(t, 1, got[6].Count) // local Aug 29, despite the UTC date reading Aug 28
}

func TestRenderersAreDeterministic(t *testing.T) {
	groups, categories := sampleGroups(), sampleCategories()

	first, err := json.Marshal(directory.RenderAllGroups(groups, categories, directory.GroupFilter{}, renderNow))
	require.NoError(t, err)
	second, err := json.Marshal(directory.RenderAllGroups(groups, categories, directory.GroupFilter{}, renderNow))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
