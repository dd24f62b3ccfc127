// Copyright (c) 2026 GroupMela. All rights reserved.

package directory

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/groupmela/admin-api/internal/platform/constants"
	"github.com/groupmela/admin-api/internal/platform/validate"
	"github.com/groupmela/admin-api/pkg/timeago"
)

// # Action Descriptors

// ActionKind names one admin operation a row offers.
type ActionKind string

const (
	ActionApprove   ActionKind = "approve"
	ActionReject    ActionKind = "reject"
	ActionFeature   ActionKind = "feature"
	ActionUnfeature ActionKind = "unfeature"
	ActionEdit      ActionKind = "edit"
	ActionDelete    ActionKind = "delete"
	ActionResolve   ActionKind = "resolve"
)

// Action is a row-level operation descriptor. The console renders it as a
// button; the target pins which record the eventual mutation hits.
type Action struct {
	Kind     ActionKind `json:"kind"`
	TargetID string     `json:"target_id"`
}

// # View Models

// StatsView is the dashboard counter strip.
type StatsView struct {
	TotalGroups     int   `json:"total_groups"`
	PendingGroups   int   `json:"pending_groups"`
	ApprovedGroups  int   `json:"approved_groups"`
	FeaturedGroups  int   `json:"featured_groups"`
	TotalViews      int64 `json:"total_views"`
	TotalCategories int   `json:"total_categories"`
	OpenReports     int   `json:"open_reports"`
}

// GroupRow is one rendered line of a group table. LinkValid flags rows whose
// invite link does not look like a WhatsApp invite, so the console can mark
// them suspect.
type GroupRow struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Link         string   `json:"link"`
	LinkValid    bool     `json:"link_valid"`
	CategoryName string   `json:"category_name"`
	Status       Status   `json:"status"`
	Featured     bool     `json:"featured"`
	Members      int64    `json:"members"`
	Views        int64    `json:"views"`
	SubmittedAgo string   `json:"submitted_ago"`
	Actions      []Action `json:"actions"`
}

// GroupTable is a rendered group listing. When Rows is empty, Placeholder
// carries the message the console shows instead of a table.
type GroupTable struct {
	Rows        []GroupRow `json:"rows"`
	Placeholder string     `json:"placeholder,omitempty"`
}

// CategoryTable is the rendered category manager. When Rows is empty,
// Placeholder carries the console's empty-state message.
type CategoryTable struct {
	Rows        []CategoryRow `json:"rows"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// CategoryRow is one rendered line of the category manager.
type CategoryRow struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Icon       string   `json:"icon"`
	Slug       string   `json:"slug"`
	GroupCount int      `json:"group_count"`
	Actions    []Action `json:"actions"`
}

// ReportTable is the rendered complaints queue. When Rows is empty,
// Placeholder carries the console's empty-state message.
type ReportTable struct {
	Rows        []ReportRow `json:"rows"`
	Placeholder string      `json:"placeholder,omitempty"`
}

// ReportRow is one rendered line of the reports queue.
type ReportRow struct {
	ID          string   `json:"id"`
	GroupID     string   `json:"group_id"`
	GroupName   string   `json:"group_name"`
	Reason      string   `json:"reason"`
	Details     string   `json:"details,omitempty"`
	ReportedAgo string   `json:"reported_ago"`
	Actions     []Action `json:"actions"`
}

// ActivityBucket is one day of the submissions histogram.
type ActivityBucket struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// GroupFilter narrows the all-groups table. Empty fields match everything;
// populated fields are a conjunction.
type GroupFilter struct {
	Status     Status `json:"status"`
	CategoryID string `json:"category"`
	Query      string `json:"q"`
}

// Matches reports whether the group passes every populated predicate.
func (f GroupFilter) Matches(group Group) bool {
	if f.Status != "" && group.Status != f.Status {
		return false
	}
	if f.CategoryID != "" && group.CategoryID != f.CategoryID {
		return false
	}
	if f.Query != "" {
		needle := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(group.Name), needle) &&
			!strings.Contains(strings.ToLower(group.Description), needle) {
			return false
		}
	}
	return true
}

// # Renderers

// RenderStats counts the dashboard tiles from the mirrored snapshots.
func RenderStats(groups []Group, categories []Category, reports []Report) StatsView {
	stats := StatsView{
		TotalGroups:     len(groups),
		TotalCategories: len(categories),
		OpenReports:     len(reports),
	}
	for _, group := range groups {
		switch group.Status {
		case StatusPending:
			stats.PendingGroups++
		case StatusApproved:
			stats.ApprovedGroups++
		}
		if group.Featured {
			stats.FeaturedGroups++
		}
		stats.TotalViews += group.Views
	}
	return stats
}

/*
RenderRecentGroups renders the dashboard's latest-submissions table: up to
five groups, newest first, ties broken by ID so the ordering is stable.

Parameters:
  - groups: The mirrored groups snapshot.
  - categories: The mirrored categories snapshot, for live name joins.
  - now: The render instant, anchoring relative timestamps.

Returns:
  - GroupTable: Rows with delete actions, or an empty-state placeholder.
*/
func RenderRecentGroups(groups []Group, categories []Category, now time.Time) GroupTable {
	sorted := slices.Clone(groups)
	slices.SortFunc(sorted, func(a, b Group) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(sorted) > constants.RecentGroupsLimit {
		sorted = sorted[:constants.RecentGroupsLimit]
	}

	names := categoryNames(categories)
	rows := make([]GroupRow, 0, len(sorted))
	for _, group := range sorted {
		rows = append(rows, groupRow(group, names, now, []Action{
			{Kind: ActionDelete, TargetID: group.ID},
		}))
	}
	return table(rows, "No groups yet")
}

// RenderPendingGroups renders the moderation queue: pending submissions only,
// each offering approve and reject.
func RenderPendingGroups(groups []Group, categories []Category, now time.Time) GroupTable {
	names := categoryNames(categories)
	rows := make([]GroupRow, 0)
	for _, group := range groups {
		if group.Status != StatusPending {
			continue
		}
		rows = append(rows, groupRow(group, names, now, []Action{
			{Kind: ActionApprove, TargetID: group.ID},
			{Kind: ActionReject, TargetID: group.ID},
		}))
	}
	return table(rows, "No pending groups")
}

/*
RenderAllGroups renders the full management table through a filter.

Approved rows offer a feature toggle alongside edit and delete; the toggle's
kind flips with the group's current featured flag.

Parameters:
  - groups: The mirrored groups snapshot.
  - categories: The mirrored categories snapshot, for live name joins.
  - filter: Conjunctive predicates; the zero value matches every group.
  - now: The render instant, anchoring relative timestamps.

Returns:
  - GroupTable: Matching rows, or an empty-state placeholder.
*/
func RenderAllGroups(groups []Group, categories []Category, filter GroupFilter, now time.Time) GroupTable {
	names := categoryNames(categories)
	rows := make([]GroupRow, 0)
	for _, group := range groups {
		if !filter.Matches(group) {
			continue
		}

		actions := make([]Action, 0, 3)
		if group.Status == StatusApproved {
			toggle := ActionFeature
			if group.Featured {
				toggle = ActionUnfeature
			}
			actions = append(actions, Action{Kind: toggle, TargetID: group.ID})
		}
		actions = append(actions,
			Action{Kind: ActionEdit, TargetID: group.ID},
			Action{Kind: ActionDelete, TargetID: group.ID},
		)

		rows = append(rows, groupRow(group, names, now, actions))
	}
	return table(rows, "No groups found")
}

// RenderCategories renders the category manager. Group counts are derived
// from the groups snapshot at render time, never stored.
func RenderCategories(categories []Category, groups []Group) CategoryTable {
	counts := make(map[string]int, len(categories))
	for _, group := range groups {
		counts[group.CategoryID]++
	}

	rows := make([]CategoryRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, CategoryRow{
			ID:         category.ID,
			Name:       category.Name,
			Icon:       category.Icon,
			Slug:       category.Slug,
			GroupCount: counts[category.ID],
			Actions: []Action{
				{Kind: ActionEdit, TargetID: category.ID},
				{Kind: ActionDelete, TargetID: category.ID},
			},
		})
	}
	if len(rows) == 0 {
		return CategoryTable{Rows: rows, Placeholder: "No categories yet"}
	}
	return CategoryTable{Rows: rows}
}

// RenderReports renders the complaints queue, newest first.
func RenderReports(reports []Report, now time.Time) ReportTable {
	sorted := slices.Clone(reports)
	slices.SortFunc(sorted, func(a, b Report) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	rows := make([]ReportRow, 0, len(sorted))
	for _, report := range sorted {
		groupName := report.GroupName
		if groupName == "" {
			groupName = DefaultGroupName
		}
		rows = append(rows, ReportRow{
			ID:          report.ID,
			GroupID:     report.GroupID,
			GroupName:   groupName,
			Reason:      report.Reason,
			Details:     report.Details,
			ReportedAgo: timeago.Format(report.CreatedAt, now),
			Actions: []Action{
				{Kind: ActionResolve, TargetID: report.ID},
				{Kind: ActionDelete, TargetID: report.ID},
			},
		})
	}
	if len(rows) == 0 {
		return ReportTable{Rows: rows, Placeholder: "No reports"}
	}
	return ReportTable{Rows: rows}
}

/*
RenderActivity buckets submissions into a trailing histogram, one bucket per
calendar day ending today, oldest first. Days without submissions appear
with a zero count so the chart keeps its full width.

Parameters:
  - groups: The mirrored groups snapshot.
  - now: The render instant; its calendar day is the last bucket.

Returns:
  - []ActivityBucket: Exactly [constants.ActivityHistogramDays] buckets.
*/
func RenderActivity(groups []Group, now time.Time) []ActivityBucket {
	location := now.Location()
	today := midnight(now)
	start := today.AddDate(0, 0, -(constants.ActivityHistogramDays - 1))

	counts := make(map[string]int)
	for _, group := range groups {
		day := midnight(group.CreatedAt.In(location))
		if day.Before(start) || day.After(today) {
			continue
		}
		counts[day.Format(time.DateOnly)]++
	}

	buckets := make([]ActivityBucket, 0, constants.ActivityHistogramDays)
	for i := 0; i < constants.ActivityHistogramDays; i++ {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		buckets = append(buckets, ActivityBucket{Date: date, Count: counts[date]})
	}
	return buckets
}

// # Internal Helpers

// midnight floors t to the start of its calendar day, keeping the location.
func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// categoryNames indexes live category names by ID for row joins.
func categoryNames(categories []Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names
}

// groupRow renders one group line, resolving the category name live first,
// then from the denormalized snapshot, then to the unknown placeholder.
func groupRow(group Group, names map[string]string, now time.Time, actions []Action) GroupRow {
	categoryName := names[group.CategoryID]
	if categoryName == "" {
		categoryName = group.CategoryName
	}
	if categoryName == "" {
		categoryName = UnknownCategoryName
	}

	return GroupRow{
		ID:           group.ID,
		Name:         group.Name,
		Link:         group.InviteLink,
		LinkValid:    validate.IsInviteLink(group.InviteLink),
		CategoryName: categoryName,
		Status:       group.Status,
		Featured:     group.Featured,
		Members:      group.Members,
		Views:        group.Views,
		SubmittedAgo: timeago.Format(group.CreatedAt, now),
		Actions:      actions,
	}
}

// table wraps rows, substituting the empty-state placeholder.
func table(rows []GroupRow, placeholder string) GroupTable {
	if len(rows) == 0 {
		return GroupTable{Rows: rows, Placeholder: placeholder}
	}
	return GroupTable{Rows: rows}
}
