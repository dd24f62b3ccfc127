// Copyright (c) 2026 GroupMela. All rights reserved.

/*
Package mirror keeps an in-process read model of the remote document store.

Every admin read renders from this mirror instead of querying the store, so
views stay fast and consistent even when the backend is a network hop away.

# Replacement Semantics

Each collection is replaced wholesale: a sync pass decodes the full remote
snapshot and swaps it in under the write lock. There is no per-record patching,
which means a reader never observes a half-applied sync.
*/
package mirror

import (
	"cmp"
	"slices"
	"sync"

	"github.com/groupmela/admin-api/internal/directory"
)

// Mirror holds the decoded snapshots behind a read-write lock. The zero value
// is empty and usable; readers before the first sync see empty collections.
type Mirror struct {
	mu         sync.RWMutex
	categories []directory.Category
	groups     []directory.Group
	reports    []directory.Report
}

// New returns an empty mirror.
func New() *Mirror {
	return &Mirror{}
}

// ReplaceCategories swaps in a full categories snapshot, sorted by ID so
// renders are deterministic across syncs.
func (m *Mirror) ReplaceCategories(categories []directory.Category) {
	slices.SortFunc(categories, func(a, b directory.Category) int {
		return cmp.Compare(a.ID, b.ID)
	})
	m.mu.Lock()
	m.categories = categories
	m.mu.Unlock()
}

// ReplaceGroups swaps in a full groups snapshot, sorted by ID.
func (m *Mirror) ReplaceGroups(groups []directory.Group) {
	slices.SortFunc(groups, func(a, b directory.Group) int {
		return cmp.Compare(a.ID, b.ID)
	})
	m.mu.Lock()
	m.groups = groups
	m.mu.Unlock()
}

// ReplaceReports swaps in a full reports snapshot, sorted by ID.
func (m *Mirror) ReplaceReports(reports []directory.Report) {
	slices.SortFunc(reports, func(a, b directory.Report) int {
		return cmp.Compare(a.ID, b.ID)
	})
	m.mu.Lock()
	m.reports = reports
	m.mu.Unlock()
}

// Categories returns the current snapshot. The slice is shared; callers must
// treat it as read-only and clone before sorting.
func (m *Mirror) Categories() []directory.Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.categories
}

// Groups returns the current snapshot under the same read-only contract.
func (m *Mirror) Groups() []directory.Group {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.groups
}

// Reports returns the current snapshot under the same read-only contract.
func (m *Mirror) Reports() []directory.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reports
}

// Group looks up one group by ID in the current snapshot.
func (m *Mirror) Group(id string) (directory.Group, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, group := range m.groups {
		if group.ID == id {
			return group, true
		}
	}
	return directory.Group{}, false
}

// Category looks up one category by ID in the current snapshot.
func (m *Mirror) Category(id string) (directory.Category, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, category := range m.categories {
		if category.ID == id {
			return category, true
		}
	}
	return directory.Category{}, false
}

// Report looks up one report by ID in the current snapshot.
func (m *Mirror) Report(id string) (directory.Report, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, report := range m.reports {
		if report.ID == id {
			return report, true
		}
	}
	return directory.Report{}, false
}
