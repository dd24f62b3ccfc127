// Copyright (c) 2026 GroupMela. All rights reserved.

package admin

import (
	"time"

	"github.com/groupmela/admin-api/internal/directory"
)

// The read side. Every method here renders purely from the mirror; nothing
// touches the store, so reads stay fast no matter where the backend lives.

// Stats renders the dashboard counter strip.
func (service *Service) Stats() directory.StatsView {
	return directory.RenderStats(
		service.mirror.Groups(), service.mirror.Categories(), service.mirror.Reports())
}

// RecentGroups renders the dashboard's latest submissions.
func (service *Service) RecentGroups() directory.GroupTable {
	return directory.RenderRecentGroups(
		service.mirror.Groups(), service.mirror.Categories(), time.Now())
}

// PendingGroups renders the moderation queue.
func (service *Service) PendingGroups() directory.GroupTable {
	return directory.RenderPendingGroups(
		service.mirror.Groups(), service.mirror.Categories(), time.Now())
}

// AllGroups renders the management table through a filter.
func (service *Service) AllGroups(filter directory.GroupFilter) directory.GroupTable {
	return directory.RenderAllGroups(
		service.mirror.Groups(), service.mirror.Categories(), filter, time.Now())
}

// Categories renders the category manager with derived group counts.
func (service *Service) Categories() directory.CategoryTable {
	return directory.RenderCategories(service.mirror.Categories(), service.mirror.Groups())
}

// Reports renders the complaints queue, newest first.
func (service *Service) Reports() directory.ReportTable {
	return directory.RenderReports(service.mirror.Reports(), time.Now())
}

// Activity renders the trailing submissions histogram.
func (service *Service) Activity() []directory.ActivityBucket {
	return directory.RenderActivity(service.mirror.Groups(), time.Now())
}
