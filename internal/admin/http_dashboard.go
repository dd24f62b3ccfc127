// Copyright (c) 2026 GroupMela. All rights reserved.

package admin

import (
	"net/http"

	"github.com/groupmela/admin-api/internal/platform/respond"
)

// dashboardStats handles GET /api/v1/admin/dashboard/stats requests.
func (handler *Handler) dashboardStats(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.adminService.Stats())
}

// dashboardRecent handles GET /api/v1/admin/dashboard/recent requests.
func (handler *Handler) dashboardRecent(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.adminService.RecentGroups())
}

// dashboardActivity handles GET /api/v1/admin/dashboard/activity requests.
func (handler *Handler) dashboardActivity(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.adminService.Activity())
}
