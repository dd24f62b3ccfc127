// Copyright (c) 2026 GroupMela. All rights reserved.

package admin

import (
	"net/http"

	requestutil "github.com/groupmela/admin-api/internal/platform/request"
	"github.com/groupmela/admin-api/internal/platform/respond"
)

// listReports handles GET /api/v1/admin/reports requests.
func (handler *Handler) listReports(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.adminService.Reports())
}

// resolveReport handles POST /api/v1/admin/reports/{reportID}/resolve requests.
func (handler *Handler) resolveReport(writer http.ResponseWriter, request *http.Request) {
	if !confirmed(writer, request, "resolve this report") {
		return
	}

	err := handler.adminService.ResolveReport(request.Context(), requestutil.ID(request, "reportID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// dismissReport handles DELETE /api/v1/admin/reports/{reportID} requests.
func (handler *Handler) dismissReport(writer http.ResponseWriter, request *http.Request) {
	if !confirmed(writer, request, "dismiss this report") {
		return
	}

	err := handler.adminService.DismissReport(request.Context(), requestutil.ID(request, "reportID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
