// Copyright (c) 2026 GroupMela. All rights reserved.

package admin

import (
	"encoding/json"
	"net/http"

	"github.com/groupmela/admin-api/internal/directory"
	requestutil "github.com/groupmela/admin-api/internal/platform/request"
	"github.com/groupmela/admin-api/internal/platform/respond"
	"github.com/groupmela/admin-api/internal/platform/validate"
)

// listGroups handles GET /api/v1/admin/groups requests.
//
// # Query Parameters
//   - status: pending | approved | rejected
//   - category: a category document id
//   - q: case-insensitive substring over name and description
//
// All three are optional and conjoin when combined.
func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := directory.GroupFilter{
		Status:     directory.Status(query.Get("status")),
		CategoryID: query.Get("category"),
		Query:      query.Get("q"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		respond.Error(writer, request, validate.New().
			OneOf("status", string(filter.Status), "pending", "approved", "rejected").Err())
		return
	}

	respond.OK(writer, handler.adminService.AllGroups(filter))
}

// listPendingGroups handles GET /api/v1/admin/groups/pending requests.
func (handler *Handler) listPendingGroups(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.adminService.PendingGroups())
}

// createGroup handles POST /api/v1/admin/groups requests.
//
// # Parameters
//   - writer: The HTTP response constructor.
//   - request: The incoming HTTP request payload.
//
// # Returns
//   - Writes HTTP 201 Created with the new document id.
//   - Writes HTTP 400 Bad Request if validation rules fail.
func (handler *Handler) createGroup(writer http.ResponseWriter, request *http.Request) {
	var input GroupInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	id, err := handler.adminService.CreateGroup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"id": id})
}

// updateGroup handles PUT /api/v1/admin/groups/{groupID} requests.
func (handler *Handler) updateGroup(writer http.ResponseWriter, request *http.Request) {
	var input GroupInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	err := handler.adminService.UpdateGroup(request.Context(), requestutil.ID(request, "groupID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// deleteGroup handles DELETE /api/v1/admin/groups/{groupID} requests.
func (handler *Handler) deleteGroup(writer http.ResponseWriter, request *http.Request) {
	if !confirmed(writer, request, "delete this group") {
		return
	}

	err := handler.adminService.DeleteGroup(request.Context(), requestutil.ID(request, "groupID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// approveGroup handles POST /api/v1/admin/groups/{groupID}/approve requests.
func (handler *Handler) approveGroup(writer http.ResponseWriter, request *http.Request) {
	if !confirmed(writer, request, "approve this group") {
		return
	}

	err := handler.adminService.ApproveGroup(request.Context(), requestutil.ID(request, "groupID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// rejectGroup handles POST /api/v1/admin/groups/{groupID}/reject requests.
func (handler *Handler) rejectGroup(writer http.ResponseWriter, request *http.Request) {
	if !confirmed(writer, request, "reject this group") {
		return
	}

	err := handler.adminService.RejectGroup(request.Context(), requestutil.ID(request, "groupID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// featureGroup handles POST /api/v1/admin/groups/{groupID}/feature requests.
func (handler *Handler) featureGroup(writer http.ResponseWriter, request *http.Request) {
	err := handler.adminService.SetFeatured(request.Context(), requestutil.ID(request, "groupID"), true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// unfeatureGroup handles POST /api/v1/admin/groups/{groupID}/unfeature requests.
func (handler *Handler) unfeatureGroup(writer http.ResponseWriter, request *http.Request) {
	err := handler.adminService.SetFeatured(request.Context(), requestutil.ID(request, "groupID"), false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// incrementViews handles POST /api/v1/public/groups/{groupID}/views requests.
// This is the one console endpoint the public site calls, so it sits outside
// the session gate.
func (handler *Handler) incrementViews(writer http.ResponseWriter, request *http.Request) {
	views, err := handler.adminService.IncrementViews(request.Context(), requestutil.ID(request, "groupID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{"views": views})
}
