// Copyright (c) 2026 GroupMela. All rights reserved.

package admin

import (
	"encoding/json"
	"net/http"

	requestutil "github.com/groupmela/admin-api/internal/platform/request"
	"github.com/groupmela/admin-api/internal/platform/respond"
	"github.com/groupmela/admin-api/internal/platform/validate"
)

// listCategories handles GET /api/v1/admin/categories requests.
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.adminService.Categories())
}

// createCategory handles POST /api/v1/admin/categories requests.
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input CategoryInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	id, err := handler.adminService.CreateCategory(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"id": id})
}

// updateCategory handles PUT /api/v1/admin/categories/{categoryID} requests.
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var input CategoryInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	err := handler.adminService.UpdateCategory(request.Context(), requestutil.ID(request, "categoryID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// deleteCategory handles DELETE /api/v1/admin/categories/{categoryID} requests.
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if !confirmed(writer, request, "delete this category") {
		return
	}

	err := handler.adminService.DeleteCategory(request.Context(), requestutil.ID(request, "categoryID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
