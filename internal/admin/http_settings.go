// Copyright (c) 2026 GroupMela. All rights reserved.

package admin

import (
	"encoding/json"
	"net/http"

	requestutil "github.com/groupmela/admin-api/internal/platform/request"
	"github.com/groupmela/admin-api/internal/platform/respond"
	"github.com/groupmela/admin-api/internal/platform/validate"
)

// getSettings handles GET /api/v1/admin/settings requests.
func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	settings, err := handler.adminService.Settings(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}

// updateSettings handles PUT /api/v1/admin/settings requests.
func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	var input SiteSettings
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.adminService.UpdateSettings(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// wipeRequest carries the typed confirmation phrase for a full wipe.
type wipeRequest struct {
	Phrase string `json:"phrase"`
}

// wipeAll handles DELETE /api/v1/admin/data requests.
//
// # Parameters
//   - writer: The HTTP response constructor.
//   - request: Must carry ?confirm=true and a JSON body with the typed phrase.
//
// # Returns
//   - Writes HTTP 428 Precondition Required without the confirm flag.
//   - Writes HTTP 204 No Content otherwise, whether or not the phrase
//     matched; a mismatch aborts the wipe without complaint.
func (handler *Handler) wipeAll(writer http.ResponseWriter, request *http.Request) {
	var input wipeRequest
	if request.Body != nil {
		// The body is optional; an unconfirmed request sends none.
		_ = json.NewDecoder(request.Body).Decode(&input)
	}

	_, err := handler.adminService.WipeAll(request.Context(), requestutil.Confirmed(request), input.Phrase)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
