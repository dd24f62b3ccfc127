// Copyright (c) 2026 GroupMela. All rights reserved.

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groupmela/admin-api/internal/platform/apperr"
	requestutil "github.com/groupmela/admin-api/internal/platform/request"
	"github.com/groupmela/admin-api/internal/platform/respond"
)

// Handler implements the console HTTP endpoints. Everything sits behind the
// session gate except [Handler.PublicRoutes], which the public site calls.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] configured with the console routes.
//
// # Endpoints
//   - GET    /dashboard/stats        : Counter strip.
//   - GET    /dashboard/recent       : Latest five submissions.
//   - GET    /dashboard/activity     : Trailing submissions histogram.
//   - GET    /groups                 : Management table (filterable).
//   - GET    /groups/pending         : Moderation queue.
//   - POST   /groups                 : List a group directly.
//   - PUT    /groups/{groupID}       : Edit a listing.
//   - DELETE /groups/{groupID}       : Remove a listing.
//   - POST   /groups/{groupID}/approve|reject|feature|unfeature
//   - GET    /categories             : Category manager.
//   - POST   /categories             : Add a category.
//   - PUT    /categories/{categoryID}: Edit a category.
//   - DELETE /categories/{categoryID}: Remove a category.
//   - GET    /reports                : Complaints queue.
//   - POST   /reports/{reportID}/resolve : Close a complaint.
//   - DELETE /reports/{reportID}     : Dismiss a complaint.
//   - GET    /settings               : Site settings.
//   - PUT    /settings               : Save site settings.
//   - POST   /sync                   : Refresh the mirror from the store.
//   - DELETE /data                   : Wipe everything (double-confirmed).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/dashboard", func(router chi.Router) {
		router.Get("/stats", handler.dashboardStats)
		router.Get("/recent", handler.dashboardRecent)
		router.Get("/activity", handler.dashboardActivity)
	})

	router.Route("/groups", func(router chi.Router) {
		router.Get("/", handler.listGroups)
		router.Get("/pending", handler.listPendingGroups)
		router.Post("/", handler.createGroup)
		router.Put("/{groupID}", handler.updateGroup)
		router.Delete("/{groupID}", handler.deleteGroup)
		router.Post("/{groupID}/approve", handler.approveGroup)
		router.Post("/{groupID}/reject", handler.rejectGroup)
		router.Post("/{groupID}/feature", handler.featureGroup)
		router.Post("/{groupID}/unfeature", handler.unfeatureGroup)
	})

	router.Route("/categories", func(router chi.Router) {
		router.Get("/", handler.listCategories)
		router.Post("/", handler.createCategory)
		router.Put("/{categoryID}", handler.updateCategory)
		router.Delete("/{categoryID}", handler.deleteCategory)
	})

	router.Route("/reports", func(router chi.Router) {
		router.Get("/", handler.listReports)
		router.Post("/{reportID}/resolve", handler.resolveReport)
		router.Delete("/{reportID}", handler.dismissReport)
	})

	router.Route("/settings", func(router chi.Router) {
		router.Get("/", handler.getSettings)
		router.Put("/", handler.updateSettings)
	})

	router.Post("/sync", handler.sync)
	router.Delete("/data", handler.wipeAll)

	return router
}

// PublicRoutes returns the console endpoints that serve the public site
// without a session: currently just the view counter the group pages ping.
//
// # Endpoints
//   - POST /groups/{groupID}/views : Bump a listing's view counter.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/groups/{groupID}/views", handler.incrementViews)
	return router
}

// confirmed gates a visible-impact handler on the explicit confirm flag.
// Without ?confirm=true it answers 428 and the handler must return.
func confirmed(writer http.ResponseWriter, request *http.Request, action string) bool {
	if requestutil.Confirmed(request) {
		return true
	}
	respond.Error(writer, request, apperr.ConfirmationRequired(action))
	return false
}

// sync handles POST /api/v1/admin/sync requests. In manual mode this is the
// only way new store data reaches the console.
func (handler *Handler) sync(writer http.ResponseWriter, request *http.Request) {
	if err := handler.adminService.SyncAll(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
