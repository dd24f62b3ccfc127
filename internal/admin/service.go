// Copyright (c) 2026 GroupMela. All rights reserved.

/*
Package admin implements the console use cases: moderating submissions,
managing categories, working the reports queue, and site-wide settings.

# Architecture

Reads render from the local [mirror.Mirror]; writes go to the remote
[store.Store] and come back through synchronization. Services never return
HTML or touch HTTP; the http_*.go files in this package are the delivery
layer over them.
*/
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/groupmela/admin-api/internal/mirror"
	"github.com/groupmela/admin-api/internal/notify"
	"github.com/groupmela/admin-api/internal/platform/apperr"
	"github.com/groupmela/admin-api/internal/platform/config"
	"github.com/groupmela/admin-api/internal/store"
)

// Service implements the admin console use cases.
type Service struct {
	store           store.Store
	mirror          *mirror.Mirror
	syncer          *mirror.Syncer
	center          *notify.Center
	log             *slog.Logger
	syncMode        string
	rejectionPolicy string
}

// NewService constructs a new [Service] with its dependencies.
//
// # Parameters
//   - st: The remote document store all mutations target.
//   - m: The local read model every view renders from.
//   - syncer: Moves store snapshots into the mirror.
//   - center: Receives one toast per successful mutation.
//   - cfg: Supplies the sync mode and rejection policy.
//   - log: Structured logger for mutation events.
func NewService(
	st store.Store,
	m *mirror.Mirror,
	syncer *mirror.Syncer,
	center *notify.Center,
	cfg *config.Config,
	log *slog.Logger,
) *Service {
	return &Service{
		store:           st,
		mirror:          m,
		syncer:          syncer,
		center:          center,
		log:             log,
		syncMode:        cfg.SyncMode,
		rejectionPolicy: cfg.RejectionPolicy,
	}
}

// SyncAll refreshes every mirrored collection from the store. This backs the
// console's refresh action and the initial load in manual mode.
func (service *Service) SyncAll(context context.Context) error {
	if err := service.syncer.RefreshAll(context); err != nil {
		return apperr.StoreUnavailable(err)
	}
	service.center.Publish("Data refreshed", notify.SeverityInfo)
	return nil
}

// # Internal Helpers

// afterMutation reconciles the mirror with a collection the service just
// wrote to. Live mode gets this for free through change signals; manual
// mode would otherwise show the admin stale rows for their own action.
func (service *Service) afterMutation(context context.Context, collections ...string) {
	if service.syncMode != config.SyncManual {
		return
	}
	for _, collection := range collections {
		if err := service.syncer.Refresh(context, collection); err != nil {
			service.log.Warn("post_mutation_refresh_failed",
				slog.String("collection", collection),
				slog.String("error", err.Error()))
		}
	}
}

// storeErr maps a store failure onto the client-safe error vocabulary.
func storeErr(err error, resource string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(resource)
	}
	if errors.Is(err, store.ErrConflict) {
		return apperr.StoreUnavailable(fmt.Errorf("too much write contention: %w", err))
	}
	return apperr.StoreUnavailable(err)
}
