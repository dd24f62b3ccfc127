// Copyright (c) 2026 GroupMela. All rights reserved.

package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/groupmela/admin-api/internal/directory"
	"github.com/groupmela/admin-api/internal/store"
)

// Syncer moves snapshots from the store into the [Mirror].
//
// In live mode it subscribes to each collection's change signal and refetches
// on every fire; in manual mode nothing moves until an explicit refresh.
// Undecodable documents are skipped with a warning rather than failing the
// whole pass, so one corrupt legacy record cannot blank the console.
type Syncer struct {
	store  store.Store
	mirror *Mirror
	log    *slog.Logger
}

// NewSyncer wires a syncer over the given store and mirror.
func NewSyncer(st store.Store, m *Mirror, log *slog.Logger) *Syncer {
	return &Syncer{store: st, mirror: m, log: log}
}

/*
Run drives live synchronization until the context is canceled.

One goroutine per mirrored collection blocks on the store's change signal and
refreshes on each fire. The initial signal every subscription emits doubles as
the first load, so callers get a populated mirror without a separate priming
step.

Parameters:
  - context: Cancel to stop all subscription loops.

Returns:
  - error: Non-nil when any subscription could not be established.
*/
func (s *Syncer) Run(context context.Context) error {
	collections := store.Mirrored()

	signals := make(map[string]<-chan struct{}, len(collections))
	for _, collection := range collections {
		signal, err := s.store.Subscribe(context, collection)
		if err != nil {
			return fmt.Errorf("sync %s: %w", collection, err)
		}
		signals[collection] = signal
	}

	var wg sync.WaitGroup
	for _, collection := range collections {
		collection := collection
		wg.Add(1)
		go func() {
			defer wg.Done()
			signal := signals[collection]
			for {
				select {
				case <-context.Done():
					return
				case <-signal:
					if err := s.Refresh(context, collection); err != nil {
						s.log.Error("mirror_refresh_failed",
							slog.String("collection", collection),
							slog.String("error", err.Error()))
					}
				}
			}
		}()
	}
	wg.Wait()
	return nil
}

// RefreshAll refreshes every mirrored collection once. This is the manual
// sync entry point and the startup load for manual mode.
func (s *Syncer) RefreshAll(context context.Context) error {
	for _, collection := range store.Mirrored() {
		if err := s.Refresh(context, collection); err != nil {
			return err
		}
	}
	return nil
}

/*
Refresh fetches one collection's full snapshot, decodes it, and swaps it into
the mirror.

Parameters:
  - context: Carries cancellation to the store fetch.
  - collection: One of the mirrored collection names.

Returns:
  - error: Non-nil when the store fetch fails or the collection is unknown.
*/
func (s *Syncer) Refresh(context context.Context, collection string) error {
	snapshot, err := s.store.Snapshot(context, collection)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", collection, err)
	}

	switch collection {
	case store.CollCategories:
		categories := make([]directory.Category, 0, len(snapshot))
		for id, raw := range snapshot {
			category, err := directory.DecodeCategory(id, raw)
			if err != nil {
				s.skip(collection, id, err)
				continue
			}
			categories = append(categories, category)
		}
		s.mirror.ReplaceCategories(categories)

	case store.CollGroups:
		groups := make([]directory.Group, 0, len(snapshot))
		for id, raw := range snapshot {
			group, err := directory.DecodeGroup(id, raw)
			if err != nil {
				s.skip(collection, id, err)
				continue
			}
			groups = append(groups, group)
		}
		s.mirror.ReplaceGroups(groups)

	case store.CollReports:
		reports := make([]directory.Report, 0, len(snapshot))
		for id, raw := range snapshot {
			report, err := directory.DecodeReport(id, raw)
			if err != nil {
				s.skip(collection, id, err)
				continue
			}
			reports = append(reports, report)
		}
		s.mirror.ReplaceReports(reports)

	default:
		return fmt.Errorf("refresh: unknown collection %q", collection)
	}

	s.log.Debug("mirror_refreshed",
		slog.String("collection", collection),
		slog.Int("records", len(snapshot)))
	return nil
}

func (s *Syncer) skip(collection, id string, err error) {
	s.log.Warn("mirror_decode_skipped",
		slog.String("collection", collection),
		slog.String("id", id),
		slog.String("error", err.Error()))
}
