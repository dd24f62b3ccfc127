// Copyright (c) 2026 GroupMela. All rights reserved.

/*
Package store is the client for the hosted document database that owns all
directory state.

The store is the single source of truth: three key-addressed JSON collections
(categories, groups, reports) plus the site settings document. Nothing in this
package interprets document contents; schema tolerance and defaulting happen
at decode time in the directory package.

# Change Signals

Subscribe returns a coalescing signal channel, not a data channel. A signal
means "this collection changed since you last looked" — consumers refetch a
full snapshot and replace their mirror wholesale. Incremental application of
individual add/change/remove events is deliberately not offered: replaying
partial events against a cache risks divergence, while snapshot replacement
cannot drift.

# Backends

Three implementations share this contract: Postgres (jsonb rows, trigger-fed
LISTEN/NOTIFY), Redis (hashes, pub/sub), and an in-process memory store for
tests and development.
*/
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// # Collections

const (
	// CollCategories holds the curated category records.
	CollCategories = "categories"
	// CollGroups holds the user-submitted group listings.
	CollGroups = "groups"
	// CollReports holds abuse reports filed against listings.
	CollReports = "reports"
	// CollSettings holds the single site-settings document.
	CollSettings = "settings"
)

// Collections lists every collection under the store root, in wipe order.
func Collections() []string {
	return []string{CollCategories, CollGroups, CollReports, CollSettings}
}

// Mirrored lists the collections the console keeps in its in-process mirror.
// Settings stay store-resident and are read on demand.
func Mirrored() []string {
	return []string{CollCategories, CollGroups, CollReports}
}

// # Errors

var (
	// ErrNotFound is returned when a record id is absent from its collection.
	ErrNotFound = errors.New("store: record not found")

	// ErrConflict is returned when an optimistic transaction exhausted its
	// retries because the record kept changing underneath it.
	ErrConflict = errors.New("store: too much contention on record")
)

// # Contract

/*
Store is the document database client.

Every operation is a suspension point: it may fail asynchronously with a
connectivity or permission error, and on failure the caller must assume the
store is unchanged. None of the operations retry automatically.
*/
type Store interface {

	/*
		Snapshot returns the full current contents of a collection as a
		one-shot read, keyed by store-assigned id.

		Parameters:
		  - ctx: context.Context
		  - collection: string

		Returns:
		  - map[string]json.RawMessage: Raw documents by id
		  - error: Connectivity or permission failures
	*/
	Snapshot(ctx context.Context, collection string) (map[string]json.RawMessage, error)

	/*
		Subscribe registers a change signal for a collection.

		The channel fires once immediately upon subscription, then after every
		add, change, or remove in the collection. Signals are coalesced: a
		pending unread signal absorbs newer ones. The subscription lives until
		ctx is cancelled. Multiple subscriptions on one collection each fire
		independently.

		Parameters:
		  - ctx: context.Context (cancellation releases the subscription)
		  - collection: string

		Returns:
		  - <-chan struct{}: Coalescing change signal
		  - error: Subscription setup failures
	*/
	Subscribe(ctx context.Context, collection string) (<-chan struct{}, error)

	/*
		Create inserts a new document under a store-generated id.

		Parameters:
		  - ctx: context.Context
		  - collection: string
		  - doc: any (JSON-marshalable record)

		Returns:
		  - string: The generated id (UUIDv7)
		  - error: Persistence failures
	*/
	Create(ctx context.Context, collection string, doc any) (string, error)

	/*
		Merge folds the given fields into the document at id, creating the
		document if absent. Fields not named are left untouched.

		Parameters:
		  - ctx: context.Context
		  - collection: string
		  - id: string
		  - fields: map[string]any

		Returns:
		  - error: Persistence failures
	*/
	Merge(ctx context.Context, collection, id string, fields map[string]any) error

	/*
		Delete removes the document at id. Deleting an absent id is not an
		error; the end state is identical.

		Parameters:
		  - ctx: context.Context
		  - collection: string
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(ctx context.Context, collection, id string) error

	/*
		DeleteAll irreversibly removes the contents of every collection.

		Returns:
		  - error: Persistence failures
	*/
	DeleteAll(ctx context.Context) error

	/*
		Increment atomically adds delta to a numeric field of the document at
		id. The read-modify-write is conditional (transactional) so that two
		concurrent increments from the same base value never lose an update.
		A missing field counts as zero; a missing document is ErrNotFound.

		Parameters:
		  - ctx: context.Context
		  - collection: string
		  - id: string
		  - field: string
		  - delta: int64

		Returns:
		  - int64: The new field value after the increment
		  - error: ErrNotFound, ErrConflict, or persistence failures
	*/
	Increment(ctx context.Context, collection, id, field string, delta int64) (int64, error)

	// Close releases client resources. Open subscriptions are released by
	// their own context cancellation.
	Close() error
}
