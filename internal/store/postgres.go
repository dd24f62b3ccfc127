// Copyright (c) 2026 GroupMela. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupmela/admin-api/pkg/uuid"
)

// notifyChannelName is the LISTEN/NOTIFY channel raised by the documents
// trigger. The payload is the collection name that changed.
const notifyChannelName = "document_changes"

// PostgresStore implements [Store] on a single jsonb documents table.
//
// # Consistency
//
// Merge and Increment are single statements, so concurrent writers never
// lose updates: Merge uses the jsonb || concatenation operator and
// Increment rewrites one numeric field with jsonb_set inside one UPDATE.
//
// # Change signals
//
// A trigger on the documents table raises pg_notify per row mutation.
// Each Subscribe call holds a dedicated connection in LISTEN mode and
// forwards matching notifications as coalesced signals.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an already-connected pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Snapshot implements [Store].
func (s *PostgresStore) Snapshot(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, doc FROM documents WHERE collection = $1`, collection)
	if err != nil {
		return nil, fmt.Errorf("postgres store: snapshot %s: %w", collection, err)
	}
	defer rows.Close()

	snapshot := make(map[string]json.RawMessage)
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("postgres store: snapshot %s: %w", collection, err)
		}
		snapshot[id] = json.RawMessage(doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres store: snapshot %s: %w", collection, err)
	}
	return snapshot, nil
}

// Subscribe implements [Store].
func (s *PostgresStore) Subscribe(ctx context.Context, collection string) (<-chan struct{}, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres store: subscribe %s: %w", collection, err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannelName); err != nil {
		conn.Release()
		return nil, fmt.Errorf("postgres store: subscribe %s: %w", collection, err)
	}

	signal := make(chan struct{}, 1)
	signal <- struct{}{} // initial fire

	go func() {
		defer conn.Release()
		for {
			notification, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				return // context canceled or connection lost
			}
			if notification.Payload != collection {
				continue
			}
			select {
			case signal <- struct{}{}:
			default: // a pending signal already promises a refetch
			}
		}
	}()

	return signal, nil
}

// Create implements [Store].
func (s *PostgresStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("postgres store: marshal: %w", err)
	}

	id := uuid.New()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)`,
		collection, id, raw)
	if err != nil {
		return "", fmt.Errorf("postgres store: create in %s: %w", collection, err)
	}
	return id, nil
}

// Merge implements [Store]. The || operator overwrites only the supplied
// top-level fields, matching the memory and Redis backends.
func (s *PostgresStore) Merge(ctx context.Context, collection, id string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("postgres store: marshal fields: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, doc)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id)
		 DO UPDATE SET doc = documents.doc || EXCLUDED.doc, updated_at = now()`,
		collection, id, raw)
	if err != nil {
		return fmt.Errorf("postgres store: merge %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete implements [Store].
func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return fmt.Errorf("postgres store: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// DeleteAll implements [Store].
func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("postgres store: delete all: %w", err)
	}
	return nil
}

// Increment implements [Store]. One UPDATE, so concurrent increments
// serialize on the row lock and every delta lands.
func (s *PostgresStore) Increment(ctx context.Context, collection, id, field string, delta int64) (int64, error) {
	var next int64
	err := s.pool.QueryRow(ctx,
		`UPDATE documents
		 SET doc = jsonb_set(doc, ARRAY[$3],
		         to_jsonb(COALESCE((doc ->> $3)::bigint, 0) + $4)),
		     updated_at = now()
		 WHERE collection = $1 AND id = $2
		 RETURNING (doc ->> $3)::bigint`,
		collection, id, field, delta).Scan(&next)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("postgres store: increment %s/%s.%s: %w", collection, id, field, err)
	}
	return next, nil
}

// Close implements [Store]. The pool is shared and closed by main.
func (s *PostgresStore) Close() error { return nil }
