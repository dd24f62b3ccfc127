// Copyright (c) 2026 GroupMela. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/groupmela/admin-api/internal/platform/constants"
	"github.com/groupmela/admin-api/pkg/uuid"
)

// maxTxRetries bounds the optimistic-transaction retry loop. Past this the
// record is too contended and the caller gets ErrConflict.
const maxTxRetries = 10

// RedisStore implements [Store] on Redis: one hash per collection with JSON
// document values, and a pub/sub channel per collection for change signals.
//
// # Consistency
//
// Merge and Increment are WATCH-guarded optimistic transactions: the document
// is read, rewritten, and committed only if no other client touched the hash
// in between. This is what makes concurrent view-count increments lossless.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-connected Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// collectionKey returns the hash key holding a collection's documents.
func collectionKey(collection string) string {
	return constants.RedisPrefixCollection + collection
}

// changesChannel returns the pub/sub channel carrying a collection's signals.
func changesChannel(collection string) string {
	return constants.RedisPrefixChanges + collection
}

// Snapshot implements [Store].
func (s *RedisStore) Snapshot(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	entries, err := s.client.HGetAll(ctx, collectionKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis store: snapshot %s: %w", collection, err)
	}

	snapshot := make(map[string]json.RawMessage, len(entries))
	for id, doc := range entries {
		snapshot[id] = json.RawMessage(doc)
	}
	return snapshot, nil
}

// Subscribe implements [Store].
func (s *RedisStore) Subscribe(ctx context.Context, collection string) (<-chan struct{}, error) {
	pubsub := s.client.Subscribe(ctx, changesChannel(collection))

	// Fail fast if the subscription could not be established.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("redis store: subscribe %s: %w", collection, err)
	}

	signal := make(chan struct{}, 1)
	signal <- struct{}{} // initial fire

	go func() {
		defer func() { _ = pubsub.Close() }()
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-messages:
				if !ok {
					return
				}
				select {
				case signal <- struct{}{}:
				default: // a pending signal already promises a refetch
				}
			}
		}
	}()

	return signal, nil
}

// Create implements [Store].
func (s *RedisStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("redis store: marshal: %w", err)
	}

	id := uuid.New()
	if err := s.client.HSet(ctx, collectionKey(collection), id, string(raw)).Err(); err != nil {
		return "", fmt.Errorf("redis store: create in %s: %w", collection, err)
	}

	s.publish(ctx, collection)
	return id, nil
}

// Merge implements [Store].
func (s *RedisStore) Merge(ctx context.Context, collection, id string, fields map[string]any) error {
	key := collectionKey(collection)

	transaction := func(tx *redis.Tx) error {
		merged := make(map[string]any)

		existing, err := tx.HGet(ctx, key, id).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			if unmarshalErr := json.Unmarshal([]byte(existing), &merged); unmarshalErr != nil {
				merged = make(map[string]any)
			}
		}

		for field, value := range fields {
			merged[field] = value
		}

		raw, err := json.Marshal(merged)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, string(raw))
			return nil
		})
		return err
	}

	if err := s.retryTx(ctx, transaction, key); err != nil {
		return fmt.Errorf("redis store: merge %s/%s: %w", collection, id, err)
	}

	s.publish(ctx, collection)
	return nil
}

// Delete implements [Store].
func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	if err := s.client.HDel(ctx, collectionKey(collection), id).Err(); err != nil {
		return fmt.Errorf("redis store: delete %s/%s: %w", collection, id, err)
	}

	s.publish(ctx, collection)
	return nil
}

// DeleteAll implements [Store].
func (s *RedisStore) DeleteAll(ctx context.Context) error {
	keys := make([]string, 0, len(Collections()))
	for _, collection := range Collections() {
		keys = append(keys, collectionKey(collection))
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis store: delete all: %w", err)
	}

	for _, collection := range Collections() {
		s.publish(ctx, collection)
	}
	return nil
}

// Increment implements [Store].
func (s *RedisStore) Increment(ctx context.Context, collection, id, field string, delta int64) (int64, error) {
	key := collectionKey(collection)
	var next int64

	transaction := func(tx *redis.Tx) error {
		existing, err := tx.HGet(ctx, key, id).Result()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		doc := make(map[string]any)
		if err := json.Unmarshal([]byte(existing), &doc); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}

		current := int64(0)
		if value, ok := doc[field].(float64); ok {
			current = int64(value)
		}
		next = current + delta
		doc[field] = next

		raw, err := json.Marshal(doc)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, string(raw))
			return nil
		})
		return err
	}

	if err := s.retryTx(ctx, transaction, key); err != nil {
		return 0, fmt.Errorf("redis store: increment %s/%s.%s: %w", collection, id, field, err)
	}

	s.publish(ctx, collection)
	return next, nil
}

// Close implements [Store]. The underlying client is shared (sessions also
// use it), so its lifecycle belongs to main.
func (s *RedisStore) Close() error { return nil }

// retryTx runs an optimistic transaction, retrying on WATCH conflicts.
func (s *RedisStore) retryTx(ctx context.Context, transaction func(tx *redis.Tx) error, keys ...string) error {
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, transaction, keys...)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue // another client won the race; re-read and retry
		}
		return err
	}
	return ErrConflict
}

// publish emits a change signal for the collection. Failures are swallowed:
// the write itself succeeded, and live subscribers will still converge on
// their next signal or manual refresh.
func (s *RedisStore) publish(ctx context.Context, collection string) {
	_ = s.client.Publish(ctx, changesChannel(collection), "changed").Err()
}
