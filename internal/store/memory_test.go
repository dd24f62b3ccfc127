// Copyright (c) 2026 GroupMela. All rights reserved.

package store_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupmela/admin-api/internal/store"
)

func TestMemoryStore_CreateAndSnapshot(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	id, err := s.Create(ctx, store.CollGroups, map[string]any{
		"name":   "Go Developers",
		"status": "pending",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snapshot, err := s.Snapshot(ctx, store.CollGroups)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(snapshot[id], &doc))
	assert.Equal(t, "Go Developers", doc["name"])
	assert.Equal(t, "pending", doc["status"])
}

func TestMemoryStore_Merge(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	id, err := s.Create(ctx, store.CollGroups, map[string]any{
		"name":   "Go Developers",
		"status": "pending",
		"views":  5,
	})
	require.NoError(t, err)

	err = s.Merge(ctx, store.CollGroups, id, map[string]any{"status": "approved"})
	require.NoError(t, err)

	snapshot, err := s.Snapshot(ctx, store.CollGroups)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(snapshot[id], &doc))

	// Only the supplied field moves; the rest of the document survives.
	assert.Equal(t, "approved", doc["status"])
	assert.Equal(t, "Go Developers", doc["name"])
	assert.Equal(t, float64(5), doc["views"])
}

func TestMemoryStore_MergeMissingCreates(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	err := s.Merge(ctx, store.CollSettings, "site", map[string]any{"siteName": "GroupMela"})
	require.NoError(t, err)

	snapshot, err := s.Snapshot(ctx, store.CollSettings)
	require.NoError(t, err)
	require.Contains(t, snapshot, "site")
}

func TestMemoryStore_Delete(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	id, err := s.Create(ctx, store.CollReports, map[string]any{"reason": "spam"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, store.CollReports, id))

	snapshot, err := s.Snapshot(ctx, store.CollReports)
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}

func TestMemoryStore_DeleteAll(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	for _, collection := range store.Collections() {
		_, err := s.Create(ctx, collection, map[string]any{"seed": true})
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteAll(ctx))

	for _, collection := range store.Collections() {
		snapshot, err := s.Snapshot(ctx, collection)
		require.NoError(t, err)
		assert.Empty(t, snapshot, "collection %s should be empty", collection)
	}
}

func TestMemoryStore_Increment(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	id, err := s.Create(ctx, store.CollGroups, map[string]any{"views": 5})
	require.NoError(t, err)

	next, err := s.Increment(ctx, store.CollGroups, id, "views", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(6), next)
}

func TestMemoryStore_IncrementMissingDocument(t *testing.T) {
	s := store.NewMemoryStore()

	_, err := s.Increment(context.Background(), store.CollGroups, "nope", "views", 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_IncrementConcurrent(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	id, err := s.Create(ctx, store.CollGroups, map[string]any{"views": 5})
	require.NoError(t, err)

	// Two racing increments from views=5 must land at 7, never 6.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, incErr := s.Increment(ctx, store.CollGroups, id, "views", 1)
			assert.NoError(t, incErr)
		}()
	}
	wg.Wait()

	snapshot, err := s.Snapshot(ctx, store.CollGroups)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(snapshot[id], &doc))
	assert.Equal(t, float64(7), doc["views"])
}

func TestMemoryStore_SubscribeSignals(t *testing.T) {
	s := store.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signal, err := s.Subscribe(ctx, store.CollGroups)
	require.NoError(t, err)

	// The subscription fires once immediately so consumers load an
	// initial snapshot without waiting for a write.
	select {
	case <-signal:
	case <-time.After(time.Second):
		t.Fatal("expected initial signal")
	}

	_, err = s.Create(ctx, store.CollGroups, map[string]any{"name": "x"})
	require.NoError(t, err)

	select {
	case <-signal:
	case <-time.After(time.Second):
		t.Fatal("expected signal after create")
	}
}

func TestMemoryStore_SubscribeScopedToCollection(t *testing.T) {
	s := store.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signal, err := s.Subscribe(ctx, store.CollCategories)
	require.NoError(t, err)
	<-signal // drain the initial fire

	_, err = s.Create(ctx, store.CollGroups, map[string]any{"name": "x"})
	require.NoError(t, err)

	select {
	case <-signal:
		t.Fatal("group write must not signal the categories subscription")
	case <-time.After(50 * time.Millisecond):
	}
}
