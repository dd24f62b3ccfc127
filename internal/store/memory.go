// Copyright (c) 2026 GroupMela. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/groupmela/admin-api/pkg/uuid"
)

// MemoryStore is an in-process [Store] used by tests and local development
// (STORE_BACKEND=memory). It keeps full fidelity with the contract, including
// coalescing change signals, so the sync policy can be exercised without a
// running database.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]json.RawMessage
	subscribers map[string][]chan struct{}
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]json.RawMessage),
		subscribers: make(map[string][]chan struct{}),
	}
}

// Snapshot implements [Store].
func (s *MemoryStore) Snapshot(_ context.Context, collection string) (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]json.RawMessage, len(s.collections[collection]))
	for id, doc := range s.collections[collection] {
		snapshot[id] = doc
	}
	return snapshot, nil
}

// Subscribe implements [Store]. The signal channel fires once immediately and
// is released when ctx is cancelled.
func (s *MemoryStore) Subscribe(ctx context.Context, collection string) (<-chan struct{}, error) {
	signal := make(chan struct{}, 1)
	signal <- struct{}{} // initial fire

	s.mu.Lock()
	s.subscribers[collection] = append(s.subscribers[collection], signal)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subscribers[collection]
		for i, sub := range subs {
			if sub == signal {
				s.subscribers[collection] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}()

	return signal, nil
}

// Create implements [Store].
func (s *MemoryStore) Create(_ context.Context, collection string, doc any) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("memory store: marshal: %w", err)
	}

	id := uuid.New()

	s.mu.Lock()
	s.ensure(collection)[id] = raw
	s.notifyLocked(collection)
	s.mu.Unlock()

	return id, nil
}

// Merge implements [Store].
func (s *MemoryStore) Merge(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.ensure(collection)

	merged := make(map[string]any)
	if existing, ok := docs[id]; ok {
		if err := json.Unmarshal(existing, &merged); err != nil {
			// A corrupt or null document is replaced by the merged fields.
			merged = make(map[string]any)
		}
	}
	for key, value := range fields {
		merged[key] = value
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("memory store: marshal: %w", err)
	}

	docs[id] = raw
	s.notifyLocked(collection)
	return nil
}

// Delete implements [Store].
func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ensure(collection), id)
	s.notifyLocked(collection)
	return nil
}

// DeleteAll implements [Store].
func (s *MemoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections = make(map[string]map[string]json.RawMessage)
	for _, collection := range Collections() {
		s.notifyLocked(collection)
	}
	return nil
}

// Increment implements [Store]. The store mutex makes the read-modify-write
// a single critical section, which is the memory equivalent of the backends'
// conditional transactions.
func (s *MemoryStore) Increment(_ context.Context, collection, id, field string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.ensure(collection)
	existing, ok := docs[id]
	if !ok {
		return 0, ErrNotFound
	}

	doc := make(map[string]any)
	if err := json.Unmarshal(existing, &doc); err != nil {
		return 0, fmt.Errorf("memory store: unmarshal: %w", err)
	}

	current := int64(0)
	if value, ok := doc[field].(float64); ok {
		current = int64(value)
	}
	next := current + delta
	doc[field] = next

	raw, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("memory store: marshal: %w", err)
	}

	docs[id] = raw
	s.notifyLocked(collection)
	return next, nil
}

// Close implements [Store].
func (s *MemoryStore) Close() error { return nil }

// ensure returns the live document map for a collection, creating it lazily.
// Caller must hold s.mu.
func (s *MemoryStore) ensure(collection string) map[string]json.RawMessage {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]json.RawMessage)
		s.collections[collection] = docs
	}
	return docs
}

// notifyLocked fires every subscriber of a collection without blocking.
// A full signal buffer already promises a refetch, so the drop is safe.
// Caller must hold s.mu.
func (s *MemoryStore) notifyLocked(collection string) {
	for _, signal := range s.subscribers[collection] {
		select {
		case signal <- struct{}{}:
		default:
		}
	}
}
