// Package memory provides the in-memory store backing the reference
// deployment. All state is volatile and lost on process restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/fairflip/internal/storage"
)

// Store is a mutex-guarded in-memory implementation of
// storage.RoundStore and storage.AuditStore.
type Store struct {
	mu     sync.Mutex
	rounds map[string]storage.Round
	events []storage.AuditEvent
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{rounds: make(map[string]storage.Round)}
}

// Put stores a round record.
func (s *Store) Put(ctx context.Context, round storage.Round) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds[round.ID] = round
	return nil
}

// Get fetches a round record by ID.
func (s *Store) Get(ctx context.Context, id string) (storage.Round, error) {
	if err := ctx.Err(); err != nil {
		return storage.Round{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[id]
	if !ok {
		return storage.Round{}, storage.ErrNotFound
	}
	return round, nil
}

// Take atomically fetches and removes a round record by ID.
func (s *Store) Take(ctx context.Context, id string) (storage.Round, error) {
	if err := ctx.Err(); err != nil {
		return storage.Round{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[id]
	if !ok {
		return storage.Round{}, storage.ErrNotFound
	}
	delete(s.rounds, id)
	return round, nil
}

// DeleteOlderThan removes rounds created before the cutoff.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, round := range s.rounds {
		if round.CreatedAt.Before(cutoff) {
			delete(s.rounds, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of resident rounds.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rounds)
}

// AppendAuditEvent appends an audit event.
func (s *Store) AppendAuditEvent(ctx context.Context, event storage.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// AuditEvents returns a copy of the recorded audit events.
func (s *Store) AuditEvents() []storage.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]storage.AuditEvent, len(s.events))
	copy(events, s.events)
	return events
}
