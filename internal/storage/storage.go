// Package storage defines the persistence interfaces and record types shared
// by the round and treasury services. The reference deployment is
// memory-resident; implementations live in subpackages.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// Round holds the server-side state of one commit-reveal round. The secret
// is owned exclusively by the round store from creation until reveal.
type Round struct {
	ID        string
	Secret    string
	CreatedAt time.Time
}

// RoundStore persists round records.
type RoundStore interface {
	// Put stores a round keyed by its ID.
	Put(ctx context.Context, round Round) error
	// Get fetches a round by ID without mutating it.
	Get(ctx context.Context, id string) (Round, error)
	// Take atomically fetches and removes a round by ID. After Take the
	// ID is permanently invalid for Get and Take.
	Take(ctx context.Context, id string) (Round, error)
	// DeleteOlderThan removes rounds created before the cutoff and
	// reports how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// AuditEvent records one operational event (round lifecycle or settlement)
// for diagnostics. Events never contain secrets.
type AuditEvent struct {
	ID        string
	Kind      string
	RoundID   string
	Value     float64
	Timestamp time.Time
	Metadata  map[string]string
}

// AuditStore appends operational audit events.
type AuditStore interface {
	AppendAuditEvent(ctx context.Context, event AuditEvent) error
}
