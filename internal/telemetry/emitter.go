// Package telemetry records operational audit events for round lifecycle and
// settlement activity.
package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/fairflip/internal/storage"
)

// Event kinds recorded by the services.
const (
	KindRoundCreated   = "round.created"
	KindRoundResolved  = "round.resolved"
	KindRoundRevealed  = "round.revealed"
	KindRoundsEvicted  = "rounds.evicted"
	KindTreasuryEntry  = "treasury.entry"
	KindTreasuryPayout = "treasury.payout"
)

// Emitter records operational audit events.
type Emitter struct {
	store storage.AuditStore
	clock func() time.Time
}

// NewEmitter creates a new audit emitter.
func NewEmitter(store storage.AuditStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records an audit event. It is a no-op when the emitter or its store
// is nil, so callers never need to guard emission.
func (e *Emitter) Emit(ctx context.Context, event storage.AuditEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		if e.clock == nil {
			event.Timestamp = time.Now().UTC()
		} else {
			event.Timestamp = e.clock().UTC()
		}
	}
	return e.store.AppendAuditEvent(ctx, event)
}
