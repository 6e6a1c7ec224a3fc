// Package treasury tracks aggregate pool figures derived from settled
// entries and payouts. It performs purely additive and subtractive
// arithmetic and has no knowledge of fairness internals; values arrive here
// only after the payment collaborator reports settlement.
//
// # Settlement rule
//
// RecordPayout uses the pool-at-payout rule: the house share is computed
// from the pool total at the moment of payout, not from the value recorded
// for any particular round. Callers must record the winning round's entry
// before its payout and must call RecordPayout exactly once per settled
// winning round.
package treasury

import (
	"context"
	"sync"

	apperrors "github.com/louisbranch/fairflip/internal/platform/errors"
	"github.com/louisbranch/fairflip/internal/storage"
	"github.com/louisbranch/fairflip/internal/telemetry"
)

// Reference shares from the original product: half the pool is payable to
// winners, a tenth goes to the house, and the rest stays as float.
const (
	DefaultWinnerShare = 0.50
	DefaultHouseShare  = 0.10
)

var (
	// ErrInvalidShares indicates a share configuration outside [0,1] or
	// summing above 1.
	ErrInvalidShares = apperrors.New(apperrors.CodeShareConfigInvalid, "winner and house shares must each be in [0,1] and sum to at most 1")
	// ErrInvalidEntryValue indicates a non-positive entry value.
	ErrInvalidEntryValue = apperrors.New(apperrors.CodeEntryValueInvalid, "entry value must be positive")
	// ErrInvalidPayoutValue indicates a negative payout value.
	ErrInvalidPayoutValue = apperrors.New(apperrors.CodePayoutValueInvalid, "payout value must not be negative")
)

// Config holds the ledger share configuration.
type Config struct {
	// WinnerShare is the fraction of the pool payable as winnings.
	WinnerShare float64
	// HouseShare is the fraction of the pool retained by the house at
	// payout time.
	HouseShare float64
}

// Stats is a read-only snapshot of the treasury aggregates.
type Stats struct {
	TotalPool         float64 `json:"totalPool"`
	AvailableWinnings float64 `json:"availableWinnings"`
	HouseBalance      float64 `json:"houseBalance"`
	EntryCount        uint64  `json:"entryCount"`
}

// Ledger is the process-wide treasury aggregate. All mutations are
// serialized by a single mutex.
type Ledger struct {
	mu      sync.Mutex
	cfg     Config
	emitter *telemetry.Emitter

	totalPool    float64
	houseBalance float64
	entryCount   uint64
}

// NewLedger creates a ledger with the provided share configuration. The
// emitter may be nil.
func NewLedger(cfg Config, emitter *telemetry.Emitter) (*Ledger, error) {
	if cfg.WinnerShare < 0 || cfg.WinnerShare > 1 ||
		cfg.HouseShare < 0 || cfg.HouseShare > 1 ||
		cfg.WinnerShare+cfg.HouseShare > 1 {
		return nil, ErrInvalidShares
	}
	return &Ledger{cfg: cfg, emitter: emitter}, nil
}

// RecordEntry records one settled entry payment.
func (l *Ledger) RecordEntry(ctx context.Context, value float64) error {
	if value <= 0 {
		return ErrInvalidEntryValue
	}

	l.mu.Lock()
	l.totalPool += value
	l.entryCount++
	l.mu.Unlock()

	_ = l.emitter.Emit(ctx, storage.AuditEvent{
		Kind:  telemetry.KindTreasuryEntry,
		Value: value,
	})
	return nil
}

// RecordPayout records one settled winner payout. The house share is taken
// from the pool total at call time, then the payout and house share are
// both deducted from the pool.
func (l *Ledger) RecordPayout(ctx context.Context, value float64) error {
	if value < 0 {
		return ErrInvalidPayoutValue
	}

	l.mu.Lock()
	houseShare := l.totalPool * l.cfg.HouseShare
	l.houseBalance += houseShare
	l.totalPool -= value + houseShare
	l.mu.Unlock()

	_ = l.emitter.Emit(ctx, storage.AuditEvent{
		Kind:  telemetry.KindTreasuryPayout,
		Value: value,
	})
	return nil
}

// Stats returns a read-only snapshot of the aggregates.
func (l *Ledger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stats{
		TotalPool:         l.totalPool,
		AvailableWinnings: l.totalPool * l.cfg.WinnerShare,
		HouseBalance:      l.houseBalance,
		EntryCount:        l.entryCount,
	}
}
