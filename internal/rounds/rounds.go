// Package rounds provides round identity issuance and secret custody for the
// commit-reveal protocol.
//
// A round moves through two states: created (secret held, outcomes derivable
// for any sequence number) and revealed (secret disclosed, record removed).
// Reveal is one-shot; a revealed or evicted round ID is permanently invalid.
package rounds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/fairflip/internal/core/fairness"
	apperrors "github.com/louisbranch/fairflip/internal/platform/errors"
	"github.com/louisbranch/fairflip/internal/platform/id"
	"github.com/louisbranch/fairflip/internal/storage"
	"github.com/louisbranch/fairflip/internal/telemetry"
)

var (
	// ErrEmptyRoundID indicates a missing round identifier.
	ErrEmptyRoundID = apperrors.New(apperrors.CodeRoundIDEmpty, "round id is required")
	// ErrEmptyClientSeed indicates a missing client seed.
	ErrEmptyClientSeed = apperrors.New(apperrors.CodeClientSeedEmpty, "client seed is required")
	// ErrRoundNotFound indicates the round was never created, already
	// revealed, or evicted. Callers should start a new round.
	ErrRoundNotFound = apperrors.New(apperrors.CodeRoundNotFound, "round is unknown, start a new one")
)

// CreateResult is the outcome of starting a round.
type CreateResult struct {
	RoundID    string
	Commitment string
}

// ResolveResult is the outcome of deriving a flip for a round.
type ResolveResult struct {
	RoundID   string
	DigestHex string
	Outcome   fairness.Outcome
}

// RevealResult is the outcome of disclosing a round secret.
type RevealResult struct {
	RoundID string
	Secret  string
}

// Service issues round identifiers and guards round secrets.
type Service struct {
	store   storage.RoundStore
	engine  *fairness.Engine
	emitter *telemetry.Emitter
	newID   func() (string, error)
	clock   func() time.Time
}

// NewService creates a round service over the provided store and engine.
// The emitter may be nil.
func NewService(store storage.RoundStore, engine *fairness.Engine, emitter *telemetry.Emitter) *Service {
	if engine == nil {
		engine = fairness.NewEngine(nil)
	}
	return &Service{
		store:   store,
		engine:  engine,
		emitter: emitter,
		newID:   id.NewID,
		clock:   time.Now,
	}
}

// Create generates a secret, stores it under a fresh identifier, and returns
// the identifier with the secret's commitment.
func (s *Service) Create(ctx context.Context) (CreateResult, error) {
	roundID, err := s.newID()
	if err != nil {
		return CreateResult{}, fmt.Errorf("generate round id: %w", err)
	}

	secret := s.engine.GenerateSecret()
	round := storage.Round{
		ID:        roundID,
		Secret:    secret,
		CreatedAt: s.clock().UTC(),
	}
	if err := s.store.Put(ctx, round); err != nil {
		return CreateResult{}, fmt.Errorf("store round: %w", err)
	}

	_ = s.emitter.Emit(ctx, storage.AuditEvent{
		Kind:    telemetry.KindRoundCreated,
		RoundID: roundID,
	})

	return CreateResult{
		RoundID:    roundID,
		Commitment: fairness.Commit(secret),
	}, nil
}

// Resolve derives the flip outcome for a round and sequence number. The
// round is not mutated; the same round may be resolved repeatedly with
// increasing sequence values under one commitment.
func (s *Service) Resolve(ctx context.Context, roundID, clientSeed string, sequence uint64) (ResolveResult, error) {
	if strings.TrimSpace(roundID) == "" {
		return ResolveResult{}, ErrEmptyRoundID
	}
	if clientSeed == "" {
		return ResolveResult{}, ErrEmptyClientSeed
	}

	round, err := s.store.Get(ctx, roundID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ResolveResult{}, ErrRoundNotFound
		}
		return ResolveResult{}, fmt.Errorf("load round: %w", err)
	}

	digest, outcome := fairness.Derive(round.Secret, clientSeed, sequence)

	_ = s.emitter.Emit(ctx, storage.AuditEvent{
		Kind:    telemetry.KindRoundResolved,
		RoundID: roundID,
		Metadata: map[string]string{
			"outcome":  string(outcome),
			"sequence": fmt.Sprintf("%d", sequence),
		},
	})

	return ResolveResult{
		RoundID:   roundID,
		DigestHex: digest,
		Outcome:   outcome,
	}, nil
}

// Reveal atomically removes the round and discloses its secret for public
// verification. After Reveal the round ID is permanently invalid.
func (s *Service) Reveal(ctx context.Context, roundID string) (RevealResult, error) {
	if strings.TrimSpace(roundID) == "" {
		return RevealResult{}, ErrEmptyRoundID
	}

	round, err := s.store.Take(ctx, roundID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return RevealResult{}, ErrRoundNotFound
		}
		return RevealResult{}, fmt.Errorf("remove round: %w", err)
	}

	_ = s.emitter.Emit(ctx, storage.AuditEvent{
		Kind:    telemetry.KindRoundRevealed,
		RoundID: roundID,
	})

	return RevealResult{
		RoundID: roundID,
		Secret:  round.Secret,
	}, nil
}

// EvictExpired removes rounds older than ttl and reports how many were
// removed. Evicted rounds lose their secrets, so late verification is no
// longer possible for them. A non-positive ttl disables eviction.
func (s *Service) EvictExpired(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}

	cutoff := s.clock().UTC().Add(-ttl)
	removed, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("evict rounds: %w", err)
	}
	if removed > 0 {
		_ = s.emitter.Emit(ctx, storage.AuditEvent{
			Kind:     telemetry.KindRoundsEvicted,
			Metadata: map[string]string{"count": fmt.Sprintf("%d", removed)},
		})
	}
	return removed, nil
}
