// Package server hosts the HTTP API for the commit-reveal flip service:
// round lifecycle, treasury settlement reporting, and treasury stats.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/fairflip/internal/core/fairness"
	"github.com/louisbranch/fairflip/internal/platform/timeouts"
	"github.com/louisbranch/fairflip/internal/rounds"
	"github.com/louisbranch/fairflip/internal/storage/memory"
	"github.com/louisbranch/fairflip/internal/telemetry"
	"github.com/louisbranch/fairflip/internal/treasury"
)

// defaultSweepInterval spaces out eviction sweeps for abandoned rounds.
const defaultSweepInterval = 10 * time.Minute

// Config defines the inputs for the API server.
type Config struct {
	Addr string

	// RoundTTL bounds how long an unrevealed round stays resident.
	// Zero disables eviction.
	RoundTTL time.Duration
	// SweepInterval spaces out eviction sweeps.
	SweepInterval time.Duration

	WinnerShare float64
	HouseShare  float64
}

// Server hosts the API over an in-memory store.
type Server struct {
	addr          string
	httpServer    *http.Server
	rounds        *rounds.Service
	ledger        *treasury.Ledger
	roundTTL      time.Duration
	sweepInterval time.Duration
}

// New builds a configured server with fresh in-memory state.
func New(cfg Config) (*Server, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("listen address is required")
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	store := memory.NewStore()
	emitter := telemetry.NewEmitter(store)

	ledger, err := treasury.NewLedger(treasury.Config{
		WinnerShare: cfg.WinnerShare,
		HouseShare:  cfg.HouseShare,
	}, emitter)
	if err != nil {
		return nil, err
	}

	engine := fairness.NewEngine(nil)
	if !engine.SourceSecure() {
		log.Printf("running with degraded entropy source")
	}
	roundService := rounds.NewService(store, engine, emitter)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(roundService, ledger),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		addr:          addr,
		httpServer:    httpServer,
		rounds:        roundService,
		ledger:        ledger,
		roundTTL:      cfg.RoundTTL,
		sweepInterval: cfg.SweepInterval,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweepExpiredRounds(sweepCtx)

	serveErr := make(chan error, 1)
	log.Printf("api listening on %s", s.addr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// sweepExpiredRounds evicts abandoned rounds until the context ends.
func (s *Server) sweepExpiredRounds(ctx context.Context) {
	if s.roundTTL <= 0 {
		return
	}

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.rounds.EvictExpired(ctx, s.roundTTL)
			if err != nil {
				log.Printf("evict expired rounds: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("evicted %d expired rounds", removed)
			}
		}
	}
}
