// Package server parses server command flags and starts the API service.
package server

import (
	"context"
	"flag"
	"time"

	app "github.com/louisbranch/fairflip/internal/app/server"
	entrypoint "github.com/louisbranch/fairflip/internal/platform/cmd"
)

// Config holds server command configuration.
type Config struct {
	Addr          string        `env:"FAIRFLIP_ADDR" envDefault:":8080"`
	RoundTTL      time.Duration `env:"FAIRFLIP_ROUND_TTL" envDefault:"24h"`
	SweepInterval time.Duration `env:"FAIRFLIP_SWEEP_INTERVAL" envDefault:"10m"`
	WinnerShare   float64       `env:"FAIRFLIP_WINNER_SHARE" envDefault:"0.5"`
	HouseShare    float64       `env:"FAIRFLIP_HOUSE_SHARE" envDefault:"0.1"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The API server listen address")
	fs.DurationVar(&cfg.RoundTTL, "round-ttl", cfg.RoundTTL, "How long unrevealed rounds stay resident (0 disables eviction)")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "How often expired rounds are evicted")
	fs.Float64Var(&cfg.WinnerShare, "winner-share", cfg.WinnerShare, "Fraction of the pool payable as winnings")
	fs.Float64Var(&cfg.HouseShare, "house-share", cfg.HouseShare, "Fraction of the pool retained by the house at payout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(context.Context) error {
		srv, err := app.New(app.Config{
			Addr:          cfg.Addr,
			RoundTTL:      cfg.RoundTTL,
			SweepInterval: cfg.SweepInterval,
			WinnerShare:   cfg.WinnerShare,
			HouseShare:    cfg.HouseShare,
		})
		if err != nil {
			return err
		}
		return srv.ListenAndServe(ctx)
	})
}
