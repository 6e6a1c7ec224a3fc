// Package verify parses verifier command flags and renders an offline
// verification report for a revealed flip.
package verify

import (
	"errors"
	"flag"
	"io"

	"github.com/pterm/pterm"

	"github.com/louisbranch/fairflip/internal/core/fairness"
	entrypoint "github.com/louisbranch/fairflip/internal/platform/cmd"
	check "github.com/louisbranch/fairflip/internal/verify"
)

// ErrMismatch indicates at least one supplied expectation did not match the
// recomputed values.
var ErrMismatch = errors.New("verification failed")

// Config holds verifier command configuration.
type Config struct {
	Secret     string
	ClientSeed string
	Sequence   uint64
	Commitment string
	Digest     string
}

// ParseConfig parses command-line flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.Secret, "secret", "", "The revealed server secret")
	fs.StringVar(&cfg.ClientSeed, "client-seed", "", "The client seed used for the flip")
	fs.Uint64Var(&cfg.Sequence, "sequence", 0, "The flip sequence number")
	fs.StringVar(&cfg.Commitment, "commitment", "", "Expected commitment to check against (optional)")
	fs.StringVar(&cfg.Digest, "digest", "", "Expected outcome digest to check against (optional)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Secret == "" {
		return Config{}, check.ErrMissingSecret
	}
	return cfg, nil
}

// Run recomputes the flip values, writes the report to w, and returns
// ErrMismatch when a supplied expectation does not hold.
func Run(w io.Writer, cfg Config) error {
	report, err := check.Run(check.Input{
		Secret:     cfg.Secret,
		ClientSeed: cfg.ClientSeed,
		Sequence:   cfg.Sequence,
		Commitment: cfg.Commitment,
		DigestHex:  cfg.Digest,
	})
	if err != nil {
		return err
	}
	render(w, cfg, report)
	if !report.OK() {
		return ErrMismatch
	}
	return nil
}

func render(w io.Writer, cfg Config, report check.Report) {
	section := pterm.DefaultSection.WithWriter(w)
	info := pterm.Info.WithWriter(w)
	success := pterm.Success.WithWriter(w)
	failure := pterm.Error.WithWriter(w)

	section.Println("Recomputed values")
	info.Printfln("Commitment: %s", report.Commitment)
	info.Printfln("Digest:     %s", report.DigestHex)
	if report.Outcome == fairness.OutcomeHeads {
		info.Printfln("Outcome:    %s", pterm.LightGreen(report.Outcome))
	} else {
		info.Printfln("Outcome:    %s", pterm.LightYellow(report.Outcome))
	}

	if !report.CommitmentChecked && !report.DigestChecked {
		info.Printfln("No expectations supplied; nothing to check")
		return
	}

	section.Println("Checks")
	if report.CommitmentChecked {
		if report.CommitmentMatches {
			success.Printfln("Commitment matches")
		} else {
			failure.Printfln("Commitment mismatch: expected %s", cfg.Commitment)
		}
	}
	if report.DigestChecked {
		if report.DigestMatches {
			success.Printfln("Digest matches")
		} else {
			failure.Printfln("Digest mismatch: expected %s", cfg.Digest)
		}
	}
}
