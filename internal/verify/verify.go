// Package verify recomputes commitments, digests, and outcomes from a
// revealed secret so any third party can check a flip offline. It is the
// single verification routine shared by the verifier CLI and the end-to-end
// tests.
package verify

import (
	"errors"

	"github.com/louisbranch/fairflip/internal/core/fairness"
)

// ErrMissingSecret indicates verification was requested without a secret.
var ErrMissingSecret = errors.New("secret is required")

// Input holds the revealed values and optional expectations to check
// against.
type Input struct {
	Secret     string
	ClientSeed string
	Sequence   uint64

	// Commitment, when set, is compared against the recomputed
	// commitment of the secret.
	Commitment string
	// DigestHex, when set, is compared against the recomputed digest.
	DigestHex string
}

// Report holds the recomputed values and the results of any requested
// comparisons.
type Report struct {
	Commitment string
	DigestHex  string
	Outcome    fairness.Outcome

	CommitmentChecked bool
	CommitmentMatches bool
	DigestChecked     bool
	DigestMatches     bool
}

// OK reports whether every requested comparison matched. A report with no
// expectations is trivially OK.
func (r Report) OK() bool {
	if r.CommitmentChecked && !r.CommitmentMatches {
		return false
	}
	if r.DigestChecked && !r.DigestMatches {
		return false
	}
	return true
}

// Run recomputes commitment, digest, and outcome from the input and checks
// any supplied expectations.
func Run(in Input) (Report, error) {
	if in.Secret == "" {
		return Report{}, ErrMissingSecret
	}

	digest, outcome := fairness.Derive(in.Secret, in.ClientSeed, in.Sequence)
	report := Report{
		Commitment: fairness.Commit(in.Secret),
		DigestHex:  digest,
		Outcome:    outcome,
	}

	if in.Commitment != "" {
		report.CommitmentChecked = true
		report.CommitmentMatches = report.Commitment == in.Commitment
	}
	if in.DigestHex != "" {
		report.DigestChecked = true
		report.DigestMatches = report.DigestHex == in.DigestHex
	}

	return report, nil
}
