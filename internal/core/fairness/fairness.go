// Package fairness implements the commit-reveal primitives for the coin
// flip: secret generation, SHA-256 commitments, and deterministic outcome
// derivation.
//
// # Determinism
//
// Derive is deterministic with respect to its three inputs. Given the same
// secret, client seed, and sequence number, it always produces the same
// digest and outcome. The sequence number is canonicalized to its decimal
// string form (non-negative, no sign, no separators) so independent
// implementations reach digest equality.
//
// # Outcome mapping
//
// The first hexadecimal character of the digest is parsed as a base-16
// integer; even values map to HEADS and odd values to TAILS. Eight of the
// sixteen possible digits fall on each side, so the mapping is exactly
// balanced.
package fairness

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strconv"
)

// Outcome is one of the two possible flip results.
type Outcome string

const (
	// OutcomeHeads is the outcome for even leading digest digits.
	OutcomeHeads Outcome = "HEADS"
	// OutcomeTails is the outcome for odd leading digest digits.
	OutcomeTails Outcome = "TAILS"
)

// SecretBytes is the entropy length of a generated secret. The hex-encoded
// secret is twice this length.
const SecretBytes = 32

// ErrEmptyDigest is returned when an outcome is requested for an empty digest.
var ErrEmptyDigest = errors.New("digest is required")

// Engine generates secrets from a configured entropy source.
type Engine struct {
	source Source
}

// NewEngine creates an engine with the provided entropy source. A nil source
// selects the default probe-based source.
func NewEngine(source Source) *Engine {
	if source == nil {
		source = NewSource()
	}
	return &Engine{source: source}
}

// GenerateSecret produces a new high-entropy secret as a hex string.
//
// Secret generation never fails: if the configured source errors at read
// time the engine downgrades to a degraded source for this and all
// subsequent calls, logging the downgrade.
func (e *Engine) GenerateSecret() string {
	b, err := e.source.Bytes(SecretBytes)
	if err != nil {
		log.Printf("entropy source failed, downgrading: %v", err)
		e.source = NewDegradedSource()
		b, _ = e.source.Bytes(SecretBytes)
	}
	return hex.EncodeToString(b)
}

// SourceSecure reports whether the engine currently draws from a secure
// entropy source.
func (e *Engine) SourceSecure() bool {
	return e.source.Secure()
}

// Commit returns the SHA-256 commitment of a secret as a fixed-length hex
// string. The commitment binds the server to the secret before any client
// input is known.
func Commit(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Derive hashes secret + clientSeed + decimal(sequence) with no separators
// and maps the digest to an outcome.
func Derive(secret, clientSeed string, sequence uint64) (digestHex string, outcome Outcome) {
	preimage := secret + clientSeed + strconv.FormatUint(sequence, 10)
	sum := sha256.Sum256([]byte(preimage))
	digestHex = hex.EncodeToString(sum[:])
	outcome, _ = OutcomeFromDigest(digestHex)
	return digestHex, outcome
}

// OutcomeFromDigest maps a hex digest to an outcome by the parity of its
// first hexadecimal digit.
func OutcomeFromDigest(digestHex string) (Outcome, error) {
	if digestHex == "" {
		return "", ErrEmptyDigest
	}
	value, err := strconv.ParseUint(digestHex[:1], 16, 8)
	if err != nil {
		return "", err
	}
	if value%2 == 0 {
		return OutcomeHeads, nil
	}
	return OutcomeTails, nil
}
