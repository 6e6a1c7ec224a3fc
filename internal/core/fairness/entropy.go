package fairness

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"log"
	mrand "math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Source yields entropy bytes for secret generation.
type Source interface {
	// Bytes returns n random bytes.
	Bytes(n int) ([]byte, error)
	// Secure reports whether the source draws from a CSPRNG.
	Secure() bool
}

// CryptoSource reads from crypto/rand.
type CryptoSource struct{}

// Bytes returns n bytes from the operating system CSPRNG.
func (CryptoSource) Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read crypto/rand: %w", err)
	}
	return b, nil
}

// Secure reports that the source is cryptographically secure.
func (CryptoSource) Secure() bool { return true }

var degradedCounter atomic.Uint64

// DegradedSource is a best-effort fallback for hosts without a usable
// CSPRNG. Its seed mixes the clock, the process id, and a process-wide
// counter through SHA-256 so it never depends on wall-clock time alone.
// It is not suitable for security-critical deployments.
type DegradedSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewDegradedSource creates a degraded entropy source.
func NewDegradedSource() *DegradedSource {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%d|%d", time.Now().UnixNano(), os.Getpid(), degradedCounter.Add(1))
	sum := h.Sum(nil)
	seed := int64(binary.LittleEndian.Uint64(sum[:8]))
	return &DegradedSource{rng: mrand.New(mrand.NewSource(seed))}
}

// Bytes returns n bytes from the seeded generator.
func (s *DegradedSource) Bytes(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := make([]byte, n)
	s.rng.Read(b)
	return b, nil
}

// Secure reports that the source is not cryptographically secure.
func (s *DegradedSource) Secure() bool { return false }

// NewSource probes the secure source once and falls back to a degraded
// source when it is unavailable. The downgrade is logged, not surfaced:
// secret generation must not fail at request time.
func NewSource() Source {
	var probe [1]byte
	if _, err := rand.Read(probe[:]); err != nil {
		log.Printf("secure entropy unavailable, using degraded source: %v", err)
		return NewDegradedSource()
	}
	return CryptoSource{}
}
