package fairness

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestCommitBindsSecret(t *testing.T) {
	engine := NewEngine(CryptoSource{})

	for i := 0; i < 100; i++ {
		secret := engine.GenerateSecret()
		commitment := Commit(secret)

		if len(commitment) != 64 {
			t.Fatalf("expected 64-character commitment, got %d", len(commitment))
		}

		sum := sha256.Sum256([]byte(secret))
		if want := hex.EncodeToString(sum[:]); commitment != want {
			t.Fatalf("expected commitment %q, got %q", want, commitment)
		}
	}
}

func TestCommitKnownVector(t *testing.T) {
	if got := Commit("secret"); got != "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b" {
		t.Fatalf("unexpected commitment %q", got)
	}
}

func TestDeriveKnownVectors(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		clientSeed string
		sequence   uint64
		wantDigest string
		wantFlip   Outcome
	}{
		{
			name:       "sequence zero",
			secret:     "secret",
			clientSeed: "abc",
			sequence:   0,
			wantDigest: "7fbb64d7bf2c9b39132191a417174a233e861b7a7bd91738f875cdb382728d38",
			wantFlip:   OutcomeTails,
		},
		{
			name:       "sequence one",
			secret:     "secret",
			clientSeed: "abc",
			sequence:   1,
			wantDigest: "c405ee5854961ab5dcf5ef4c566c6115cff9e3b06fc37ae121eb17dccb9870a2",
			wantFlip:   OutcomeHeads,
		},
		{
			name:       "sequence seven",
			secret:     "secret",
			clientSeed: "abc",
			sequence:   7,
			wantDigest: "bc2597a7238a6d787a5006a55dbfd840be278f2935c9200182acb020d2725a6c",
			wantFlip:   OutcomeTails,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, outcome := Derive(tt.secret, tt.clientSeed, tt.sequence)
			if digest != tt.wantDigest {
				t.Fatalf("expected digest %q, got %q", tt.wantDigest, digest)
			}
			if outcome != tt.wantFlip {
				t.Fatalf("expected outcome %q, got %q", tt.wantFlip, outcome)
			}
		})
	}
}

func TestDeriveDeterminism(t *testing.T) {
	engine := NewEngine(CryptoSource{})
	secret := engine.GenerateSecret()

	first, firstOutcome := Derive(secret, "client-seed", 42)
	second, secondOutcome := Derive(secret, "client-seed", 42)

	if first != second {
		t.Fatalf("expected identical digests, got %q and %q", first, second)
	}
	if firstOutcome != secondOutcome {
		t.Fatalf("expected identical outcomes, got %q and %q", firstOutcome, secondOutcome)
	}
}

func TestDeriveBalancedDistribution(t *testing.T) {
	const samples = 20000

	heads := 0
	for n := uint64(0); n < samples; n++ {
		_, outcome := Derive("balanced-secret", "client", n)
		if outcome == OutcomeHeads {
			heads++
		}
	}

	ratio := float64(heads) / samples
	if ratio < 0.47 || ratio > 0.53 {
		t.Fatalf("expected heads ratio near 0.5, got %f (%d of %d)", ratio, heads, samples)
	}
}

func TestOutcomeFromDigest(t *testing.T) {
	tests := []struct {
		name    string
		digest  string
		want    Outcome
		wantErr bool
	}{
		{name: "zero is heads", digest: "0abc", want: OutcomeHeads},
		{name: "f is tails", digest: "fabc", want: OutcomeTails},
		{name: "a is heads", digest: "a123", want: OutcomeHeads},
		{name: "empty digest", digest: "", wantErr: true},
		{name: "non-hex digest", digest: "zzzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := OutcomeFromDigest(tt.digest)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("outcome from digest: %v", err)
			}
			if outcome != tt.want {
				t.Fatalf("expected outcome %q, got %q", tt.want, outcome)
			}
		})
	}
}

func TestGenerateSecretFormat(t *testing.T) {
	engine := NewEngine(nil)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		secret := engine.GenerateSecret()
		if len(secret) != SecretBytes*2 {
			t.Fatalf("expected %d-character secret, got %d", SecretBytes*2, len(secret))
		}
		if _, err := hex.DecodeString(secret); err != nil {
			t.Fatalf("expected hex secret, got %q: %v", secret, err)
		}
		if _, ok := seen[secret]; ok {
			t.Fatalf("duplicate secret after %d generations", i)
		}
		seen[secret] = struct{}{}
	}
}

func TestDegradedSourceAvoidsRepeats(t *testing.T) {
	source := NewDegradedSource()
	if source.Secure() {
		t.Fatal("degraded source must not report secure")
	}

	first, err := source.Bytes(SecretBytes)
	if err != nil {
		t.Fatalf("degraded bytes: %v", err)
	}
	second, err := source.Bytes(SecretBytes)
	if err != nil {
		t.Fatalf("degraded bytes: %v", err)
	}
	if string(first) == string(second) {
		t.Fatal("expected distinct outputs from degraded source")
	}

	// Two sources constructed back to back must not share a stream.
	other := NewDegradedSource()
	otherFirst, err := other.Bytes(SecretBytes)
	if err != nil {
		t.Fatalf("degraded bytes: %v", err)
	}
	if string(first) == string(otherFirst) {
		t.Fatal("expected distinct streams from distinct degraded sources")
	}
}

type failingSource struct{}

func (failingSource) Bytes(int) ([]byte, error) { return nil, errTestEntropy }
func (failingSource) Secure() bool              { return true }

var errTestEntropy = errEntropy{}

type errEntropy struct{}

func (errEntropy) Error() string { return "entropy exhausted" }

func TestEngineDowngradesOnSourceFailure(t *testing.T) {
	engine := NewEngine(failingSource{})

	secret := engine.GenerateSecret()
	if len(secret) != SecretBytes*2 {
		t.Fatalf("expected %d-character secret after downgrade, got %d", SecretBytes*2, len(secret))
	}
	if engine.SourceSecure() {
		t.Fatal("expected engine to report degraded source after failure")
	}
}
