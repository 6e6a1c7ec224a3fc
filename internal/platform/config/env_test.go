package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Addr string        `env:"FAIRFLIP_TEST_ADDR" envDefault:":9090"`
	TTL  time.Duration `env:"FAIRFLIP_TEST_TTL" envDefault:"30m"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("expected default addr :9090, got %q", cfg.Addr)
	}
	if cfg.TTL != 30*time.Minute {
		t.Fatalf("expected default ttl 30m, got %v", cfg.TTL)
	}
}

func TestParseEnvOverride(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("FAIRFLIP_TEST_TTL", "2h")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.TTL != 2*time.Hour {
		t.Fatalf("expected ttl 2h, got %v", cfg.TTL)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("FAIRFLIP_TEST_TTL", "not-a-duration")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
