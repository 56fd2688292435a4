package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if cfg.RatesTimeout != 5*time.Second {
		t.Errorf("RatesTimeout = %v, want 5s", cfg.RatesTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FINTRACK_LISTEN_ADDR", ":9999")
	t.Setenv("FINTRACK_DEBUG", "1")
	t.Setenv("FINTRACK_DATA_DIR", t.TempDir())
	t.Setenv("FINTRACK_RATES_TIMEOUT", "10s")

	cfg := Load()

	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want :9999", cfg.ListenAddr)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if cfg.RatesTimeout != 10*time.Second {
		t.Errorf("RatesTimeout = %v, want 10s", cfg.RatesTimeout)
	}
}

func TestLoadInvalidTimeoutKeepsDefault(t *testing.T) {
	t.Setenv("FINTRACK_DATA_DIR", t.TempDir())
	t.Setenv("FINTRACK_RATES_TIMEOUT", "soon")

	cfg := Load()
	if cfg.RatesTimeout != 5*time.Second {
		t.Errorf("RatesTimeout = %v, want default 5s", cfg.RatesTimeout)
	}
}
