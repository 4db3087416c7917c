package config

import (
	"testing"
	"time"

	"github.com/lewieville/g1-creative-sub000/internal/relay"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.FormRelayURL != relay.DefaultEndpoint {
		t.Errorf("FormRelayURL = %q, want default endpoint", cfg.FormRelayURL)
	}
	if cfg.RelayTimeout != relay.DefaultTimeout {
		t.Errorf("RelayTimeout = %v, want %v", cfg.RelayTimeout, relay.DefaultTimeout)
	}
	if cfg.ChatEnabled() {
		t.Error("ChatEnabled() = true with no API key")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false with empty SITE_URL")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SITE_URL", "https://g1creative.com")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("FORM_RELAY_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "https://g1creative.com, https://www.g1creative.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if !cfg.ChatEnabled() {
		t.Error("ChatEnabled() = false with API key set")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true with production SITE_URL")
	}
	if cfg.RelayTimeout != 3*time.Second {
		t.Errorf("RelayTimeout = %v, want 3s", cfg.RelayTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want 2 entries", cfg.AllowedOrigins)
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("FORM_RELAY_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.RelayTimeout != relay.DefaultTimeout {
		t.Errorf("RelayTimeout = %v, want default", cfg.RelayTimeout)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Port:           "8080",
		DBPath:         "./data/site.db",
		FormRelayURL:   relay.DefaultEndpoint,
		RelayTimeout:   relay.DefaultTimeout,
		AllowedOrigins: []string{"*"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed on valid config: %v", err)
	}

	bad := *cfg
	bad.Port = ""
	if err := bad.Validate(); err == nil {
		t.Error("Validate() passed with empty port")
	}

	bad = *cfg
	bad.RelayTimeout = 0
	if err := bad.Validate(); err == nil {
		t.Error("Validate() passed with zero relay timeout")
	}
}
