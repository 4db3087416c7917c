// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lewieville/g1-creative-sub000/internal/relay"
)

// Config holds all application configuration.
type Config struct {
	Port     string
	SiteURL  string
	SiteName string
	DBPath   string

	// Chat proxy. An empty API key disables the endpoint (it answers 500
	// without calling upstream), it does not stop the server.
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	ChatPromptPath string

	// Contact relay.
	FormRelayURL  string
	FormAccessKey string
	RelayTimeout  time.Duration

	AllowedOrigins     []string
	HealthCheckTimeout time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		SiteURL:  getEnv("SITE_URL", ""),
		SiteName: getEnv("SITE_NAME", "G1 Creative"),
		DBPath:   getEnv("DB_PATH", "./data/site.db"),

		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
		ChatPromptPath: getEnv("CHAT_PROMPT_PATH", ""),

		FormRelayURL:  getEnv("FORM_RELAY_URL", relay.DefaultEndpoint),
		FormAccessKey: getEnv("FORM_ACCESS_KEY", ""),
		RelayTimeout:  getEnvDuration("FORM_RELAY_TIMEOUT", relay.DefaultTimeout),

		AllowedOrigins:     splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		HealthCheckTimeout: 5 * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.FormRelayURL == "" {
		return fmt.Errorf("FORM_RELAY_URL cannot be empty")
	}
	if c.RelayTimeout <= 0 {
		return fmt.Errorf("FORM_RELAY_TIMEOUT must be > 0")
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS cannot be empty")
	}
	return nil
}

// ChatEnabled returns true if the upstream completion credential is set.
func (c *Config) ChatEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.SiteURL == "" ||
		strings.Contains(c.SiteURL, "localhost") ||
		strings.Contains(c.SiteURL, "127.0.0.1")
}

func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
