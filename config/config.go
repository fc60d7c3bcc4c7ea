package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBackendURL = "http://localhost:8000"
	DefaultTopK       = 5
	MinTopK           = 1
	MaxTopK           = 20
)

// Config is the backend configuration used for each submission. It is
// loaded once at startup and owned by the session afterwards, where the
// UI may update it between submissions.
type Config struct {
	BackendURL string `yaml:"backend_url"`
	TopK       int    `yaml:"top_k"`
}

// Load builds the configuration. A YAML file (optional) supplies base
// values, non-zero fields of overrides win (typically flag or env
// values), and built-in defaults fill whatever is left.
func Load(file string, overrides Config) (cfg Config, err error) {
	if file != "" {
		contents, err := os.ReadFile(file)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		if err = yaml.Unmarshal(contents, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", file, err)
		}
	}
	if overrides.BackendURL != "" {
		cfg.BackendURL = overrides.BackendURL
	}
	if overrides.TopK != 0 {
		cfg.TopK = overrides.TopK
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	if cfg.TopK == 0 {
		cfg.TopK = DefaultTopK
	}
	cfg.BackendURL, err = ParseBackendURL(cfg.BackendURL)
	if err != nil {
		return cfg, err
	}
	if err = ValidateTopK(cfg.TopK); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseBackendURL validates the backend URL and strips the trailing
// slash so that paths can be appended to it.
func ParseBackendURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("backend URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid backend URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid backend URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid backend URL %q: missing host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func ValidateTopK(topK int) error {
	if topK < MinTopK || topK > MaxTopK {
		return fmt.Errorf("top_k must be between %d and %d, got %d", MinTopK, MaxTopK, topK)
	}
	return nil
}
