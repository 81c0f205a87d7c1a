package search

import (
	"os"
	"strings"

	"github.com/Filichkin/web-search-agent/pkg/shared/stringutil"
)

// ConfigFromEnv builds a search config using environment variables.
func ConfigFromEnv() *Config {
	cfg := &Config{}

	if provider := strings.TrimSpace(os.Getenv("SEARCH_PROVIDER")); provider != "" {
		cfg.Provider = provider
	}
	if fallbacks := strings.TrimSpace(os.Getenv("SEARCH_FALLBACKS")); fallbacks != "" {
		cfg.Fallbacks = stringutil.SplitCSV(fallbacks)
	}
	cfg.Brave.APIKey = stringutil.EnvOr(cfg.Brave.APIKey, os.Getenv("BRAVE_API_KEY"))
	cfg.Brave.BaseURL = stringutil.EnvOr(cfg.Brave.BaseURL, os.Getenv("BRAVE_BASE_URL"))

	return cfg.WithDefaults()
}

// ApplyEnvDefaults fills empty config fields from environment variables.
func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		return ConfigFromEnv()
	}
	current := cfg.WithDefaults()
	envCfg := ConfigFromEnv()

	if strings.TrimSpace(current.Provider) == "" || current.Provider == "auto" {
		current.Provider = envCfg.Provider
	}
	if len(current.Fallbacks) == 0 {
		current.Fallbacks = envCfg.Fallbacks
	}
	if current.Brave.APIKey == "" {
		current.Brave.APIKey = envCfg.Brave.APIKey
	}
	if current.Brave.BaseURL == "" {
		current.Brave.BaseURL = envCfg.Brave.BaseURL
	}

	return current
}
