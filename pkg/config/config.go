// Package config loads the agent configuration from a YAML file with
// environment overrides for credentials and deployment knobs.
package config

import (
	"fmt"
	"os"

	"go.mau.fi/util/ptr"
	"gopkg.in/yaml.v3"

	"github.com/Filichkin/web-search-agent/pkg/extract"
	"github.com/Filichkin/web-search-agent/pkg/mediator"
	"github.com/Filichkin/web-search-agent/pkg/search"
)

// Config is the root configuration.
type Config struct {
	Logging  LoggingConfig   `yaml:"logging"`
	Search   *search.Config  `yaml:"search"`
	Extract  extract.Config  `yaml:"extract"`
	Store    StoreConfig     `yaml:"store"`
	Mediator mediator.Config `yaml:"mediator"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// StoreConfig locates the results store file.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Load reads the config file at path. A missing file yields the defaults so
// the binary runs with nothing but environment variables. Environment
// overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return cfg.WithDefaults().applyEnv(), nil
}

// WithDefaults fills unset fields with defaults.
func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Search = c.Search.WithDefaults()
	if c.Extract == (extract.Config{}) {
		c.Extract = extract.DefaultConfig()
	}
	if c.Mediator == (mediator.Config{}) {
		c.Mediator = mediator.DefaultConfig()
	}
	return c
}

func (c *Config) applyEnv() *Config {
	c.Search = search.ApplyEnvDefaults(c.Search)
	if path := os.Getenv("RESULTS_STORE_PATH"); path != "" {
		c.Store.Path = path
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if os.Getenv("SEARCH_DISABLE_DDG") == "1" {
		c.Search.DDG.Enabled = ptr.Ptr(false)
	}
	return c
}
