package search

import "strings"

const (
	ProviderBrave      = "brave"
	ProviderDuckDuckGo = "ddg"

	DefaultSearchCount = 5
	MaxSearchCount     = 10
	DefaultTimeoutSecs = 30
)

var DefaultFallbackOrder = []string{
	ProviderBrave,
	ProviderDuckDuckGo,
}

// Config controls search provider selection and credentials.
type Config struct {
	Provider  string   `yaml:"provider"`
	Fallbacks []string `yaml:"fallbacks"`

	Brave BraveConfig `yaml:"brave"`
	DDG   DDGConfig   `yaml:"ddg"`
}

type BraveConfig struct {
	Enabled          *bool  `yaml:"enabled"`
	BaseURL          string `yaml:"base_url"`
	APIKey           string `yaml:"api_key"`
	TimeoutSecs      int    `yaml:"timeout_seconds"`
	DefaultCountry   string `yaml:"default_country"`
	DefaultFreshness string `yaml:"default_freshness"`
}

type DDGConfig struct {
	Enabled     *bool `yaml:"enabled"`
	TimeoutSecs int   `yaml:"timeout_seconds"`
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if strings.TrimSpace(c.Provider) == "" {
		c.Provider = "auto"
	}
	if len(c.Fallbacks) == 0 {
		c.Fallbacks = append([]string{}, DefaultFallbackOrder...)
	}
	c.Brave = c.Brave.withDefaults()
	c.DDG = c.DDG.withDefaults()
	return c
}

func (c BraveConfig) withDefaults() BraveConfig {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.search.brave.com/res/v1/web/search"
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

func (c DDGConfig) withDefaults() DDGConfig {
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

func isEnabled(flag *bool, fallback bool) bool {
	if flag == nil {
		return fallback
	}
	return *flag
}
