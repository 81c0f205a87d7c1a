package extract

import "time"

const (
	DefaultMaxChars  = 1000
	DefaultMaxBytes  = 2 * 1024 * 1024
	DefaultUserAgent = "Mozilla/5.0 (compatible; web-search-agent/1.0)"
)

// Config controls page retrieval and text extraction.
type Config struct {
	UserAgent    string        `yaml:"user_agent"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	MaxPageBytes int64         `yaml:"max_page_bytes"`
	MaxChars     int           `yaml:"max_chars"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent:    DefaultUserAgent,
		FetchTimeout: 10 * time.Second,
		MaxPageBytes: DefaultMaxBytes,
		MaxChars:     DefaultMaxChars,
	}
}

func (c Config) withDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.MaxPageBytes <= 0 {
		c.MaxPageBytes = DefaultMaxBytes
	}
	if c.MaxChars <= 0 {
		c.MaxChars = DefaultMaxChars
	}
	return c
}
