package search

import "context"

// Client binds a config to the provider chain so callers can hold a single
// value instead of threading *Config through every call.
type Client struct {
	cfg *Config
}

// NewClient creates a search client for the given config.
func NewClient(cfg *Config) *Client {
	return &Client{cfg: cfg.WithDefaults()}
}

// Search executes a search through the configured provider chain.
func (c *Client) Search(ctx context.Context, req Request) (*Response, error) {
	return Search(ctx, req, c.cfg)
}
