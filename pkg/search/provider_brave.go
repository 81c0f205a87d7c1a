package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Filichkin/web-search-agent/pkg/shared/httputil"
)

type braveProvider struct {
	cfg BraveConfig
}

func newBraveProvider(cfg *Config) Provider {
	if cfg == nil {
		return nil
	}
	if !isEnabled(cfg.Brave.Enabled, true) {
		return nil
	}
	if strings.TrimSpace(cfg.Brave.APIKey) == "" {
		return nil
	}
	return &braveProvider{cfg: cfg.Brave}
}

func (p *braveProvider) Name() string {
	return ProviderBrave
}

func (p *braveProvider) Search(ctx context.Context, req Request) (*Response, error) {
	if p.cfg.BaseURL == "" {
		return nil, errors.New("brave base_url is empty")
	}
	searchURL, err := url.Parse(p.cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	count := req.Count
	if count <= 0 {
		count = DefaultSearchCount
	}
	queryValues := searchURL.Query()
	queryValues.Set("q", req.Query)
	queryValues.Set("count", fmt.Sprintf("%d", count))

	country := req.Country
	if country == "" {
		country = p.cfg.DefaultCountry
	}
	if country != "" {
		queryValues.Set("country", country)
	}
	freshness := req.Freshness
	if freshness == "" {
		freshness = p.cfg.DefaultFreshness
	}
	if freshness != "" {
		queryValues.Set("freshness", freshness)
	}
	searchURL.RawQuery = queryValues.Encode()

	start := time.Now()
	data, _, err := httputil.GetJSON(ctx, searchURL.String(), map[string]string{
		"X-Subscription-Token": p.cfg.APIKey,
	}, p.cfg.TimeoutSecs)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
				Age         string `json:"age"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(resp.Web.Results))
	for _, entry := range resp.Web.Results {
		results = append(results, Result{
			Title:       strings.TrimSpace(entry.Title),
			URL:         entry.URL,
			Description: strings.TrimSpace(entry.Description),
			Published:   entry.Age,
		})
	}

	return &Response{
		Query:     req.Query,
		Provider:  ProviderBrave,
		Count:     len(results),
		TookMs:    time.Since(start).Milliseconds(),
		Results:   results,
		NoResults: len(results) == 0,
	}, nil
}
