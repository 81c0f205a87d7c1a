package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Filichkin/web-search-agent/pkg/shared/httputil"
)

type ddgProvider struct {
	cfg DDGConfig
}

func newDDGProvider(cfg *Config) Provider {
	if cfg == nil {
		return nil
	}
	if !isEnabled(cfg.DDG.Enabled, true) {
		return nil
	}
	return &ddgProvider{cfg: cfg.DDG}
}

func (p *ddgProvider) Name() string {
	return ProviderDuckDuckGo
}

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []ddgTopic `json:"Topics"`
}

// Search queries the DuckDuckGo instant answer API. It needs no API key,
// which makes it the fallback of last resort in the provider chain.
func (p *ddgProvider) Search(ctx context.Context, req Request) (*Response, error) {
	apiURL := fmt.Sprintf("https://api.duckduckgo.com/?q=%s&format=json&no_html=1&skip_disambig=1",
		url.QueryEscape(req.Query))

	start := time.Now()
	data, _, err := httputil.GetJSON(ctx, apiURL, nil, p.cfg.TimeoutSecs)
	if err != nil {
		return nil, err
	}

	var ddgResult struct {
		AbstractText  string     `json:"AbstractText"`
		AbstractURL   string     `json:"AbstractURL"`
		Heading       string     `json:"Heading"`
		RelatedTopics []ddgTopic `json:"RelatedTopics"`
	}
	if err := json.Unmarshal(data, &ddgResult); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}

	count := req.Count
	if count <= 0 {
		count = DefaultSearchCount
	}

	var results []Result
	if ddgResult.AbstractText != "" && ddgResult.AbstractURL != "" {
		results = append(results, Result{
			Title:       strings.TrimSpace(ddgResult.Heading),
			URL:         ddgResult.AbstractURL,
			Description: strings.TrimSpace(ddgResult.AbstractText),
		})
	}
	var appendTopic func(topic ddgTopic)
	appendTopic = func(topic ddgTopic) {
		if len(results) >= count {
			return
		}
		if topic.Text != "" && topic.FirstURL != "" {
			title, description := splitTopicText(topic.Text)
			results = append(results, Result{
				Title:       title,
				URL:         topic.FirstURL,
				Description: description,
			})
		}
		for _, child := range topic.Topics {
			appendTopic(child)
		}
	}
	for _, topic := range ddgResult.RelatedTopics {
		appendTopic(topic)
	}

	return &Response{
		Query:     req.Query,
		Provider:  ProviderDuckDuckGo,
		Count:     len(results),
		TookMs:    time.Since(start).Milliseconds(),
		Results:   results,
		NoResults: len(results) == 0,
	}, nil
}

func splitTopicText(text string) (title string, description string) {
	parts := strings.SplitN(text, " - ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(text), ""
}
