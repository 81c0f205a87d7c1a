// Package mediator intercepts every web-search tool invocation issued during
// a conversation turn: it rewrites the query to the user's verbatim message,
// rate-limits and deduplicates calls per turn, enriches results with
// full-text extraction, persists them deduplicated by URL, and hands the
// calling agent a bounded, human-readable context summary instead of raw
// search data.
package mediator

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Filichkin/web-search-agent/pkg/search"
	"github.com/Filichkin/web-search-agent/pkg/store"
)

// Searcher is the underlying search capability. It is treated as a black
// box: transport failures from it propagate to the caller unmodified.
type Searcher interface {
	Search(ctx context.Context, req search.Request) (*search.Response, error)
}

// Extractor produces readable text for a URL, degrading to fallback on any
// failure.
type Extractor interface {
	Extract(ctx context.Context, url, fallback string, maxChars int) string
}

// ResultStore persists enriched results deduplicated by URL.
type ResultStore interface {
	Save(ctx context.Context, query string, items []store.Item, opts store.SaveOptions) (int, error)
}

// EnrichedResult is one search result after full-text enrichment.
type EnrichedResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Guard notices returned in place of a summary. These are normal
// control-flow outcomes communicated to the model as text, not errors.
const (
	noticeAlreadySearched = "This query has already been searched for this message; use the sources already found to answer."
	noticeLimitReached    = "The search call limit for this message has been reached; compose the answer from the sources already found."
	noticeNoResults       = "Could not enrich any search results; use the original links from the search."
)

// Mediator orchestrates one search invocation end to end.
type Mediator struct {
	cfg       Config
	searcher  Searcher
	extractor Extractor
	store     ResultStore
	guard     *TurnGuard
}

// New creates a mediator. The store may be nil, which disables persistence.
func New(cfg Config, searcher Searcher, extractor Extractor, resultStore ResultStore) *Mediator {
	cfg = cfg.withDefaults()
	return &Mediator{
		cfg:       cfg,
		searcher:  searcher,
		extractor: extractor,
		store:     resultStore,
		guard:     NewTurnGuard(cfg.MaxCallsPerTurn),
	}
}

// Guard exposes the turn guard, mainly for session cleanup.
func (m *Mediator) Guard() *TurnGuard {
	return m.guard
}

// Invoke processes one search tool invocation for the given session.
//
// The returned string is either a guard notice or the assembled context
// summary; the only error case is a failure of the underlying search
// capability, which is propagated so the caller's retry policy can decide
// what to do with it. Enrichment and persistence failures never surface:
// enrichment degrades to result descriptions and persistence is best-effort.
func (m *Mediator) Invoke(ctx context.Context, sessionID string, args map[string]any, rawInput string) (string, error) {
	log := zerolog.Ctx(ctx).With().
		Str("component", "mediator").
		Str("session_id", sessionID).
		Logger()
	ctx = log.WithContext(ctx)

	args = OverrideQuery(args, rawInput)
	query := QueryArg(args)
	log.Debug().Str("query", query).Msg("Search invocation after query override")

	switch decision := m.guard.Admit(sessionID, rawInput, query); decision {
	case DecisionAlreadySearched:
		log.Info().Str("query", query).Msg("Duplicate query rejected for this turn")
		return noticeAlreadySearched, nil
	case DecisionLimitReached:
		log.Info().Str("query", query).Msg("Search call budget exhausted for this turn")
		return noticeLimitReached, nil
	}

	resp, err := m.searcher.Search(ctx, search.Request{Query: query, Count: MaxResultsPerCall})
	if err != nil {
		return "", err
	}

	enriched := m.enrich(ctx, resp.Results)
	m.persist(ctx, query, enriched)

	if len(enriched) == 0 {
		return noticeNoResults, nil
	}
	return m.buildSummary(enriched), nil
}

// enrich runs full-text extraction over the first MaxResultsPerCall results
// concurrently. Results are independent, so the fan-out is purely a latency
// optimization; the output preserves the input order.
func (m *Mediator) enrich(ctx context.Context, results []search.Result) []EnrichedResult {
	if len(results) > MaxResultsPerCall {
		results = results[:MaxResultsPerCall]
	}

	enriched := make([]EnrichedResult, len(results))
	var wg sync.WaitGroup
	for i, result := range results {
		wg.Add(1)
		go func(i int, result search.Result) {
			defer wg.Done()
			enriched[i] = m.enrichOne(ctx, result)
		}(i, result)
	}
	wg.Wait()

	out := make([]EnrichedResult, 0, len(enriched))
	for _, entry := range enriched {
		if entry.URL == "" && entry.Snippet == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (m *Mediator) enrichOne(ctx context.Context, result search.Result) EnrichedResult {
	url := strings.TrimSpace(result.URL)
	title := strings.TrimSpace(result.Title)
	description := strings.TrimSpace(result.Description)

	snippet := description
	if m.extractor != nil {
		snippet = m.extractor.Extract(ctx, url, description, m.cfg.ExtractMaxChars)
	}
	snippet = strings.TrimSpace(strings.ReplaceAll(snippet, "\n", " "))
	if runes := []rune(snippet); len(runes) > m.cfg.SnippetMaxChars {
		snippet = string(runes[:m.cfg.SnippetMaxChars]) + "..."
	}

	if title == "" {
		title = url
	}
	return EnrichedResult{URL: url, Title: title, Snippet: snippet}
}

// persist saves enriched results best-effort: a broken store must never keep
// the summary from reaching the agent.
func (m *Mediator) persist(ctx context.Context, query string, enriched []EnrichedResult) {
	if m.store == nil || len(enriched) == 0 {
		return
	}
	items := make([]store.Item, 0, len(enriched))
	for _, entry := range enriched {
		items = append(items, store.Item{
			URL:         entry.URL,
			Title:       entry.Title,
			Description: entry.Snippet,
		})
	}
	added, err := m.store.Save(ctx, query, items, store.SaveOptions{
		AlreadyEnriched: true,
		MaxItems:        MaxResultsPerCall,
	})
	log := zerolog.Ctx(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to persist enriched results")
		return
	}
	log.Debug().Int("added", added).Msg("Persisted enriched results")
}
