package mediator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Filichkin/web-search-agent/pkg/search"
	"github.com/Filichkin/web-search-agent/pkg/store"
)

// SearcherFunc adapts a plain function to the Searcher interface.
type SearcherFunc func(ctx context.Context, req search.Request) (*search.Response, error)

func (f SearcherFunc) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	return f(ctx, req)
}

// ParseRawResults converts loosely-typed search payload entries (JSON
// strings or objects, as returned by external search tools) into normalized
// results. Entries that fail to parse are skipped and logged; a bad item is
// never fatal to the invocation.
func ParseRawResults(ctx context.Context, raws []any) []search.Result {
	items, skipped := store.ParseItems(raws)
	if skipped > 0 {
		zerolog.Ctx(ctx).Warn().
			Int("skipped", skipped).
			Int("parsed", len(items)).
			Msg("Dropped unparsable search result items")
	}
	results := make([]search.Result, 0, len(items))
	for _, item := range items {
		results = append(results, search.Result{
			Title:       item.Title,
			URL:         item.URL,
			Description: item.Description,
		})
	}
	return results
}

// WrapRawSearcher adapts an external capability that returns loosely-typed
// items into a Searcher. Transport errors still propagate unmodified.
func WrapRawSearcher(fn func(ctx context.Context, query string, count int) ([]any, error)) Searcher {
	return SearcherFunc(func(ctx context.Context, req search.Request) (*search.Response, error) {
		raws, err := fn(ctx, req.Query, req.Count)
		if err != nil {
			return nil, err
		}
		results := ParseRawResults(ctx, raws)
		return &search.Response{
			Query:     req.Query,
			Count:     len(results),
			Results:   results,
			NoResults: len(results) == 0,
		}, nil
	})
}
