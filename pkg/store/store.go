// Package store persists enriched search results as a JSON array on disk,
// deduplicated by normalized URL. The file is read and rewritten whole on
// every save; a damaged or missing file never fails a save.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	json5 "github.com/yosuke-furukawa/json5/encoding/json5"
)

// DefaultMaxItems bounds how many supplied items one save considers.
const DefaultMaxItems = 5

// Enricher produces a description for a URL when an item arrives without
// one. The store only calls it for non-pre-enriched items.
type Enricher func(ctx context.Context, url, fallback string) string

// Store is a results store bound to one file path.
type Store struct {
	path     string
	enricher Enricher
	now      func() time.Time // for testing
}

// SaveOptions control one Save call.
type SaveOptions struct {
	// AlreadyEnriched marks items whose descriptions were produced by the
	// mediator's enrichment pass; the store must not re-run extraction.
	AlreadyEnriched bool
	// MaxItems caps how many supplied items are considered (default 5).
	MaxItems int
}

// New creates a store for the given path ("~" is expanded).
func New(path string) *Store {
	return &Store{
		path: ResolveStorePath(path),
		now:  time.Now,
	}
}

// WithEnricher sets the description enricher used for raw items.
func (s *Store) WithEnricher(enricher Enricher) *Store {
	s.enricher = enricher
	return s
}

// Path returns the resolved store file path.
func (s *Store) Path() string {
	return s.path
}

// Save appends deduplicated records for up to opts.MaxItems of items and
// rewrites the store file atomically. Items with an empty URL or a URL whose
// normalized form is already stored are skipped. It returns the count of
// records actually added. Saving the same item list twice adds 0 the second
// time.
//
// A missing or corrupt store file is treated as empty, logged and never
// fails the save.
func (s *Store) Save(ctx context.Context, query string, items []Item, opts SaveOptions) (int, error) {
	maxItems := opts.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	log := zerolog.Ctx(ctx).With().Str("component", "store").Str("path", s.path).Logger()

	mu := storeLockForPath(s.path)
	mu.Lock()
	defer mu.Unlock()

	existing := s.load(&log)
	index := make(map[string]bool, len(existing))
	for _, record := range existing {
		if key := NormalizeURL(record.URL); key != "" {
			index[key] = true
		}
	}

	now := s.now()
	added := 0
	if len(items) > maxItems {
		items = items[:maxItems]
	}
	for _, item := range items {
		key := NormalizeURL(item.URL)
		if key == "" || index[key] {
			continue
		}
		if !opts.AlreadyEnriched && item.Description == "" && s.enricher != nil {
			item.Description = s.enricher(ctx, item.URL, item.Description)
		}
		existing = append(existing, newRecord(query, item, now))
		index[key] = true
		added++
	}

	if added == 0 {
		log.Debug().Int("considered", len(items)).Msg("No new records to store")
		return 0, nil
	}
	if err := s.write(existing); err != nil {
		return 0, fmt.Errorf("writing results store: %w", err)
	}
	log.Info().Int("added", added).Int("total", len(existing)).Msg("Stored search results")
	return added, nil
}

// Load returns the current store contents. Missing and corrupt files yield
// an empty slice.
func (s *Store) Load(ctx context.Context) []Record {
	log := zerolog.Ctx(ctx).With().Str("component", "store").Str("path", s.path).Logger()
	mu := storeLockForPath(s.path)
	mu.Lock()
	defer mu.Unlock()
	return s.load(&log)
}

func (s *Store) load(log *zerolog.Logger) []Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("Failed to read results store, treating as empty")
		}
		return []Record{}
	}
	var records []Record
	if err := json5.Unmarshal(data, &records); err != nil {
		log.Warn().Err(err).Msg("Results store is damaged, treating as empty")
		return []Record{}
	}
	if records == nil {
		records = []Record{}
	}
	return records
}

func (s *Store) write(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	payload, err := json5.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}
	_ = os.WriteFile(s.path+".bak", payload, 0o644)
	return nil
}
