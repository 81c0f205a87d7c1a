package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "results.json"))
	s.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }
	return s
}

func readRecords(t *testing.T, path string) []Record {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("parse store file: %v", err)
	}
	return records
}

func TestSaveAppendsAndDeduplicatesByURL(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	items := []Item{
		{URL: "https://a.example/page", Title: "A", Description: "da"},
		{URL: "https://b.example/page", Title: "B", Description: "db"},
	}
	added, err := s.Save(ctx, "query one", items, SaveOptions{AlreadyEnriched: true})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if added != 2 {
		t.Fatalf("first save added %d, want 2", added)
	}

	// Identical list again: idempotent from the second call onward.
	added, err = s.Save(ctx, "query two", items, SaveOptions{AlreadyEnriched: true})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if added != 0 {
		t.Fatalf("second save added %d, want 0", added)
	}

	records := readRecords(t, s.Path())
	if len(records) != 2 {
		t.Fatalf("store has %d records, want 2", len(records))
	}
	seen := map[string]bool{}
	for _, record := range records {
		key := NormalizeURL(record.URL)
		if seen[key] {
			t.Fatalf("duplicate normalized URL in store: %s", key)
		}
		seen[key] = true
	}
	if records[0].Query != "query one" || records[0].Date == "" {
		t.Fatalf("record missing query/date: %+v", records[0])
	}
}

func TestSaveDeduplicatesCaseAndWhitespaceVariants(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, "q", []Item{{URL: "https://a.example/Page"}}, SaveOptions{AlreadyEnriched: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	added, err := s.Save(ctx, "q", []Item{{URL: "  HTTPS://A.EXAMPLE/PAGE "}}, SaveOptions{AlreadyEnriched: true})
	if err != nil {
		t.Fatalf("save variant: %v", err)
	}
	if added != 0 {
		t.Fatalf("variant added %d, want 0", added)
	}
}

func TestSaveSkipsItemsWithEmptyURL(t *testing.T) {
	s := testStore(t)

	added, err := s.Save(context.Background(), "q", []Item{
		{URL: "", Title: "no url"},
		{URL: "   ", Title: "blank url"},
		{URL: "https://a.example", Title: "ok"},
	}, SaveOptions{AlreadyEnriched: true})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if added != 1 {
		t.Fatalf("added %d, want 1", added)
	}
}

func TestSaveCapsConsideredItems(t *testing.T) {
	s := testStore(t)

	var items []Item
	for i := 0; i < 10; i++ {
		items = append(items, Item{URL: "https://example.com/" + string(rune('a'+i))})
	}
	added, err := s.Save(context.Background(), "q", items, SaveOptions{AlreadyEnriched: true, MaxItems: 5})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if added != 5 {
		t.Fatalf("added %d, want 5", added)
	}
}

func TestSaveToleratesDamagedStoreFile(t *testing.T) {
	s := testStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path(), []byte(`{"this is": "not an array"`), 0o644); err != nil {
		t.Fatal(err)
	}

	added, err := s.Save(context.Background(), "q", []Item{{URL: "https://a.example"}}, SaveOptions{AlreadyEnriched: true})
	if err != nil {
		t.Fatalf("save over damaged file must not fail: %v", err)
	}
	if added != 1 {
		t.Fatalf("added %d, want 1", added)
	}
	records := readRecords(t, s.Path())
	if len(records) != 1 {
		t.Fatalf("store has %d records, want 1 (damaged content discarded)", len(records))
	}
}

func TestSaveMissingFileTreatedAsEmpty(t *testing.T) {
	s := testStore(t)
	if records := s.Load(context.Background()); len(records) != 0 {
		t.Fatalf("missing file loaded %d records, want 0", len(records))
	}
	if _, err := s.Save(context.Background(), "q", []Item{{URL: "https://a.example"}}, SaveOptions{AlreadyEnriched: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("store file not created: %v", err)
	}
}

func TestSaveEnrichesRawItemsWithoutDescription(t *testing.T) {
	s := testStore(t)
	enriched := 0
	s.WithEnricher(func(ctx context.Context, url, fallback string) string {
		enriched++
		return "enriched description for " + url
	})

	items := []Item{
		{URL: "https://a.example", Description: "already has one"},
		{URL: "https://b.example"},
	}
	if _, err := s.Save(context.Background(), "q", items, SaveOptions{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if enriched != 1 {
		t.Fatalf("enricher called %d times, want 1 (only for the empty description)", enriched)
	}

	records := readRecords(t, s.Path())
	if records[1].Description != "enriched description for https://b.example" {
		t.Fatalf("record not enriched: %+v", records[1])
	}
}

func TestSaveSkipsEnrichmentForPreEnrichedItems(t *testing.T) {
	s := testStore(t)
	s.WithEnricher(func(ctx context.Context, url, fallback string) string {
		t.Fatalf("enricher must not run for pre-enriched items")
		return ""
	})

	if _, err := s.Save(context.Background(), "q", []Item{{URL: "https://a.example"}}, SaveOptions{AlreadyEnriched: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestConcurrentSavesKeepDedupInvariant(t *testing.T) {
	s := testStore(t)
	items := []Item{
		{URL: "https://a.example"},
		{URL: "https://b.example"},
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Save(context.Background(), "q", items, SaveOptions{AlreadyEnriched: true})
		}()
	}
	wg.Wait()

	records := readRecords(t, s.Path())
	if len(records) != 2 {
		t.Fatalf("store has %d records after concurrent saves, want 2", len(records))
	}
}

func TestParseItems(t *testing.T) {
	raws := []any{
		`{"url":"https://a.example","title":"A","description":"da"}`,
		map[string]any{"url": "https://b.example", "title": "B", "description": "db"},
		Item{URL: "https://c.example"},
		`not json at all`,
		3.14,
	}
	items, skipped := ParseItems(raws)
	if len(items) != 3 {
		t.Fatalf("parsed %d items, want 3", len(items))
	}
	if skipped != 2 {
		t.Fatalf("skipped %d items, want 2", skipped)
	}
}

func TestResolveStorePathExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir available")
	}
	got := ResolveStorePath("~/results/store.json")
	want := filepath.Join(home, "results", "store.json")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
