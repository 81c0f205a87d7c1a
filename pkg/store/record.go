package store

import (
	"encoding/json"
	"strings"
	"time"
)

// Record is the persisted unit of the results store. Records are appended
// once per unique URL and never mutated or deleted afterwards.
type Record struct {
	Query       string `json:"query"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Item is one search result candidate offered to Save.
type Item struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NormalizeURL produces the dedup key for a URL: trimmed and lower-cased.
func NormalizeURL(rawURL string) string {
	return strings.ToLower(strings.TrimSpace(rawURL))
}

func newRecord(query string, item Item, now time.Time) Record {
	return Record{
		Query:       query,
		Date:        now.Format(time.RFC3339),
		Title:       strings.TrimSpace(item.Title),
		Description: strings.TrimSpace(item.Description),
		URL:         strings.TrimSpace(item.URL),
	}
}

// ParseItems converts raw search payload entries into Items. Entries may be
// pre-serialized JSON strings or already-structured objects; entries that
// cannot be parsed are skipped and reported in the second return value.
func ParseItems(raws []any) (items []Item, skipped int) {
	for _, raw := range raws {
		switch value := raw.(type) {
		case Item:
			items = append(items, value)
		case string:
			var item Item
			if err := json.Unmarshal([]byte(value), &item); err != nil {
				skipped++
				continue
			}
			items = append(items, item)
		case map[string]any:
			items = append(items, Item{
				URL:         stringField(value, "url"),
				Title:       stringField(value, "title"),
				Description: stringField(value, "description"),
			})
		default:
			skipped++
		}
	}
	return items, skipped
}

func stringField(m map[string]any, key string) string {
	if value, ok := m[key].(string); ok {
		return value
	}
	return ""
}
