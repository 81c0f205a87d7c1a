package store

import (
	"strings"
	"sync"
)

// Per-path mutexes serialize the whole load -> dedup -> rewrite sequence so
// concurrent saves against the same file cannot duplicate URLs.
var storeLocks sync.Map

func storeLockKey(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "__results_store__"
	}
	return trimmed
}

func storeLockForPath(path string) *sync.Mutex {
	key := storeLockKey(path)
	if val, ok := storeLocks.Load(key); ok {
		return val.(*sync.Mutex)
	}
	mu := &sync.Mutex{}
	actual, _ := storeLocks.LoadOrStore(key, mu)
	return actual.(*sync.Mutex)
}
