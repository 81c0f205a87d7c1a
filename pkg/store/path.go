package store

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultStoreDirName  = ".web-search-agent"
	defaultStoreFileName = "results.json"
)

// ResolveStorePath resolves the JSON store path, expanding a leading "~".
// An empty path falls back to ~/.web-search-agent/results.json.
func ResolveStorePath(storePath string) string {
	trimmed := strings.TrimSpace(storePath)
	if trimmed != "" {
		if strings.HasPrefix(trimmed, "~") {
			if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
				return filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
			}
		}
		return filepath.Clean(trimmed)
	}
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return filepath.Join(os.TempDir(), defaultStoreDirName, defaultStoreFileName)
	}
	return filepath.Join(home, defaultStoreDirName, defaultStoreFileName)
}
