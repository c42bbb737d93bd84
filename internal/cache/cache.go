package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/types"
)

// Entry stores the analysis outcome for one file at a given content hash.
// A hash hit lets the engine re-emit violations without re-parsing.
type Entry struct {
	Hash       string            `json:"hash"`
	Violations []types.Violation `json:"violations,omitempty"`
}

type DB struct {
	// Path relative to scan root -> cached entry. Keyed per ruleset so a
	// --tool switch never serves stale results.
	Tool    string           `json:"tool"`
	Entries map[string]Entry `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	// Fall back to scan root if .git does not exist
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "excheckcache.json")
	}
	return filepath.Join(root, ".excheckcache.json")
}

// Load reads the result cache for root. A missing or corrupt cache yields
// an empty DB and the underlying error.
func Load(root, tool string) (DB, error) {
	empty := DB{Tool: tool, Entries: map[string]Entry{}}
	p := defaultPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return empty, err
	}
	var db DB
	if err := json.Unmarshal(f, &db); err != nil {
		return empty, err
	}
	if db.Tool != tool || db.Entries == nil {
		return empty, nil
	}
	return db, nil
}

// Save persists the cache for the next run.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	p := defaultPath(root)
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(p, b, 0644)
}
