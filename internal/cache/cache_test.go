package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/types"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	// initial load should return empty DB and error
	db, _ := Load(dir, "default")
	if db.Entries == nil {
		t.Fatalf("expected entries map initialized")
	}
	db.Entries["a.py"] = Entry{
		Hash: "deadbeef",
		Violations: []types.Violation{
			{Path: "a.py", Line: 3, Column: 5, Kind: types.KindEmptyHandler, Severity: types.SevHigh},
		},
	}
	if err := Save(dir, db); err != nil {
		t.Fatalf("save: %v", err)
	}
	// file should exist
	if _, err := os.Stat(filepath.Join(dir, ".excheckcache.json")); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	// load again and verify
	db2, err := Load(dir, "default")
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	e := db2.Entries["a.py"]
	if e.Hash != "deadbeef" || len(e.Violations) != 1 || e.Violations[0].Line != 3 {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestLoadRejectsOtherTool(t *testing.T) {
	dir := t.TempDir()
	db, _ := Load(dir, "default")
	db.Entries["a.py"] = Entry{Hash: "deadbeef"}
	if err := Save(dir, db); err != nil {
		t.Fatalf("save: %v", err)
	}
	db2, _ := Load(dir, "strict")
	if len(db2.Entries) != 0 {
		t.Fatalf("cache for another ruleset must not be reused")
	}
}
