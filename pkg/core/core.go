package core

import (
	"context"

	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/classify"
	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/engine"
	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Result = engine.Result
type Violation = types.Violation
type Warning = types.Warning
type FileResult = types.FileResult

// Scan is the stable entrypoint for other programs. Cancelling ctx stops
// the run between files.
func Scan(ctx context.Context, cfg Config) ([]Violation, error) {
	return engine.Scan(ctx, cfg)
}

// ScanWithStats runs a scan and returns per-file results plus statistics.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	return engine.ScanWithStats(ctx, cfg)
}

// RulesetIDs returns the list of configured ruleset IDs for the --tool
// option. This is exposed for convenience to avoid importing internals
// directly.
func RulesetIDs() []string {
	var ids []string
	for _, rs := range classify.Rulesets() {
		ids = append(ids, rs.ID)
	}
	return ids
}
