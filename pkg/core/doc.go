// Package core provides a small, stable facade over the checker's internal
// engine for external integrations, such as CI drivers that want to shard
// files across processes. It deliberately re-exports a narrow API surface
// so callers never depend on internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: "."}
//	violations, err := core.Scan(context.Background(), cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalViolations(os.Stdout, violations)
package core
