// Package engine drives the per-file analysis loop: it selects target
// Python files, parses and classifies each one in turn, and aggregates
// violations and warnings into a structured result. A file that fails to
// parse is recorded as a warning and never aborts the run. This package is
// internal; external consumers should use the stable facade in pkg/core.
package engine
