// Package classify decides which exception handlers are improper. The
// emptiness and breadth checks are pure predicates over the pysrc model;
// classification produces ordered, immutable violation records and never
// mutates its input.
package classify
