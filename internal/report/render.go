package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/types"
)

// PrintOptions carries presentation toggles and run statistics for the
// footer.
type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	CacheHits    int
}

// PrintText renders violations and warnings as aligned plain-text lines,
// ordered by (path, line, column).
func PrintText(w io.Writer, violations []types.Violation, warnings []types.Warning, opts PrintOptions) {
	sortViolations(violations)
	if len(violations) == 0 {
		fmt.Fprintln(w, "No improper exception handling found ✅")
	} else {
		maxKind := len(string(types.KindEmptyHandler))
		for _, v := range violations {
			if l := len(string(v.Kind)); l > maxKind {
				maxKind = l
			}
		}
		for _, v := range violations {
			sev := string(v.Severity)
			if !opts.NoColor {
				sev = colorSeverity(v.Severity)
			}
			fmt.Fprintf(w, "%-6s %-*s %s:%d:%d  %s\n", sev, maxKind, v.Kind, v.Path, v.Line, v.Column, v.Message)
		}
	}

	for _, wn := range warnings {
		fmt.Fprintf(w, "warning %s %s: %s\n", wn.Kind, wn.Path, wn.Message)
	}

	// Summary footer
	empty, broad := 0, 0
	for _, v := range violations {
		switch v.Kind {
		case types.KindEmptyHandler:
			empty++
		case types.KindBroadHandler:
			broad++
		}
	}
	if opts.Duration > 0 || opts.FilesScanned > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Violations: %d (empty-handler: %d, broad-handler: %d)\n", len(violations), empty, broad)
		if len(warnings) > 0 {
			fmt.Fprintf(w, "Warnings: %d\n", len(warnings))
		}
		if opts.FilesScanned > 0 {
			fmt.Fprintf(w, "Files analyzed: %d\n", opts.FilesScanned)
		}
		if opts.CacheHits > 0 {
			fmt.Fprintf(w, "Cache hits: %d\n", opts.CacheHits)
		}
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Duration: %.2fs\n", opts.Duration.Seconds())
		}
	}
}

// PrintJSON emits the structured report consumed by pipelines.
func PrintJSON(w io.Writer, files []types.FileResult, violations []types.Violation, warnings []types.Warning) error {
	sortViolations(violations)
	return writeJSON(w, jsonReport{
		Files:      files,
		Violations: violations,
		Warnings:   warnings,
	})
}

type jsonReport struct {
	Files      []types.FileResult `json:"files"`
	Violations []types.Violation  `json:"violations"`
	Warnings   []types.Warning    `json:"warnings"`
}

func sortViolations(vs []types.Violation) {
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].Path != vs[j].Path {
			return vs[i].Path < vs[j].Path
		}
		if vs[i].Line != vs[j].Line {
			return vs[i].Line < vs[j].Line
		}
		return vs[i].Column < vs[j].Column
	})
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "\x1b[31mhigh\x1b[0m" // red
	case types.SevMed:
		return "\x1b[33mmedium\x1b[0m" // yellow
	default:
		return "\x1b[36mlow\x1b[0m" // cyan
	}
}
