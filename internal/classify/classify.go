package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/pysrc"
	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/types"
)

// IsEmpty reports whether the handler body performs no observable action.
// A body of pass statements, docstrings or bare ellipses still counts as
// empty; logging, return and re-raise do not.
func IsEmpty(h *pysrc.HandlerClause) bool {
	for _, s := range h.Body {
		switch s.Kind {
		case pysrc.StmtPass, pysrc.StmtDocString, pysrc.StmtEllipsis:
		default:
			return false
		}
	}
	return true
}

// IsBroad reports whether the handler catches everything or only catch-all
// types. A clause naming at least one specific, non-root exception type is
// compliant regardless of what else it catches. The allowlist excuses
// catch-all types the caller has declared acceptable, subject to the
// ruleset's exemption policy.
func IsBroad(h *pysrc.HandlerClause, rs Ruleset, allow map[string]bool) bool {
	if len(h.Types) == 0 {
		return true
	}
	offending := false
	for _, t := range h.Types {
		if !rs.disallows(t) {
			return false
		}
		if allow[t] && rs.exemptable(t) {
			continue
		}
		offending = true
	}
	return offending
}

// Classify walks every handler clause in the module and returns violations
// in ascending (line, column) order of the clause header. An empty handler
// that is also broad yields a single empty-handler violation.
func Classify(path string, mod *pysrc.Module, rs Ruleset, allow map[string]bool) []types.Violation {
	var out []types.Violation
	for _, tb := range mod.Tries {
		for _, h := range tb.Handlers {
			if v, ok := classifyHandler(path, h, rs, allow); ok {
				out = append(out, v)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out
}

func classifyHandler(path string, h *pysrc.HandlerClause, rs Ruleset, allow map[string]bool) (types.Violation, bool) {
	empty := IsEmpty(h)
	broad := IsBroad(h, rs, allow)

	switch {
	case empty && rs.ReportEmpty:
		return violation(path, h, types.KindEmptyHandler, emptyMessage(h)), true
	case broad && rs.ReportBroad:
		return violation(path, h, types.KindBroadHandler, broadMessage(h)), true
	}
	return types.Violation{}, false
}

func violation(path string, h *pysrc.HandlerClause, kind types.Kind, msg string) types.Violation {
	sev := types.SevMed
	if kind == types.KindEmptyHandler {
		sev = types.SevHigh
	}
	return types.Violation{
		Path:     path,
		Line:     h.Line,
		Column:   h.Column,
		Kind:     kind,
		Severity: sev,
		Message:  msg,
		Context:  h.Header,
	}
}

func emptyMessage(h *pysrc.HandlerClause) string {
	if len(h.Types) == 0 {
		return "empty except block silently swallows all exceptions"
	}
	return fmt.Sprintf("empty except block silently swallows %s", strings.Join(h.Types, ", "))
}

func broadMessage(h *pysrc.HandlerClause) string {
	if len(h.Types) == 0 {
		return "bare except catches every exception, including SystemExit and KeyboardInterrupt"
	}
	return fmt.Sprintf("except clause catches overly broad type %s", strings.Join(h.Types, ", "))
}

// ParseAllowlist turns a comma-separated list of type names into a lookup
// set. Whitespace around entries is ignored.
func ParseAllowlist(s string) map[string]bool {
	out := map[string]bool{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out[t] = true
		}
	}
	return out
}
