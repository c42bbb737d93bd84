package classify

import (
	"fmt"
	"strings"
)

// Ruleset selects which checks run and which caught types count as overly
// broad. Selected by the --tool flag; the zero value is not usable, go
// through Lookup.
type Ruleset struct {
	ID          string
	Description string
	ReportEmpty bool
	ReportBroad bool

	// disallowed holds type names considered catch-alls. Both the plain
	// and the builtins-qualified spellings are present.
	disallowed map[string]bool

	// noExempt lists types the allowlist cannot exempt.
	noExempt map[string]bool
}

// DefaultRuleset is the ruleset used when --tool is not given.
const DefaultRuleset = "default"

func rootTypes(extra ...string) map[string]bool {
	m := map[string]bool{
		"Exception":              true,
		"BaseException":          true,
		"builtins.Exception":     true,
		"builtins.BaseException": true,
	}
	for _, t := range extra {
		m[t] = true
	}
	return m
}

var rulesets = []Ruleset{
	{
		ID:          DefaultRuleset,
		Description: "flag empty handlers and broad catch-alls",
		ReportEmpty: true,
		ReportBroad: true,
		disallowed:  rootTypes(),
	},
	{
		ID:          "strict",
		Description: "like default, but BaseException is never allowlisted and catching object is flagged",
		ReportEmpty: true,
		ReportBroad: true,
		disallowed:  rootTypes("object", "builtins.object"),
		noExempt:    map[string]bool{"BaseException": true, "builtins.BaseException": true},
	},
	{
		ID:          "silence",
		Description: "flag only handlers that silently swallow exceptions",
		ReportEmpty: true,
		disallowed:  rootTypes(),
	},
	{
		ID:          "breadth",
		Description: "flag only overly broad handlers",
		ReportBroad: true,
		disallowed:  rootTypes(),
	},
}

// Rulesets returns all registered rulesets in a stable order.
func Rulesets() []Ruleset {
	out := make([]Ruleset, len(rulesets))
	copy(out, rulesets)
	return out
}

// Lookup resolves a ruleset by ID. An empty ID selects the default; an
// unknown ID is a configuration error.
func Lookup(id string) (Ruleset, error) {
	if id == "" {
		id = DefaultRuleset
	}
	for _, rs := range rulesets {
		if rs.ID == id {
			return rs, nil
		}
	}
	var ids []string
	for _, rs := range rulesets {
		ids = append(ids, rs.ID)
	}
	return Ruleset{}, fmt.Errorf("unknown tool %q (available: %s)", id, strings.Join(ids, ", "))
}

// disallows reports whether the declared type name is a catch-all under
// this ruleset. Dotted names are also matched by their last segment, so
// builtins.Exception and Exception behave alike.
func (rs Ruleset) disallows(name string) bool {
	if rs.disallowed[name] {
		return true
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return rs.disallowed[name[i+1:]]
	}
	return false
}

// exemptable reports whether the allowlist may excuse catching this type.
func (rs Ruleset) exemptable(name string) bool {
	if rs.noExempt == nil {
		return true
	}
	if rs.noExempt[name] {
		return false
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return !rs.noExempt[name[i+1:]]
	}
	return true
}
