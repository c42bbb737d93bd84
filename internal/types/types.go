package types

// Kind identifies the anti-pattern a violation reports.
type Kind string

const (
	KindEmptyHandler Kind = "empty-handler"
	KindBroadHandler Kind = "broad-handler"
)

// Severity is a coarse-grained risk level for a violation.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Violation describes one improper exception handler detected at a path,
// line and column. Location and message are copied out of the parse tree,
// so a Violation stays valid after the tree is discarded.
type Violation struct {
	Path     string   `json:"path"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Context  string   `json:"context,omitempty"` // handler header, e.g. "except Exception:"
}

// Warning kinds for per-file failures.
const (
	WarnParseFailure = "parse-failure"
	WarnReadFailure  = "read-failure"
)

// Warning records a per-file failure that did not abort the run.
type Warning struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// FileResult groups the violations and warnings for one analyzed file.
// Violations are in ascending (line, column) order.
type FileResult struct {
	Path       string      `json:"path"`
	Violations []Violation `json:"violations"`
	Warnings   []Warning   `json:"warnings,omitempty"`
}
