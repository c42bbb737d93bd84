package pysrc

// StmtKind classifies a handler body statement just enough to decide
// whether the handler does anything observable.
type StmtKind int

const (
	StmtOther StmtKind = iota
	StmtPass
	StmtDocString
	StmtEllipsis
)

// Stmt is one statement in a handler body.
type Stmt struct {
	Kind   StmtKind
	Line   int
	Column int
}

// HandlerClause is one except clause of a try statement. Positions are
// 1-based and point at the clause's "except" keyword. An empty Types slice
// means the clause catches everything (a bare except).
type HandlerClause struct {
	Line   int
	Column int
	Types  []string // declared exception types as written, dotted names allowed
	Star   bool     // except* (exception group) clause
	Header string   // clause source text up to and including the colon
	Body   []Stmt
}

// TryBlock is one try statement and its handler clauses. Handlers appear
// in source order. Nested try statements inside handler bodies become
// separate TryBlocks on the Module.
type TryBlock struct {
	Line     int
	Column   int
	Handlers []*HandlerClause
}

// Module is the structural view of one parsed source file. It keeps only
// what classification needs; the concrete syntax tree is released as soon
// as a Module has been built.
type Module struct {
	Tries []*TryBlock
}
