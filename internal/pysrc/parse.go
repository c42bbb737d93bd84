package pysrc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	forest "github.com/alexaandru/go-sitter-forest"
	tree_sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// ErrParse marks files whose syntax the grammar could not recover. Callers
// detect it with errors.Is and downgrade the failure to a per-file warning.
var ErrParse = errors.New("syntax error")

const (
	nodeTypeError             = "ERROR"
	nodeTypeTryStatement      = "try_statement"
	nodeTypeExceptClause      = "except_clause"
	nodeTypeExceptGroupClause = "except_group_clause"
	nodeTypeBlock             = "block"
	nodeTypeComment           = "comment"
	nodeTypePassStatement     = "pass_statement"
	nodeTypeExpressionStmt    = "expression_statement"
	nodeTypeString            = "string"
	nodeTypeEllipsis          = "ellipsis"
	nodeTypeTuple             = "tuple"
	nodeTypeParenExpression   = "parenthesized_expression"
	nodeTypeExpressionList    = "expression_list"
)

// Parse converts Python source into a Module. It never mutates src and
// holds no state between calls; the tree-sitter tree is closed before
// returning. A file with invalid syntax yields an ErrParse-wrapped error.
func Parse(ctx context.Context, src []byte) (*Module, error) {
	grammar := forest.GetLanguage("python")
	if grammar == nil {
		return nil, errors.New("python grammar unavailable")
	}

	parser := tree_sitter.NewParser()
	if parser == nil {
		return nil, errors.New("failed to create parser")
	}
	if ok := parser.SetLanguage(grammar); !ok {
		return nil, errors.New("failed to select python grammar")
	}

	tree, err := parser.ParseString(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%w: empty parse result", ErrParse)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, fmt.Errorf("%w: no root node", ErrParse)
	}
	if line, bad := firstSyntaxError(root); bad {
		return nil, fmt.Errorf("%w at line %d", ErrParse, line)
	}

	mod := &Module{}
	collectTries(root, src, mod)
	return mod, nil
}

// firstSyntaxError reports the line of the first ERROR node, if any.
func firstSyntaxError(n tree_sitter.Node) (int, bool) {
	if n.Type() == nodeTypeError {
		return int(n.StartPoint().Row) + 1, true
	}
	count := n.ChildCount()
	for i := range count {
		c := n.Child(i)
		if c.IsNull() {
			continue
		}
		if line, bad := firstSyntaxError(c); bad {
			return line, true
		}
	}
	return 0, false
}

func collectTries(n tree_sitter.Node, src []byte, mod *Module) {
	if n.Type() == nodeTypeTryStatement {
		mod.Tries = append(mod.Tries, buildTry(n, src))
	}
	count := n.ChildCount()
	for i := range count {
		c := n.Child(i)
		if c.IsNull() {
			continue
		}
		collectTries(c, src, mod)
	}
}

func buildTry(n tree_sitter.Node, src []byte) *TryBlock {
	tb := &TryBlock{
		Line:   int(n.StartPoint().Row) + 1,
		Column: int(n.StartPoint().Column) + 1,
	}
	count := n.ChildCount()
	for i := range count {
		c := n.Child(i)
		if c.IsNull() {
			continue
		}
		switch c.Type() {
		case nodeTypeExceptClause:
			tb.Handlers = append(tb.Handlers, buildHandler(c, src, false))
		case nodeTypeExceptGroupClause:
			tb.Handlers = append(tb.Handlers, buildHandler(c, src, true))
		}
	}
	return tb
}

func buildHandler(n tree_sitter.Node, src []byte, star bool) *HandlerClause {
	h := &HandlerClause{
		Line:   int(n.StartPoint().Row) + 1,
		Column: int(n.StartPoint().Column) + 1,
		Star:   star,
	}

	var body tree_sitter.Node
	haveBody := false
	haveType := false
	count := n.ChildCount()
	for i := range count {
		c := n.Child(i)
		if c.IsNull() {
			continue
		}
		switch c.Type() {
		case "except", "except*", "*", ":", "as", ",", nodeTypeComment:
			// clause punctuation and trivia
		case nodeTypeBlock:
			body = c
			haveBody = true
		default:
			// The first expression is the caught type; a second one, after
			// "as" or a comma, is the binding target and is skipped.
			if !haveType {
				h.Types = typeNames(c, src)
				haveType = true
			}
		}
	}

	if haveBody {
		h.Header = headerText(n, body, src)
		h.Body = bodyStmts(body)
	} else {
		h.Header = firstLine(nodeText(n, src))
	}
	return h
}

// typeNames flattens the caught-type expression into declared type names.
// Tuples yield one name per element; anything else is kept verbatim, so a
// dotted name like socket.error survives as written.
func typeNames(n tree_sitter.Node, src []byte) []string {
	switch n.Type() {
	case nodeTypeTuple, nodeTypeParenExpression, nodeTypeExpressionList:
		var out []string
		count := n.ChildCount()
		for i := range count {
			c := n.Child(i)
			if c.IsNull() {
				continue
			}
			switch c.Type() {
			case "(", ")", ",", nodeTypeComment:
				continue
			}
			out = append(out, typeNames(c, src)...)
		}
		return out
	default:
		return []string{nodeText(n, src)}
	}
}

func bodyStmts(block tree_sitter.Node) []Stmt {
	var out []Stmt
	count := block.ChildCount()
	for i := range count {
		c := block.Child(i)
		if c.IsNull() || c.Type() == nodeTypeComment {
			continue
		}
		out = append(out, Stmt{
			Kind:   stmtKind(c),
			Line:   int(c.StartPoint().Row) + 1,
			Column: int(c.StartPoint().Column) + 1,
		})
	}
	return out
}

func stmtKind(n tree_sitter.Node) StmtKind {
	switch n.Type() {
	case nodeTypePassStatement:
		return StmtPass
	case nodeTypeExpressionStmt:
		count := n.ChildCount()
		for i := range count {
			c := n.Child(i)
			if c.IsNull() || c.Type() == nodeTypeComment {
				continue
			}
			switch c.Type() {
			case nodeTypeString:
				return StmtDocString
			case nodeTypeEllipsis:
				return StmtEllipsis
			}
			break
		}
	}
	return StmtOther
}

func nodeText(n tree_sitter.Node, src []byte) string {
	start, end := n.StartByte(), n.EndByte()
	if start >= end || int(end) > len(src) {
		return ""
	}
	return string(src[start:end])
}

func headerText(clause, body tree_sitter.Node, src []byte) string {
	start, end := clause.StartByte(), body.StartByte()
	if start >= end || int(end) > len(src) {
		return firstLine(nodeText(clause, src))
	}
	return strings.TrimRight(string(src[start:end]), " \t\r\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimRight(s[:i], " \t\r")
	}
	return s
}
