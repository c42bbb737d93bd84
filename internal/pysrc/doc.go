// Package pysrc adapts the tree-sitter Python grammar into a small typed
// model of exception-handling constructs. It is internal; the classifier
// consumes the model and never touches the concrete syntax tree.
package pysrc
