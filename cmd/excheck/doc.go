// Package excheck provides the command-line interface for the improper
// exception handling checker. It parses flags, resolves configuration, and
// runs the analysis engine over the target path.
//
// Typical usage from a main package:
//
//	package main
//	import excheck ".../cmd/excheck"
//	func main() { excheck.Execute() }
package excheck
