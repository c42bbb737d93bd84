package engine

import "strings"

var defaultExcludeDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".svn":          true,
	"node_modules":  true,
	".venv":         true,
	"venv":          true,
	"__pycache__":   true,
	".tox":          true,
	".nox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".eggs":         true,
	"site-packages": true,
}

// isDefaultDirExcluded skips directories that only ever hold third-party
// or generated Python when default excludes are enabled.
func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || strings.HasSuffix(name, ".egg-info")
}

// isPythonSource selects files the analyzer understands.
func isPythonSource(lowerRel string) bool {
	return strings.HasSuffix(lowerRel, ".py") || strings.HasSuffix(lowerRel, ".pyw")
}
