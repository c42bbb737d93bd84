package ignore

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Matcher answers whether a relative path is excluded by an ignore file.
// The zero value matches nothing.
type Matcher struct {
	patterns []string
}

// Load reads an ignore file. A missing file yields an empty matcher and
// the underlying error, which callers typically discard.
func Load(p string) (Matcher, error) {
	var m Matcher
	f, err := os.Open(p)
	if err != nil {
		return m, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.patterns = append(m.patterns, line)
	}
	return m, sc.Err()
}

// Match reports whether rel matches any ignore pattern. Directory patterns
// (trailing slash) match everything under that directory at any depth;
// glob patterns match the base name; plain entries match the full relative
// path or the base name.
func (m Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	base := path.Base(rel)
	for _, p := range m.patterns {
		if strings.HasSuffix(p, "/") {
			dir := strings.TrimSuffix(p, "/")
			if rel == dir || strings.HasPrefix(rel, dir+"/") || strings.Contains(rel, "/"+dir+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(p, base); ok {
			return true
		}
		if rel == p {
			return true
		}
	}
	return false
}
