package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"

	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/cache"
	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/classify"
	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/ignore"
	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/pysrc"
	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/types"
)

const ignoreFileName = ".excheckignore"

// Config controls one analysis run. It is read-only for the run's duration;
// the engine keeps no state between runs unless the result cache is enabled.
type Config struct {
	Root            string
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	Tool            string
	Allowlist       string
	Cache           bool
	DefaultExcludes bool
	Progress        func()
}

// Result contains per-file results and aggregate statistics for one run.
// Files preserves traversal order; Violations is the flattened, ordered
// sequence across all files.
type Result struct {
	Files        []types.FileResult
	Violations   []types.Violation
	Warnings     []types.Warning
	FilesScanned int
	CacheHits    int
	Duration     time.Duration
}

// Scan runs an analysis and returns only the violations.
func Scan(ctx context.Context, cfg Config) ([]types.Violation, error) {
	res, err := ScanWithStats(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Violations, nil
}

// ScanWithStats runs an analysis over cfg.Root, which may be a single file
// or a directory tree. Configuration problems (missing root, bad globs,
// unknown ruleset) abort before any file is analyzed; per-file parse and
// read failures become warnings on the result.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	var res Result

	rs, err := classify.Lookup(cfg.Tool)
	if err != nil {
		return res, err
	}
	allow := classify.ParseAllowlist(cfg.Allowlist)
	if err := validateGlobs(cfg.IncludeGlobs, cfg.ExcludeGlobs); err != nil {
		return res, err
	}
	st, err := os.Stat(cfg.Root)
	if err != nil {
		return res, fmt.Errorf("path %q does not exist", cfg.Root)
	}

	var db cache.DB
	if cfg.Cache {
		db, _ = cache.Load(cfg.Root, rs.ID)
	} else {
		db.Entries = map[string]cache.Entry{}
	}
	updated := map[string]cache.Entry{}

	started := time.Now()
	handle := func(rel string, data []byte) {
		h := fastHash(data)
		if cfg.Cache {
			if e, ok := db.Entries[rel]; ok && e.Hash == h {
				res.Files = append(res.Files, types.FileResult{Path: rel, Violations: e.Violations})
				res.CacheHits++
				res.FilesScanned++
				updated[rel] = e
				if cfg.Progress != nil {
					cfg.Progress()
				}
				return
			}
		}

		fr := types.FileResult{Path: rel}
		mod, err := pysrc.Parse(ctx, data)
		if err != nil {
			fr.Warnings = append(fr.Warnings, types.Warning{
				Path:    rel,
				Kind:    types.WarnParseFailure,
				Message: err.Error(),
			})
		} else {
			fr.Violations = classify.Classify(rel, mod, rs, allow)
			updated[rel] = cache.Entry{Hash: h, Violations: fr.Violations}
		}
		res.Files = append(res.Files, fr)
		res.FilesScanned++
		if cfg.Progress != nil {
			cfg.Progress()
		}
	}
	warn := func(rel string, err error) {
		res.Files = append(res.Files, types.FileResult{
			Path: rel,
			Warnings: []types.Warning{{
				Path:    rel,
				Kind:    types.WarnReadFailure,
				Message: err.Error(),
			}},
		})
	}

	if st.IsDir() {
		ign, _ := ignore.Load(filepath.Join(cfg.Root, ignoreFileName))
		if err := Walk(ctx, cfg, ign, handle, warn); err != nil {
			return res, err
		}
	} else {
		data, err := os.ReadFile(cfg.Root)
		if err != nil {
			return res, fmt.Errorf("cannot read %q: %w", cfg.Root, err)
		}
		handle(filepath.Base(cfg.Root), data)
	}

	for _, fr := range res.Files {
		res.Violations = append(res.Violations, fr.Violations...)
		res.Warnings = append(res.Warnings, fr.Warnings...)
	}
	res.Duration = time.Since(started)

	if cfg.Cache && len(updated) > 0 {
		db.Entries = updated
		_ = cache.Save(cfg.Root, db)
	}
	return res, nil
}

func fastHash(b []byte) string {
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// validateGlobs rejects malformed patterns before the walk starts, so a
// bad --exclude fails the run instead of silently matching nothing.
func validateGlobs(lists ...string) error {
	for _, list := range lists {
		for _, g := range parseGlobsList(list) {
			if !doublestar.ValidatePattern(g) {
				return fmt.Errorf("invalid glob pattern %q", g)
			}
		}
	}
	return nil
}

// allowedByGlobs returns true if the given path is allowed by the
// include/exclude glob configuration. Include globs are comma-separated
// and, if provided, act as a positive filter. Exclude globs are subtracted
// last. Matching uses forward-slash semantics.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			if t := trimGlobPrefix(p); t != p {
				out = append(out, t)
			}
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
		// a plain directory name excludes everything beneath it
		if strings.HasPrefix(pathToMatch, strings.TrimSuffix(g, "/")+"/") {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
