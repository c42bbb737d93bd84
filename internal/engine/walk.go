package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/ignore"
)

// Walk traverses the tree under cfg.Root and invokes handle for each
// eligible Python file with its content. Unreadable files are reported
// through warn and skipped. Cancelling ctx stops the walk between files.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(rel string, data []byte), warn func(rel string, err error)) error {
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if ctx != nil && ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !isPythonSource(strings.ToLower(rel)) {
			return nil
		}
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if ign.Match(rel) {
			return nil
		}
		if cfg.MaxBytes > 0 {
			info, _ := d.Info()
			if info != nil && info.Size() > cfg.MaxBytes {
				return nil
			}
		}
		b, err := os.ReadFile(p)
		if err != nil {
			warn(rel, err)
			return nil
		}
		handle(rel, b)
		return nil
	})
}

// CountTargets estimates the number of files a scan would analyze. It
// mirrors the selection logic of Walk without reading file contents.
func CountTargets(cfg Config) (int, error) {
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignoreFileName))
	count := 0
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !isPythonSource(strings.ToLower(rel)) {
			return nil
		}
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if ign.Match(rel) {
			return nil
		}
		if cfg.MaxBytes > 0 {
			info, _ := d.Info()
			if info != nil && info.Size() > cfg.MaxBytes {
				return nil
			}
		}
		count++
		return nil
	})
	return count, err
}
