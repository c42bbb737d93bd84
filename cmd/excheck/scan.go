package excheck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/audit"
	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/config"
	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/engine"
	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/report"
	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/types"
)

func runScan(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	abs, _ := filepath.Abs(target)

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	cfg := engine.Config{
		Root:         abs,
		IncludeGlobs: pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs: pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes: pickInt64Flag(cmd.Flags().Changed("max-bytes"),
			flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Tool:      pickString(flagTool, lcfg.Tool, gcfg.Tool),
		Allowlist: pickString(flagAllow, lcfg.Allow, gcfg.Allow),
		Cache:     pickBool(flagCache, lcfg.Cache, gcfg.Cache),
		DefaultExcludes: pickBoolFlag(cmd.Flags().Changed("default-excludes"),
			flagDefaultExcludes, lcfg.DefaultExcludes, gcfg.DefaultExcludes),
	}
	reportFile := pickString(flagReportFile, lcfg.ReportFile, gcfg.ReportFile)
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	if !noColor && reportFile == "" && !term.IsTerminal(int(os.Stdout.Fd())) {
		noColor = true
	}
	structured := flagJSON || flagSARIF

	// Interrupt stops the walk between files; whatever was analyzed up to
	// that point is still reported.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !structured && !flagQuiet {
		fmt.Fprintf(os.Stderr, "Analyzing %s...\n", abs)
	}
	total, _ := engine.CountTargets(cfg)
	progressed := 0
	if total > 0 && !structured && !flagQuiet {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}

	res, err := engine.ScanWithStats(ctx, cfg)
	if err != nil {
		return err
	}
	if total > 0 && !structured && !flagQuiet {
		fmt.Fprintln(os.Stderr)
	}

	dest, err := report.Destination(reportFile)
	if err != nil {
		return err
	}
	switch {
	case flagSARIF:
		err = report.WriteSARIF(dest, res.Violations, version)
	case flagJSON:
		err = report.PrintJSON(dest, res.Files, res.Violations, res.Warnings)
	default:
		report.PrintText(dest, res.Violations, res.Warnings, report.PrintOptions{
			NoColor:      noColor || reportFile != "",
			Duration:     res.Duration,
			FilesScanned: res.FilesScanned,
			CacheHits:    res.CacheHits,
		})
	}
	if cerr := dest.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("report error: %w", err)
	}
	if reportFile != "" && !flagQuiet {
		fmt.Fprintf(os.Stderr, "Report saved to %s\n", reportFile)
	}

	// Best-effort run log; never fails the scan.
	rec := audit.CreateScanRecord(abs, cfg.Tool, res.Violations, res.Warnings, res.FilesScanned, res.Duration)
	_ = audit.NewAuditLog(abs).LogScan(rec)

	// Violations are report content, not an error; files we could not
	// analyze are.
	if hasAnalysisFailures(res.Warnings) {
		return errFilesFailed
	}
	return nil
}

// errFilesFailed signals that at least one file could not be read or
// parsed. Execute maps it to exit code 1 instead of the fatal 2.
var errFilesFailed = errors.New("one or more files could not be analyzed")

func hasAnalysisFailures(warnings []types.Warning) bool {
	return len(warnings) > 0
}
