package excheck

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagReportFile      string
	flagExclude         string
	flagInclude         string
	flagTool            string
	flagAllow           string
	flagMaxBytes        int64
	flagJSON            bool
	flagSARIF           bool
	flagNoColor         bool
	flagCache           bool
	flagQuiet           bool
	flagDefaultExcludes bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command. The checker is a single-purpose tool,
// so analysis runs directly on the root command with the target path as
// its only argument.
var rootCmd = &cobra.Command{
	Use:           "excheck [path]",
	Short:         "Find improper exception handling in Python code",
	Long:          "excheck scans Python sources for bare or empty except blocks and overly broad catch-alls, and reports each finding with its location.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScan,
}

// Execute runs the CLI. It should be called by the main package. Scans
// that finished but could not analyze every file exit 1; fatal errors
// exit 2.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, errFilesFailed) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func init() {
	rootCmd.Flags().StringVar(&flagReportFile, "report_file", "", "write the report to this path instead of stdout")
	rootCmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated paths or glob patterns to skip")
	rootCmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs (positive filter)")
	rootCmd.Flags().StringVar(&flagTool, "tool", "", "ruleset to apply (see 'excheck rules')")
	rootCmd.Flags().StringVar(&flagAllow, "allow", "", "broad exception types acceptable to catch (comma-separated)")
	rootCmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.Flags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.Flags().BoolVar(&flagCache, "cache", false, "reuse cached results for unchanged files")
	rootCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "suppress the progress banner on stderr")
	rootCmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "skip virtualenvs, __pycache__, VCS dirs, etc.")
}
