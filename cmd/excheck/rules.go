package excheck

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/internal/classify"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rulesets and violation kinds",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(os.Stdout, "Rulesets (--tool):")
			for _, rs := range classify.Rulesets() {
				marker := " "
				if rs.ID == classify.DefaultRuleset {
					marker = "*"
				}
				fmt.Fprintf(os.Stdout, "  %s %-8s %s\n", marker, rs.ID, rs.Description)
			}
			fmt.Fprintln(os.Stdout)
			fmt.Fprintln(os.Stdout, "Violation kinds:")
			fmt.Fprintln(os.Stdout, "    empty-handler  handler body performs no observable action")
			fmt.Fprintln(os.Stdout, "    broad-handler  handler catches everything or only root exception types")
		},
	}
	rootCmd.AddCommand(cmd)
}
