package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List configured targets",
	Long: `Lists the built-in and configured targets with their source URL,
output path and patch strategy.`,
	Args: cobra.NoArgs,
	RunE: runTargets,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}

func runTargets(cmd *cobra.Command, _ []string) error {
	if targetService == nil {
		return errors.New("target service not configured")
	}

	targets, err := targetService.List()
	if err != nil {
		return fmt.Errorf("failed to list targets: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(targets) == 0 {
		fmt.Fprintln(out, "No targets configured.")
		return nil
	}

	st := stylesFor(out)
	width := 0
	for _, t := range targets {
		width = max(width, len(t.Name))
	}

	fmt.Fprintln(out, st.Title.Render("Targets"))
	for _, t := range targets {
		name := t.Name + strings.Repeat(" ", width-len(t.Name))
		fmt.Fprintf(out, "  %s  %s -> %s\n", name, t.URL, t.Output)
		details := fmt.Sprintf("strategy %s, %s.%s", t.Strategy, t.Global, t.Identifier)
		if t.MinSize > 0 {
			details += fmt.Sprintf(", min %d chars", t.MinSize)
		}
		fmt.Fprintln(out, st.Muted.Render("  " + strings.Repeat(" ", width) + "  " + details))
	}

	return nil
}
