package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/libpatch/internal/core/domain"
	"github.com/custodia-labs/libpatch/internal/core/ports/driving"
)

var (
	dryRun bool
	strict bool
)

var runCmd = &cobra.Command{
	Use:   "run [target...]",
	Short: "Fetch, patch and write library targets",
	Long: `Downloads each target, rewrites its module scaffolding and writes the
patched file. If target names are given only those targets run.
Otherwise every configured target runs.

A failing target never stops the others. Failures are reported but the
exit status stays zero unless --strict is set.`,
	Args: cobra.ArbitraryArgs,
	RunE: runPatch,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "patch and verify without writing output files")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with a non-zero status when any target fails")
}

func runPatch(cmd *cobra.Command, args []string) error {
	if patchService == nil {
		return errors.New("patch service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Unknown names are usage errors, so check them all before any work.
	if targetService != nil {
		for _, name := range args {
			if _, err := targetService.Get(name); err != nil {
				return fmt.Errorf("target %q: %w", name, err)
			}
		}
	}

	st := stylesFor(cmd.OutOrStdout())
	opts := driving.RunOptions{
		DryRun:   dryRun,
		Progress: printProgress(cmd, st),
	}

	var (
		reports []*domain.RunReport
		runErr  error
	)
	if len(args) == 0 {
		reports, runErr = patchService.RunAll(ctx, opts)
		if runErr != nil && len(reports) == 0 {
			return runErr
		}
	} else {
		var errs []error
		for _, name := range args {
			report, err := patchService.Run(ctx, name, opts)
			if report != nil {
				reports = append(reports, report)
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
		runErr = errors.Join(errs...)
	}

	failed := printSummary(cmd, st, reports)

	if strict && runErr != nil {
		return fmt.Errorf("%d of %d target(s) failed: %w", failed, len(reports), runErr)
	}
	return nil
}

// printProgress returns a ProgressFunc that writes one line per event to
// standard output.
func printProgress(cmd *cobra.Command, st *styles) driving.ProgressFunc {
	out := cmd.OutOrStdout()
	return func(e driving.ProgressEvent) {
		line := fmt.Sprintf("[%s] %s: %s", e.Target, e.Stage, e.Message)
		if e.Warning {
			fmt.Fprintln(out, st.Warning.Render("warning " + line))
			return
		}
		fmt.Fprintln(out, st.Muted.Render(line))
	}
}

// printSummary writes one line per report and returns the failure count.
func printSummary(cmd *cobra.Command, st *styles, reports []*domain.RunReport) int {
	if len(reports) == 0 {
		return 0
	}

	width := 0
	for _, r := range reports {
		width = max(width, len(r.Target))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, st.Title.Render("Summary"))

	failed := 0
	for _, r := range reports {
		name := r.Target + strings.Repeat(" ", width-len(r.Target))
		if !r.Succeeded() {
			failed++
			fmt.Fprintln(out, st.Error.Render(fmt.Sprintf("  FAIL %s  %v", name, r.Err)))
			continue
		}

		verb := "wrote"
		if r.DryRun {
			verb = "would write"
		}
		line := fmt.Sprintf("  OK   %s  %s %s (%d bytes, %s)", name, verb, r.Output, r.OutputBytes, r.Strategy)
		if notes := reportNotes(r); notes != "" {
			fmt.Fprintln(out, st.Warning.Render(line + " " + notes))
		} else {
			fmt.Fprintln(out, st.Success.Render(line))
		}
		fmt.Fprintln(out, st.Muted.Render(fmt.Sprintf("       run %s in %s", r.ID, r.Duration.Round(time.Millisecond))))
	}

	fmt.Fprintln(out, st.Muted.Render(fmt.Sprintf("%d succeeded, %d failed", len(reports)-failed, failed)))
	return failed
}

func reportNotes(r *domain.RunReport) string {
	var notes []string
	if r.Degraded {
		notes = append(notes, "fallback")
	}
	if r.Healed {
		notes = append(notes, fmt.Sprintf("healed %d", r.Residuals))
	} else if r.Residuals > 0 {
		notes = append(notes, fmt.Sprintf("%d residual", r.Residuals))
	}
	if len(notes) == 0 {
		return ""
	}
	return "[" + strings.Join(notes, ", ") + "]"
}
