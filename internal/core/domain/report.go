package domain

import "time"

// RunReport summarises one pipeline run for one target.
type RunReport struct {
	// ID uniquely identifies the run.
	ID string

	// Target is the target name.
	Target string

	// URL is the fetched location.
	URL string

	// Output is the destination path.
	Output string

	// Strategy is the patch strategy used.
	Strategy Strategy

	// SourceChars is the fetched content length in characters.
	SourceChars int

	// OutputBytes is the number of bytes written (or that would be written on a dry run).
	OutputBytes int64

	// Applied lists the rules that fired.
	Applied []string

	// Degraded is true when a fallback rule produced the output.
	Degraded bool

	// Healed is true when residual module syntax was removed.
	Healed bool

	// Residuals is the number of residual module syntax markers found after patching.
	Residuals int

	// DryRun is true when no file was written by request.
	DryRun bool

	// Duration is the wall time of the run.
	Duration time.Duration

	// Err is the failure that aborted the run, if any.
	Err error
}

// Succeeded returns true if the run completed without error.
func (r *RunReport) Succeeded() bool {
	return r.Err == nil
}
