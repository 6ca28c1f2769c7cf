package driving

import (
	"context"

	"github.com/custodia-labs/libpatch/internal/core/domain"
)

// PatchService runs the fetch, verify, patch, verify, emit pipeline.
type PatchService interface {
	// Run executes the pipeline for a single named target.
	// The returned report is non-nil whenever the target exists, and
	// carries the failure in Err as well as the returned error.
	Run(ctx context.Context, name string, opts RunOptions) (*domain.RunReport, error)

	// RunAll executes the pipeline for every configured target in order.
	// A failing target does not stop the others; the returned error joins
	// every failure.
	RunAll(ctx context.Context, opts RunOptions) ([]*domain.RunReport, error)
}

// RunOptions controls a pipeline run.
type RunOptions struct {
	// DryRun runs every stage except the emitter.
	DryRun bool

	// Progress receives a message at each pipeline stage. May be nil.
	Progress ProgressFunc
}

// Stage identifies a pipeline stage.
type Stage string

// Pipeline stages, in execution order.
const (
	StageFetch  Stage = "fetch"
	StageVerify Stage = "verify"
	StagePatch  Stage = "patch"
	StageHeal   Stage = "heal"
	StageEmit   Stage = "emit"
)

// ProgressEvent is a human-readable message about a pipeline stage.
type ProgressEvent struct {
	// Target is the target name.
	Target string

	// Stage is the stage the message belongs to.
	Stage Stage

	// Warning marks a degraded or self-healed outcome.
	Warning bool

	// Message is the text to show.
	Message string
}

// ProgressFunc receives progress events.
type ProgressFunc func(event ProgressEvent)

// TargetService exposes the configured targets.
type TargetService interface {
	// List returns all configured targets, built-ins first, then
	// config-defined targets sorted by name.
	List() ([]domain.Target, error)

	// Get returns a target by name.
	// Returns an error wrapping domain.ErrNotFound if it does not exist.
	Get(name string) (*domain.Target, error)
}
