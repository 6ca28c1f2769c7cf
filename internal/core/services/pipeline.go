package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/libpatch/internal/core/domain"
	"github.com/custodia-labs/libpatch/internal/core/ports/driven"
	"github.com/custodia-labs/libpatch/internal/core/ports/driving"
	"github.com/custodia-labs/libpatch/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PatchService = (*PipelineService)(nil)

// PipelineService runs fetch, verify size, patch, verify residuals, emit
// and report for each target. Stages run strictly in that order and any
// failure before emit leaves the previous artifact untouched.
type PipelineService struct {
	targets  driving.TargetService
	fetcher  driven.Fetcher
	patchers driven.PatcherRegistry
	emitter  driven.Emitter
	verifier *Verifier
	newID    func() string
	now      func() time.Time
}

// NewPipelineService creates a new pipeline service.
// newID generates run report IDs.
func NewPipelineService(
	targets driving.TargetService,
	fetcher driven.Fetcher,
	patchers driven.PatcherRegistry,
	emitter driven.Emitter,
	newID func() string,
) *PipelineService {
	return &PipelineService{
		targets:  targets,
		fetcher:  fetcher,
		patchers: patchers,
		emitter:  emitter,
		verifier: NewVerifier(),
		newID:    newID,
		now:      time.Now,
	}
}

// Run executes the pipeline for a single named target.
func (s *PipelineService) Run(ctx context.Context, name string, opts driving.RunOptions) (*domain.RunReport, error) {
	target, err := s.targets.Get(name)
	if err != nil {
		return nil, err
	}

	report := s.execute(ctx, *target, opts)
	return report, report.Err
}

// RunAll executes the pipeline for every target. Targets are independent:
// a failure is recorded in its report and the next target still runs.
func (s *PipelineService) RunAll(ctx context.Context, opts driving.RunOptions) ([]*domain.RunReport, error) {
	targets, err := s.targets.List()
	if err != nil {
		return nil, err
	}

	reports := make([]*domain.RunReport, 0, len(targets))
	var errs []error
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		report := s.execute(ctx, target, opts)
		reports = append(reports, report)
		if report.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", target.Name, report.Err))
		}
	}

	return reports, errors.Join(errs...)
}

// execute runs every stage for one target and always returns a report.
func (s *PipelineService) execute(ctx context.Context, target domain.Target, opts driving.RunOptions) *domain.RunReport {
	start := s.now()
	report := &domain.RunReport{
		ID:       s.newID(),
		Target:   target.Name,
		URL:      target.URL,
		Output:   target.Output,
		Strategy: target.Strategy,
		DryRun:   opts.DryRun,
	}
	progress := progressFor(target.Name, opts.Progress)

	logger.Section("Target " + target.Name)
	err := s.stages(ctx, target, opts, report, progress)
	report.Duration = s.now().Sub(start)
	if err != nil {
		report.Err = err
		logger.Error("%s: %v", target.Name, err)
	}
	return report
}

func (s *PipelineService) stages(
	ctx context.Context,
	target domain.Target,
	opts driving.RunOptions,
	report *domain.RunReport,
	progress func(driving.Stage, bool, string, ...any),
) error {
	patcher, err := s.patchers.Get(target.Strategy)
	if err != nil {
		return err
	}

	// Fetch
	progress(driving.StageFetch, false, "Downloading %s", target.URL)
	doc, err := s.fetcher.Fetch(ctx, target.URL)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	report.SourceChars = doc.Len()
	progress(driving.StageFetch, false, "Downloaded %d characters", report.SourceChars)

	// Verify size
	if err := s.verifier.CheckSize(doc, target.MinSize); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	logger.Debug("%s: size check passed (min %d)", target.Name, target.MinSize)

	// Patch
	patched, err := patcher.Patch(doc, target)
	if err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	report.Applied = patched.Applied
	report.Degraded = patched.Degraded
	if patched.Degraded {
		progress(driving.StagePatch, true, "Primary pattern not found, used fallback (%s)", joinRules(patched.Applied))
	} else {
		progress(driving.StagePatch, false, "Patched (%s)", joinRules(patched.Applied))
	}

	// Verify residuals. Healing works on the raw text; a patcher that only
	// reports counts markers in code.
	if patcher.Capabilities().SelfHealing {
		if n := s.verifier.Heal(patched); n > 0 {
			report.Residuals = n
			report.Applied = patched.Applied
			report.Healed = true
			progress(driving.StageHeal, true, "Output still contained %d %q marker(s), removed them", n, ResidualMarker)
		}
	} else if n := s.verifier.CodeResiduals(patched.Content); n > 0 {
		report.Residuals = n
		progress(driving.StageVerify, true, "Output contains %d %q marker(s) in code", n, ResidualMarker)
	}

	// Emit
	if opts.DryRun {
		report.OutputBytes = int64(len(patched.Content))
		progress(driving.StageEmit, false, "Dry run, %s not written (%d bytes)", target.Output, report.OutputBytes)
		return nil
	}
	written, err := s.emitter.Emit(ctx, &domain.OutputArtifact{Path: target.Output, Document: patched})
	if err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	report.OutputBytes = written
	progress(driving.StageEmit, false, "Wrote %s (%d bytes)", target.Output, written)

	return nil
}

// progressFor adapts a ProgressFunc into a printf-style helper that also
// mirrors every message to the verbose log.
func progressFor(name string, fn driving.ProgressFunc) func(driving.Stage, bool, string, ...any) {
	return func(stage driving.Stage, warning bool, format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		if warning {
			logger.Warn("%s [%s] %s", name, stage, msg)
		} else {
			logger.Info("%s [%s] %s", name, stage, msg)
		}
		if fn != nil {
			fn(driving.ProgressEvent{Target: name, Stage: stage, Warning: warning, Message: msg})
		}
	}
}

func joinRules(rules []string) string {
	if len(rules) == 0 {
		return "no rules"
	}
	return strings.Join(rules, ", ")
}
