package experiment

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/specialistvlad/evmsim/internal/ctxlog"
	"github.com/specialistvlad/evmsim/internal/model"
	"github.com/specialistvlad/evmsim/internal/simulation"
	"golang.org/x/sync/errgroup"
)

// Config controls a batch.
type Config struct {
	// Runs is the number of independent runs, numbered from 1.
	Runs int
	// Seed is the batch seed. Run i uses the stream PCG(Seed, i).
	Seed uint64
	// Workers bounds how many runs execute at once. Zero means one.
	Workers int
	Params  simulation.Params
}

// Runner executes a batch against a read-only baseline project.
type Runner struct {
	base          *model.Project
	cfg           Config
	plannedFinish float64

	// newModel builds the model of one run; tests replace it to inject failures.
	newModel func(base *model.Project, params simulation.Params, rng *rand.Rand) (*simulation.Model, error)
}

// NewRunner validates the configuration and the baseline project. Every
// problem found is returned as a *ConfigurationError, joined.
func NewRunner(base *model.Project, cfg Config) (*Runner, error) {
	var errs []error
	if base == nil {
		errs = append(errs, &ConfigurationError{Field: "project", Reason: "no project loaded"})
	} else {
		if base.TaskCount() == 0 {
			errs = append(errs, &ConfigurationError{Field: "project.tasks", Reason: "project has no tasks"})
		}
		if base.ResourceCount() == 0 {
			errs = append(errs, &ConfigurationError{Field: "project.resources", Reason: "project has no resources"})
		}
	}
	var baseline *model.Baseline
	if base != nil {
		var err error
		if baseline, err = model.PlanBaseline(base); err != nil {
			errs = append(errs, &ConfigurationError{Field: "project", Reason: err.Error()})
		}
	}
	if cfg.Runs <= 0 {
		errs = append(errs, &ConfigurationError{Field: "runs", Reason: fmt.Sprintf("must be > 0, got %d", cfg.Runs)})
	}
	if cfg.Workers < 0 {
		errs = append(errs, &ConfigurationError{Field: "workers", Reason: fmt.Sprintf("must be >= 0, got %d", cfg.Workers)})
	}
	if err := cfg.Params.Validate(); err != nil {
		for _, e := range unwrapJoined(err) {
			var pe *simulation.ParamError
			if errors.As(e, &pe) {
				errs = append(errs, &ConfigurationError{Field: "parameters." + pe.Field, Reason: pe.Reason})
			} else {
				errs = append(errs, &ConfigurationError{Field: "parameters", Reason: e.Error()})
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	return &Runner{
		base:          base,
		cfg:           cfg,
		plannedFinish: baseline.PlannedFinish,
		newModel:      simulation.New,
	}, nil
}

func unwrapJoined(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// Run executes every run of the batch and returns the results ordered by run
// ID. Failed runs are recorded in Result.Failures and do not stop the batch.
// An error is returned only if ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Starting experiment.", "runs", r.cfg.Runs, "workers", r.cfg.Workers, "seed", r.cfg.Seed)
	start := time.Now()

	outcomes := make([]outcome, r.cfg.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i := range outcomes {
		runID := i + 1
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.runOne(gctx, runID)
			if err != nil {
				var runErr *RunError
				if !errors.As(err, &runErr) {
					return err
				}
				logger.Error("Run failed, skipping.", "runID", runID, "error", runErr.Err)
				outcomes[i] = outcome{err: runErr}
				return nil
			}
			outcomes[i] = outcome{run: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("experiment aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("experiment aborted: %w", err)
	}

	result := &Result{Requested: r.cfg.Runs, PlannedFinish: r.plannedFinish}
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			result.Failures = append(result.Failures, o.err)
		case o.run != nil:
			result.Runs = append(result.Runs, *o.run)
		}
	}

	logger.Info("Experiment finished.",
		"successful", result.Successful(),
		"failed", len(result.Failures),
		"duration", time.Since(start),
	)
	return result, nil
}

type outcome struct {
	run *RunResult
	err *RunError
}

// runOne executes a single run. Construction and stepping failures,
// including panics, are reported as *RunError; cancellation is not.
func (r *Runner) runOne(ctx context.Context, runID int) (res *RunResult, err error) {
	logger := ctxlog.FromContext(ctx).With("runID", runID)
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, &RunError{RunID: runID, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	logger.Debug("Run started.")
	rng := rand.New(rand.NewPCG(r.cfg.Seed, uint64(runID)))
	m, err := r.newModel(r.base, r.cfg.Params, rng)
	if err != nil {
		return nil, &RunError{RunID: runID, Err: err}
	}

	termination, err := m.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &RunError{RunID: runID, Err: err}
	}

	logger.Debug("Run finished.", "termination", termination, "steps", m.CurrentStep())
	return &RunResult{
		RunID:       runID,
		Termination: termination,
		Steps:       m.CurrentStep(),
		Snapshots:   m.Snapshots(),
	}, nil
}
