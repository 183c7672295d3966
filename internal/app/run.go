package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/evmsim/internal/ctxlog"
	"github.com/specialistvlad/evmsim/internal/experiment"
	"github.com/specialistvlad/evmsim/internal/report"
	"github.com/specialistvlad/evmsim/internal/simulation"
)

// Run executes the main application logic: load, simulate every run, then
// write the CSV series and print the summary. Load and configuration errors
// abort before any run starts; failed runs only reduce the success count.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
		defer a.closeHealthcheckServer()
	}

	a.setPhase(phaseLoading)
	exp, project, err := a.LoadExperiment(ctx)
	if err != nil {
		return fmt.Errorf("failed to load experiment: %w", err)
	}

	runner, err := experiment.NewRunner(project, experiment.Config{
		Runs:    exp.Runs,
		Seed:    exp.Seed,
		Workers: exp.Workers,
		Params:  simulation.ParamsFromConfig(exp.Parameters),
	})
	if err != nil {
		return err
	}

	a.setPhase(phaseRunning)
	a.logger.Info("🚀 Starting simulation batch...", "experiment", exp.Name)
	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	a.setPhase(phaseDone)
	a.logger.Info("🏁 Simulation batch finished.", "successful", result.Successful(), "requested", result.Requested)

	reporters := report.NewMultiReporter(
		report.NewCSVReporter(exp.Output),
		report.NewConsoleReporter(a.outW),
	)
	if err := reporters.Report(ctx, result); err != nil {
		return fmt.Errorf("failed to report results: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
