package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/evmsim/internal/config"
	"github.com/specialistvlad/evmsim/internal/ctxlog"
	"github.com/specialistvlad/evmsim/internal/experiment"
	"github.com/specialistvlad/evmsim/internal/model"
)

// LoadExperiment resolves the experiment definition (file, then command-line
// overrides) and loads the baseline project it names. Experiment resources
// are added to the project and cost overrides applied before it is returned.
func (a *App) LoadExperiment(ctx context.Context) (*config.Experiment, *model.Project, error) {
	logger := ctxlog.FromContext(ctx)

	exp := config.DefaultExperiment()
	if a.config.ExperimentPath != "" {
		logger.Debug("Loading experiment...", "path", a.config.ExperimentPath)
		loaded, err := a.experiments.LoadExperiment(ctx, a.config.ExperimentPath)
		if err != nil {
			return nil, nil, err
		}
		exp = loaded
	}
	a.config.Overrides.Apply(exp)

	if exp.ProjectPath == "" {
		return nil, nil, &experiment.ConfigurationError{Field: "project", Reason: "no project path configured"}
	}

	logger.Debug("Loading project...", "path", exp.ProjectPath)
	def, err := a.projects.LoadProject(ctx, exp.ProjectPath)
	if err != nil {
		return nil, nil, err
	}
	project, err := model.FromConfig(def)
	if err != nil {
		return nil, nil, config.Malformed(exp.ProjectPath, "%s", err.Error())
	}

	for _, rd := range exp.Resources {
		if err := project.AddResource(model.NewResource(rd.ID, rd.Name, rd.CostPerHour)); err != nil {
			return nil, nil, err
		}
	}
	for id, cost := range exp.CostOverrides {
		if err := project.OverrideCost(id, cost); err != nil {
			if errors.Is(err, model.ErrUnknownResource) {
				return nil, nil, &experiment.ConfigurationError{Field: "cost_overrides", Reason: fmt.Sprintf("resource %d does not exist", id)}
			}
			return nil, nil, err
		}
	}

	logger.Info("Project loaded.",
		"name", project.Name,
		"tasks", project.TaskCount(),
		"resources", project.ResourceCount(),
		"baseline_cost", project.BaselineCost(),
	)
	return exp, project, nil
}
