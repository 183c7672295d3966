// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/evmsim/internal/config"
	"github.com/specialistvlad/evmsim/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translateProject evaluates a merged project file. IDs are resolved first,
// since every other attribute may refer to resources and tasks by label.
func (l *Loader) translateProject(ctx context.Context, f *projectFile) (*config.ProjectDef, error) {
	logger := ctxlog.FromContext(ctx)
	def := &config.ProjectDef{}

	switch len(f.Projects) {
	case 0:
	case 1:
		def.Name = f.Projects[0].Name
	default:
		return nil, fmt.Errorf("expected at most one project block, found %d", len(f.Projects))
	}

	vars, err := evalVariables(f.Variables)
	if err != nil {
		return nil, err
	}
	varCtx := newEvalContext(vars, nil)

	resourceIDs, err := resolveIDs(ctx, varCtx, "resource", len(f.Resources), func(i int) (string, hcl.Expression) {
		return f.Resources[i].Label, f.Resources[i].ID
	})
	if err != nil {
		return nil, err
	}
	taskIDs, err := resolveIDs(ctx, varCtx, "task", len(f.Tasks), func(i int) (string, hcl.Expression) {
		return f.Tasks[i].Label, f.Tasks[i].ID
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolved block IDs.", "resources", len(resourceIDs), "tasks", len(taskIDs))

	evalCtx := newEvalContext(vars, map[string]map[string]cty.Value{
		"resource": scope(f.Resources, resourceIDs, func(b *resourceBlock) string { return b.Label }),
		"task":     scope(f.Tasks, taskIDs, func(b *taskBlock) string { return b.Label }),
	})

	for i, rb := range f.Resources {
		rd, err := translateResource(ctx, evalCtx, rb, resourceIDs[i])
		if err != nil {
			return nil, err
		}
		def.Resources = append(def.Resources, rd)
	}
	for i, tb := range f.Tasks {
		td, err := translateTask(ctx, evalCtx, tb, taskIDs[i])
		if err != nil {
			return nil, err
		}
		def.Tasks = append(def.Tasks, td)
	}
	return def, nil
}

// resolveIDs evaluates the id attribute of every block of a kind. A block
// without one gets its 1-based declaration position. Labels and resolved IDs
// must be unique, so an implicit ID may not collide with an explicit one.
func resolveIDs(ctx context.Context, evalCtx *hcl.EvalContext, kind string, n int, at func(int) (string, hcl.Expression)) ([]int, error) {
	ids := make([]int, n)
	seen := make(map[string]struct{}, n)
	owner := make(map[int]string, n)
	for i := range n {
		label, expr := at(i)
		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("duplicate %s block %q", kind, label)
		}
		seen[label] = struct{}{}

		id, ok, err := evalAs[int](ctx, expr, evalCtx, cty.Number, "id")
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", kind, label, err)
		}
		if !ok {
			id = i + 1
		}
		if other, dup := owner[id]; dup {
			return nil, fmt.Errorf("%s %q: id %d is already used by %s %q", kind, label, id, kind, other)
		}
		owner[id] = label
		ids[i] = id
	}
	return ids, nil
}

func scope[T any](blocks []T, ids []int, label func(T) string) map[string]cty.Value {
	out := make(map[string]cty.Value, len(blocks))
	for i, b := range blocks {
		out[label(b)] = cty.NumberIntVal(int64(ids[i]))
	}
	return out
}

func translateResource(ctx context.Context, evalCtx *hcl.EvalContext, rb *resourceBlock, id int) (*config.ResourceDef, error) {
	wrap := func(err error) error { return fmt.Errorf("resource %q: %w", rb.Label, err) }

	rd := &config.ResourceDef{ID: id, Name: rb.Label}
	if name, ok, err := evalAs[string](ctx, rb.Name, evalCtx, cty.String, "name"); err != nil {
		return nil, wrap(err)
	} else if ok {
		rd.Name = name
	}
	cost, _, err := evalAs[float64](ctx, rb.CostPerHour, evalCtx, cty.Number, "cost_per_hour")
	if err != nil {
		return nil, wrap(err)
	}
	if cost < 0 {
		return nil, wrap(fmt.Errorf("cost_per_hour must be >= 0, got %g", cost))
	}
	rd.CostPerHour = cost
	return rd, nil
}

func translateTask(ctx context.Context, evalCtx *hcl.EvalContext, tb *taskBlock, id int) (*config.TaskDef, error) {
	wrap := func(err error) error { return fmt.Errorf("task %q: %w", tb.Label, err) }

	td := &config.TaskDef{ID: id, Name: tb.Label}
	if name, ok, err := evalAs[string](ctx, tb.Name, evalCtx, cty.String, "name"); err != nil {
		return nil, wrap(err)
	} else if ok {
		td.Name = name
	}

	duration, _, err := evalAs[float64](ctx, tb.Duration, evalCtx, cty.Number, "duration")
	if err != nil {
		return nil, wrap(err)
	}
	cost, _, err := evalAs[float64](ctx, tb.Cost, evalCtx, cty.Number, "cost")
	if err != nil {
		return nil, wrap(err)
	}
	if duration < 0 || cost < 0 {
		return nil, wrap(fmt.Errorf("duration and cost must be >= 0, got %g and %g", duration, cost))
	}
	td.Duration, td.Cost = duration, cost

	resourceID, ok, err := evalAs[int](ctx, tb.Resource, evalCtx, cty.Number, "resource")
	if err != nil {
		return nil, wrap(err)
	}
	if ok {
		td.RequiredResource = &resourceID
	}

	if td.DependsOn, err = evalIntList(ctx, tb.DependsOn, evalCtx, "depends_on"); err != nil {
		return nil, wrap(err)
	}
	return td, nil
}

// translateExperiment applies the attributes set in the block on top of the
// default experiment.
func translateExperiment(name string, b *experimentBlock) (*config.Experiment, error) {
	exp := config.DefaultExperiment()
	exp.Name = name

	setIf(&exp.ProjectPath, b.Project)
	setIf(&exp.Runs, b.Runs)
	setIf(&exp.Seed, b.Seed)
	setIf(&exp.Workers, b.Workers)
	setIf(&exp.Output, b.Output)

	if p := b.Parameters; p != nil {
		setIf(&exp.Parameters.ErrorMargin, p.ErrorMargin)
		setIf(&exp.Parameters.ReassignmentFrequency, p.ReassignmentFrequency)
		setIf(&exp.Parameters.MaxSteps, p.MaxSteps)
		setIf(&exp.Parameters.ShuffleAgents, p.ShuffleAgents)
		setIf(&exp.Parameters.EfficiencyMin, p.EfficiencyMin)
		setIf(&exp.Parameters.EfficiencyMax, p.EfficiencyMax)
	}

	for key, rate := range b.CostOverrides {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("cost_overrides: key %q is not a resource id", key)
		}
		exp.CostOverrides[id] = rate
	}

	for i, rb := range b.Resources {
		rd := &config.ResourceDef{ID: i + 1, Name: rb.Label, CostPerHour: rb.CostPerHour}
		setIf(&rd.ID, rb.ID)
		setIf(&rd.Name, rb.Name)
		if rd.CostPerHour < 0 {
			return nil, fmt.Errorf("resource %q: cost_per_hour must be >= 0, got %g", rb.Label, rd.CostPerHour)
		}
		exp.Resources = append(exp.Resources, rd)
	}
	return exp, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
