package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/evmsim/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional hcl.Expression fields with
// zero-width placeholder expressions, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}

	// A real attribute occupies bytes in the file; a placeholder has a
	// zero-width range.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// functions are the functions available in every expression.
var functions = map[string]function.Function{
	"abs":   stdlib.AbsoluteFunc,
	"ceil":  stdlib.CeilFunc,
	"floor": stdlib.FloorFunc,
	"max":   stdlib.MaxFunc,
	"min":   stdlib.MinFunc,
}

// newEvalContext builds the evaluation context for a file: variables are
// exposed under "var" and the given reference scopes ("resource", "task")
// map block labels to IDs.
func newEvalContext(vars map[string]cty.Value, scopes map[string]map[string]cty.Value) *hcl.EvalContext {
	variables := map[string]cty.Value{
		"var": objectOrEmpty(vars),
	}
	for name, scope := range scopes {
		variables[name] = objectOrEmpty(scope)
	}
	return &hcl.EvalContext{
		Variables: variables,
		Functions: functions,
	}
}

func objectOrEmpty(m map[string]cty.Value) cty.Value {
	if len(m) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(m)
}

// evalVariables evaluates the defaults of all variable blocks. Defaults may
// only use functions, not other variables.
func evalVariables(blocks []*variableBlock) (map[string]cty.Value, error) {
	vars := make(map[string]cty.Value, len(blocks))
	evalCtx := newEvalContext(nil, nil)
	for _, v := range blocks {
		if _, exists := vars[v.Name]; exists {
			return nil, fmt.Errorf("duplicate variable %q", v.Name)
		}
		val := cty.NullVal(cty.DynamicPseudoType)
		if v.Default != nil {
			var diags hcl.Diagnostics
			val, diags = v.Default.Value(evalCtx)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid default for variable %q: %w", v.Name, diags)
			}
		}
		vars[v.Name] = val
	}
	return vars, nil
}

// evalAs evaluates expr, converts it to ty and decodes it into T. ok is
// false when the attribute was omitted.
func evalAs[T any](ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext, ty cty.Type, attr string) (v T, ok bool, err error) {
	if !isExprDefined(ctx, expr, attr) {
		return v, false, nil
	}
	val, err := convertValue(expr, evalCtx, ty, attr)
	if err != nil {
		return v, false, err
	}
	if err := gocty.FromCtyValue(val, &v); err != nil {
		return v, false, fmt.Errorf("%s: %w", attr, err)
	}
	return v, true, nil
}

// evalIntList evaluates expr into a list of whole numbers. A single number is
// accepted as a one-element list.
func evalIntList(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext, attr string) ([]int, error) {
	if !isExprDefined(ctx, expr, attr) {
		return nil, nil
	}
	raw, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %w", attr, diags)
	}
	if raw.IsNull() {
		return nil, nil
	}
	if raw.Type() == cty.Number {
		raw = cty.TupleVal([]cty.Value{raw})
	}
	val, err := convert.Convert(raw, cty.List(cty.Number))
	if err != nil {
		return nil, fmt.Errorf("%s: expected a list of task ids: %w", attr, err)
	}
	var out []int
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", attr, err)
	}
	return out, nil
}

func convertValue(expr hcl.Expression, evalCtx *hcl.EvalContext, ty cty.Type, attr string) (cty.Value, error) {
	raw, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("%s: %w", attr, diags)
	}
	if raw.IsNull() {
		return cty.NilVal, fmt.Errorf("%s: must not be null", attr)
	}
	val, err := convert.Convert(raw, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s: %w", attr, err)
	}
	return val, nil
}
