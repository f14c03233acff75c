package builder

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/taskgridgo/internal/hcl_adapter"
	"github.com/vk/taskgridgo/scheduler"
)

// evalFuncs is the function table available to literal argument
// expressions. Task results are not: the argument model is strictly
// literal-or-reference, so functions here can only combine constants.
var evalFuncs = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"pow":    stdlib.PowFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"format": stdlib.FormatFunc,
	"strlen": stdlib.StrlenFunc,
	"upper":  stdlib.UpperFunc,
	"lower":  stdlib.LowerFunc,
}

// translateArg classifies one argument expression and produces the value
// handed to scheduler.Add: either a typed task reference or an evaluated
// literal coerced to the builtin's parameter type. Task names resolve
// through lookupID so references can see ids staged for the current batch.
func (b *Builder) translateArg(expr hcl.Expression, param reflect.Type, lookupID func(string) (scheduler.TaskID, bool)) (any, error) {
	// A bare task.<name> traversal is a dependency reference.
	if name, ok := parseTaskTraversal(expr); ok {
		id, known := lookupID(name)
		if !known {
			return nil, fmt.Errorf("references unknown task %q", name)
		}
		return refForParam(id, param)
	}

	// Anything else must be a pure literal expression. A task reference
	// buried inside a larger expression would need the referenced result
	// at build time, which the literal-or-reference model rules out.
	for _, traversal := range expr.Variables() {
		if traversal.RootName() == "task" {
			return nil, fmt.Errorf("task references cannot be nested inside expressions; pass the reference as a whole argument")
		}
		return nil, fmt.Errorf("unknown variable %q in argument expression", traversal.RootName())
	}

	val, diags := expr.Value(&hcl.EvalContext{Functions: evalFuncs})
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate argument: %w", diags)
	}

	return coerceLiteral(val, param)
}

// parseTaskTraversal reports whether expr is a bare task.<name> reference
// and extracts the name.
func parseTaskTraversal(expr hcl.Expression) (string, bool) {
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() {
		return "", false
	}
	if len(traversal) != 2 || traversal.RootName() != "task" {
		return "", false
	}
	attr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return "", false
	}
	return attr.Name, true
}

// coerceLiteral converts an evaluated cty value into a Go value
// assignable to the builtin's parameter. The closed set of parameter
// types mirrors refForParam.
func coerceLiteral(val cty.Value, param reflect.Type) (any, error) {
	switch param.Kind() {
	case reflect.Float64:
		var f float64
		if err := fromCty(val, cty.Number, &f); err != nil {
			return nil, err
		}
		return f, nil
	case reflect.Int:
		var n int
		if err := fromCty(val, cty.Number, &n); err != nil {
			return nil, err
		}
		return n, nil
	case reflect.String:
		var s string
		if err := fromCty(val, cty.String, &s); err != nil {
			return nil, err
		}
		return s, nil
	case reflect.Bool:
		var v bool
		if err := fromCty(val, cty.Bool, &v); err != nil {
			return nil, err
		}
		return v, nil
	case reflect.Interface:
		if param.NumMethod() == 0 {
			return hcl_adapter.CtyToNative(val)
		}
	}
	return nil, fmt.Errorf("builtin parameter type %s cannot take a literal argument", param)
}

// fromCty converts val to the wanted cty type and decodes it into out.
func fromCty(val cty.Value, want cty.Type, out any) error {
	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("cannot use %s value where %s is required: %w",
			val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, out)
}
