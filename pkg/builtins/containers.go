package builtins

import (
	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/eval"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// registerContainers wires the container operators: RUN/DO pass every
// child result through unchanged, MUTE runs the same children but emits
// nothing, LAST keeps only the final child's result, EXPAND flattens one
// level of list-valued children, and COLLAPSE bundles everything into a
// single List.
func registerContainers(e *eval.Evaluator) {
	runHandler := func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		return eval.Result{Kind: eval.KindValue, Values: eval.All(accum)}
	}
	e.RegisterBuiltinOperator("RUN", runHandler)
	e.RegisterBuiltinOperator("DO", runHandler)

	e.RegisterBuiltinOperator("MUTE", func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		return eval.Result{Kind: eval.KindValue}
	})

	e.RegisterBuiltinOperator("LAST", func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		if len(accum) == 0 {
			return eval.Result{Kind: eval.KindValue}
		}
		return eval.Result{Kind: eval.KindValue, Values: accum[len(accum)-1].Values}
	})

	e.RegisterBuiltinOperator("EXPAND", func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		var out []values.Value
		for _, v := range eval.All(accum) {
			if v.Type() == values.TypeList {
				out = append(out, v.AsList()...)
			} else {
				out = append(out, v)
			}
		}
		return eval.Result{Kind: eval.KindValue, Values: out}
	})

	e.RegisterBuiltinOperator("COLLAPSE", func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		return eval.ValueResult(values.NewList(eval.All(accum)))
	})
}
