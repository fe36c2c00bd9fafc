package builtins

import (
	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/eval"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// registerTruthiness wires the `1 ~1 0 ~0` predicates plus `!`/`~!`, a
// strict/truthy negation of a single argument — the same tests "0" and
// "~0" already perform, registered under their more conventional names
// as well.
func registerTruthiness(e *eval.Evaluator) {
	e.RegisterBuiltinOperator("1", truthinessHandler(func(v values.Value) bool { return v.StrictlyTrue() }))
	e.RegisterBuiltinOperator("~1", truthinessHandler(func(v values.Value) bool { return v.Truthy() }))
	e.RegisterBuiltinOperator("0", truthinessHandler(func(v values.Value) bool { return !v.StrictlyTrue() }))
	e.RegisterBuiltinOperator("~0", truthinessHandler(func(v values.Value) bool { return !v.Truthy() }))
	e.RegisterBuiltinOperator("!", truthinessHandler(func(v values.Value) bool { return !v.StrictlyTrue() }))
	e.RegisterBuiltinOperator("~!", truthinessHandler(func(v values.Value) bool { return !v.Truthy() }))

	// "?" is the condition-marker operator a source writes as (? cond); FOR's
	// Prepare (pkg/parser/prepare.go) finds it by id and moves it into the
	// hidden set. At eval time it has no semantics beyond passing its child
	// values through.
	e.RegisterBuiltinOperator("?", func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		return eval.Result{Kind: eval.KindValue, Values: eval.All(accum)}
	})
}

func truthinessHandler(test func(values.Value) bool) eval.OperatorHandler {
	return func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		args := eval.Positional(accum)
		if len(args) != 1 {
			return eval.ErrResult(values.NewArityErrorExactly(node, 1, len(args)))
		}
		return eval.ValueResult(values.NewBool(test(args[0])))
	}
}
