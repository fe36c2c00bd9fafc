package builtins

import (
	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/eval"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// registerCollections wires ANY/ALL/IN/COUNT: ANY/ALL fold their positional
// arguments through either StrictlyTrue or Truthy, selected by a keyed `~`
// bool (truthy mode when set); IN checks boxed equality against a list;
// COUNT measures a list's length or a script object's key count.
func registerCollections(e *eval.Evaluator) {
	e.RegisterBuiltinOperator("ANY", quantifier(false))
	e.RegisterBuiltinOperator("ALL", quantifier(true))
	e.RegisterBuiltinOperator("IN", inHandler)
	e.RegisterBuiltinOperator("COUNT", countHandler)
}

func quantifier(requireAll bool) eval.OperatorHandler {
	return func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		args := eval.Positional(accum)
		if len(args) == 0 {
			return eval.ErrResult(values.NewTypeErrorMsg(node, "at least one argument is required"))
		}
		truthyMode := false
		if tilde, ok := eval.KeyedOne(accum, "~"); ok {
			truthyMode = tilde.Truthy()
		}
		test := func(v values.Value) bool {
			if truthyMode {
				return v.Truthy()
			}
			return v.StrictlyTrue()
		}
		for _, a := range args {
			ok := test(a)
			if requireAll && !ok {
				return eval.ValueResult(values.NewBool(false))
			}
			if !requireAll && ok {
				return eval.ValueResult(values.NewBool(true))
			}
		}
		return eval.ValueResult(values.NewBool(requireAll))
	}
}

func inHandler(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
	args := eval.Positional(accum)
	if len(args) != 2 {
		return eval.ErrResult(values.NewArityErrorExactly(node, 2, len(args)))
	}
	list, needle := args[0], args[1]
	if list.Type() != values.TypeList {
		return eval.ErrResult(values.NewTypeError(node, 0, "list", list.Type().String()))
	}
	for _, item := range list.AsList() {
		if item.Equal(needle) {
			return eval.ValueResult(values.NewBool(true))
		}
	}
	return eval.ValueResult(values.NewBool(false))
}

func countHandler(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
	args := eval.Positional(accum)
	if len(args) != 1 {
		return eval.ErrResult(values.NewArityErrorExactly(node, 1, len(args)))
	}
	switch args[0].Type() {
	case values.TypeList:
		return eval.ValueResult(values.NewInt(int32(len(args[0].AsList()))))
	case values.TypeScriptable:
		return eval.ValueResult(values.NewInt(int32(len(args[0].AsScriptable().Keys()))))
	default:
		return eval.ErrResult(values.NewTypeError(node, 0, "list or scriptable", args[0].Type().String()))
	}
}
