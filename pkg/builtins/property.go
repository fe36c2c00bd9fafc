package builtins

import (
	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/eval"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// registerProperty wires property access (`.`) and MERGE: chained
// Scriptable lookup, and a two-object union with the second object's keys
// overriding the first's.
func registerProperty(e *eval.Evaluator) {
	e.RegisterBuiltinOperator(".", propertyHandler)
	e.RegisterBuiltinOperator("MERGE", mergeHandler)
}

func propertyHandler(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
	args := eval.Positional(accum)
	if len(args) < 2 {
		return eval.ErrResult(values.NewArityErrorAtLeast(node, 2, len(args)))
	}
	if args[0].IsNull() || args[0].Type() != values.TypeScriptable {
		return eval.ErrResult(values.NewTypeErrorMsg(node, "intermediate value not a script object"))
	}
	cur := args[0].AsScriptable()
	var result values.Value
	for i, keyArg := range args[1:] {
		if keyArg.Type() != values.TypeString {
			return eval.ErrResult(values.NewTypeError(node, i+1, "string", keyArg.Type().String()))
		}
		v, ok := cur.Get(keyArg.AsString())
		if !ok {
			return eval.ErrResult(values.NewTypeErrorMsg(node, "property not found"))
		}
		result = v
		if i == len(args)-2 {
			break
		}
		if v.Type() != values.TypeScriptable {
			return eval.ErrResult(values.NewTypeErrorMsg(node, "intermediate value not a script object"))
		}
		cur = v.AsScriptable()
	}
	return eval.ValueResult(result)
}

func mergeHandler(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
	args := eval.Positional(accum)
	if len(args) != 2 {
		return eval.ErrResult(values.NewArityErrorExactly(node, 2, len(args)))
	}
	if args[0].Type() != values.TypeScriptable {
		return eval.ErrResult(values.NewTypeError(node, 0, "scriptable", args[0].Type().String()))
	}
	if args[1].Type() != values.TypeScriptable {
		return eval.ErrResult(values.NewTypeError(node, 1, "scriptable", args[1].Type().String()))
	}
	merged := values.NewObjectLiteral()
	for _, k := range args[0].AsScriptable().Keys() {
		if v, ok := args[0].AsScriptable().Get(k); ok {
			merged.Set(k, v)
		}
	}
	for _, k := range args[1].AsScriptable().Keys() {
		if v, ok := args[1].AsScriptable().Get(k); ok {
			merged.Set(k, v)
		}
	}
	return eval.ValueResult(values.NewScriptable(merged))
}
