package builtins

import (
	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/eval"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// registerComparison wires the comparison operators: exactly two arguments,
// bool operands restricted to ==/!=, int/float promoted against each
// other, same-typed operands ordered by their own type, and a type error
// for anything else.
func registerComparison(e *eval.Evaluator) {
	e.RegisterBuiltinOperator("==", eqHandler(true))
	e.RegisterBuiltinOperator("!=", eqHandler(false))
	e.RegisterBuiltinOperator("<", orderHandler(func(c int) bool { return c < 0 }))
	e.RegisterBuiltinOperator("<=", orderHandler(func(c int) bool { return c <= 0 }))
	e.RegisterBuiltinOperator(">", orderHandler(func(c int) bool { return c > 0 }))
	e.RegisterBuiltinOperator(">=", orderHandler(func(c int) bool { return c >= 0 }))
}

func comparisonPair(node ast.Node, accum []eval.Emission) (values.Value, values.Value, *values.LospError) {
	args := eval.Positional(accum)
	if len(args) != 2 {
		return values.Null, values.Null, values.NewArityErrorExactly(node, 2, len(args))
	}
	return args[0], args[1], nil
}

func eqHandler(wantEqual bool) eval.OperatorHandler {
	return func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		a, b, err := comparisonPair(node, accum)
		if err != nil {
			return eval.ErrResult(err)
		}
		return eval.ValueResult(values.NewBool(a.Equal(b) == wantEqual))
	}
}

// orderHandler implements </<=/>/>=, sharing one three-way comparison that
// errors for bool operands (only ==/!= are valid there) and for any pair
// that shares no comparable ordering.
func orderHandler(test func(cmp int) bool) eval.OperatorHandler {
	return func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		a, b, err := comparisonPair(node, accum)
		if err != nil {
			return eval.ErrResult(err)
		}
		cmp, cerr := compareOrdered(node, a, b)
		if cerr != nil {
			return eval.ErrResult(cerr)
		}
		return eval.ValueResult(values.NewBool(test(cmp)))
	}
}

// compareOrdered returns -1/0/1, promoting int against float, ordering
// strings lexicographically, and rejecting bool and every cross-type pair
// that isn't an int/float mix.
func compareOrdered(node ast.Node, a, b values.Value) (int, *values.LospError) {
	an, aNum := a.AsNumber()
	bn, bNum := b.AsNumber()
	if aNum && bNum {
		switch {
		case an < bn:
			return -1, nil
		case an > bn:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if a.Type() == values.TypeString && b.Type() == values.TypeString {
		switch {
		case a.AsString() < b.AsString():
			return -1, nil
		case a.AsString() > b.AsString():
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, values.NewTypeErrorMsg(node, "values of type "+a.Type().String()+" and "+b.Type().String()+" are not orderable")
}
