package builtins

import (
	"math"

	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/eval"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// registerArithmetic wires the numeric operators: int accumulator that
// switches to float permanently on the first float operand, division by
// zero falling back to INT_MAX/+Inf instead of erroring, and `^` rounding
// its float result back to int when every operand was an int.
func registerArithmetic(e *eval.Evaluator) {
	e.RegisterBuiltinOperator("+", arithFold(0, func(acc, v float64) float64 { return acc + v }))
	e.RegisterBuiltinOperator("*", arithFold(1, func(acc, v float64) float64 { return acc * v }))
	e.RegisterBuiltinOperator("-", arithUnaryOrFold(func(v float64) float64 { return -v }, func(acc, v float64) float64 { return acc - v }))
	e.RegisterBuiltinOperator("/", arithDivLike(reciprocal, divide))
	e.RegisterBuiltinOperator("%", arithAtLeastOne(modulo))
	e.RegisterBuiltinOperator("^", arithPow)
}

// numericOperands extracts accum's positional arguments as float64s plus
// whether any of them was typed as a float (deciding the result's mode),
// erroring at the first non-numeric argument.
func numericOperands(node ast.Node, accum []eval.Emission) ([]float64, bool, *values.LospError) {
	args := eval.Positional(accum)
	nums := make([]float64, len(args))
	isFloat := false
	for i, a := range args {
		n, ok := a.AsNumber()
		if !ok {
			return nil, false, values.NewTypeError(node, i, "int or float", a.Type().String())
		}
		nums[i] = n
		if a.Type() == values.TypeFloat {
			isFloat = true
		}
	}
	return nums, isFloat, nil
}

// numericResult converts a float64 accumulator to the promoted Value,
// treating INT_MAX as the int-mode stand-in for an unrepresentable result
// (the division-by-zero fallback) rather than truncating +Inf into int32.
func numericResult(acc float64, isFloat bool) values.Value {
	if isFloat {
		return values.NewFloat(float32(acc))
	}
	if math.IsInf(acc, 0) {
		return values.NewInt(math.MaxInt32)
	}
	return values.NewInt(int32(acc))
}

func arithFold(identity float64, combine func(acc, v float64) float64) eval.OperatorHandler {
	return func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		nums, isFloat, err := numericOperands(node, accum)
		if err != nil {
			return eval.ErrResult(err)
		}
		acc := identity
		for _, n := range nums {
			acc = combine(acc, n)
		}
		return eval.ValueResult(numericResult(acc, isFloat))
	}
}

func arithAtLeastOne(combine func(acc, v float64) float64) eval.OperatorHandler {
	return func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		nums, isFloat, err := numericOperands(node, accum)
		if err != nil {
			return eval.ErrResult(err)
		}
		if len(nums) == 0 {
			return eval.ErrResult(values.NewArityErrorAtLeast(node, 1, 0))
		}
		acc := nums[0]
		for _, n := range nums[1:] {
			acc = combine(acc, n)
		}
		return eval.ValueResult(numericResult(acc, isFloat))
	}
}

// arithUnaryOrFold handles "-": a single operand negates; two or more fold
// left starting from the first.
func arithUnaryOrFold(unary func(v float64) float64, combine func(acc, v float64) float64) eval.OperatorHandler {
	return func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		nums, isFloat, err := numericOperands(node, accum)
		if err != nil {
			return eval.ErrResult(err)
		}
		if len(nums) == 0 {
			return eval.ErrResult(values.NewArityErrorAtLeast(node, 1, 0))
		}
		if len(nums) == 1 {
			return eval.ValueResult(numericResult(unary(nums[0]), isFloat))
		}
		acc := nums[0]
		for _, n := range nums[1:] {
			acc = combine(acc, n)
		}
		return eval.ValueResult(numericResult(acc, isFloat))
	}
}

// arithDivLike handles "/": a single operand takes its reciprocal; two or
// more fold left starting from the first. Division by zero is resolved
// per-step against the mode decided by operand types, not the intermediate
// float accumulator, so an all-int division by zero yields INT_MAX rather
// than a truncated +Inf.
func arithDivLike(unary func(v float64, isFloat bool) float64, combine func(acc, v float64, isFloat bool) float64) eval.OperatorHandler {
	return func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		nums, isFloat, err := numericOperands(node, accum)
		if err != nil {
			return eval.ErrResult(err)
		}
		if len(nums) == 0 {
			return eval.ErrResult(values.NewArityErrorAtLeast(node, 1, 0))
		}
		if len(nums) == 1 {
			return eval.ValueResult(numericResult(unary(nums[0], isFloat), isFloat))
		}
		acc := nums[0]
		for _, n := range nums[1:] {
			acc = combine(acc, n, isFloat)
		}
		return eval.ValueResult(numericResult(acc, isFloat))
	}
}

func reciprocal(v float64, isFloat bool) float64 { return divide(1, v, isFloat) }

func divide(acc, v float64, isFloat bool) float64 {
	if v == 0 {
		if isFloat {
			if acc >= 0 {
				return math.Inf(1)
			}
			return math.Inf(-1)
		}
		return math.Inf(1) // numericResult maps this to INT_MAX in int mode.
	}
	return acc / v
}

func modulo(acc, v float64) float64 {
	if v == 0 {
		return math.Inf(1)
	}
	return math.Mod(acc, v)
}

func arithPow(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
	nums, isFloat, err := numericOperands(node, accum)
	if err != nil {
		return eval.ErrResult(err)
	}
	if len(nums) == 0 {
		return eval.ErrResult(values.NewArityErrorAtLeast(node, 1, 0))
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		acc = math.Pow(acc, n)
	}
	if isFloat {
		return eval.ValueResult(values.NewFloat(float32(acc)))
	}
	return eval.ValueResult(values.NewInt(int32(math.Round(acc))))
}
