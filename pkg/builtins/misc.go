package builtins

import (
	"math"

	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/eval"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/token"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// registerMisc wires PI and the LOSP:TEST:DBLPUSH test hook that exercises
// the Push continuation mechanism twice in a row before emitting.
func registerMisc(e *eval.Evaluator) {
	e.RegisterBuiltinOperator("PI", func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		return eval.ValueResult(values.NewFloat(float32(math.Pi)))
	})

	e.RegisterBuiltinOperator("LOSP:TEST:DBLPUSH", func(e *eval.Evaluator, sc *scope.Scope, node ast.Node, accum []eval.Emission) eval.Result {
		return eval.PushResult([]ast.Node{intLiteral(1)}, sc, func(e *eval.Evaluator, f *eval.Frame) eval.Result {
			first := eval.All(f.Accum)
			return eval.PushResult([]ast.Node{intLiteral(2)}, sc, func(e *eval.Evaluator, f *eval.Frame) eval.Result {
				second := eval.All(f.Accum)
				sum := int32(0)
				for _, v := range first {
					sum += v.AsInt()
				}
				for _, v := range second {
					sum += v.AsInt()
				}
				return eval.ValueResult(values.NewInt(sum))
			})
		})
	})
}

func intLiteral(n int32) ast.Node {
	lit := ast.NewLiteral(token.Token{})
	lit.LitKind = ast.LiteralInt
	lit.IntVal = n
	return lit
}
