package eval

import (
	"fmt"

	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// evalOperator resolves an Operator node's id: a scope binding whose value
// is a lambda always wins, ahead of every registry lookup; otherwise the
// four-step lookup order runs in order.
func (e *Evaluator) evalOperator(n *ast.Operator, sc *scope.Scope, accum []Emission) Result {
	if v, ok := sc.Get(n.ID); ok && v.Type() == values.TypeLambda {
		return lambdaPush(v.AsLambda(), sc, Positional(accum))
	}

	// Step 1: the built-in special-operators table. A name that matches
	// one here never went through Prepare (this is a plain Operator node,
	// not a SpecialOperator), so it has no Hidden children to run against
	// — reported as the taxonomy's special-op-misuse case rather than
	// silently treated as an unknown standard operator.
	if _, ok := e.specialOperators[n.ID]; ok {
		err := values.NewSpecialOpMisuseError(fmt.Sprintf("%s is a special operator and must be called as %s(...)", n.ID, n.ID))
		err.Source = n
		return ErrResult(err)
	}

	// Steps 2-4 (LOSP:-only, host-registered, built-in standard) collapse
	// into one map lookup: pkg/builtins registers first at construction
	// time and RegisterOperator refuses host writes under "LOSP:", so a
	// name in this table is either a built-in no host could have touched
	// (the LOSP: case) or the host's own override of a non-reserved name.
	handler, ok := e.operators[n.ID]
	if !ok {
		err := values.NewNameError(fmt.Sprintf("no operator named %s was found", n.ID))
		err.Source = n
		return ErrResult(err)
	}
	return handler(e, sc, n, accum)
}

// evalSpecialOperator dispatches a node that already went through Prepare.
func (e *Evaluator) evalSpecialOperator(n *ast.SpecialOperator, sc *scope.Scope, accum []Emission) Result {
	handler, ok := e.specialOperators[n.ID]
	if !ok {
		err := values.NewInternalError(fmt.Sprintf("no run handler registered for special operator %s", n.ID))
		err.Source = n
		return ErrResult(err)
	}
	return handler(e, sc, n, accum)
}
