package eval

import (
	"fmt"

	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// A filter chain is a singly-linked run of stages, acyclic by construction.
// Each stage's id is looked up in the same standard-operator registry
// Operator nodes use, and is invoked with the value produced immediately
// before the filter (the parent frame's last accumulated value) prepended
// as an implicit leading positional argument, ahead of the stage's own
// children. A stage's result becomes the next stage's implicit argument;
// the chain's tail result is this Filter node's own contribution to its
// parent, replacing — not appending to — the value that fed it.
// Documented in DESIGN.md.

// newFilterChainFrame starts evaluating a (possibly chained) Filter's own
// children; once they finish, applyFilterStage runs the whole chain.
func (e *Evaluator) newFilterChainFrame(head *ast.Filter, sc *scope.Scope, prior values.Value) *Frame {
	return &Frame{
		Node:     head,
		Children: childrenOf(head),
		Scope:    sc,
		OnComplete: func(e *Evaluator, f *Frame) Result {
			return e.applyFilterStage(head, sc, prior, f.Accum)
		},
	}
}

func (e *Evaluator) applyFilterStage(stage *ast.Filter, sc *scope.Scope, prior values.Value, stageAccum []Emission) Result {
	handler, ok := e.operators[stage.ID]
	if !ok {
		err := values.NewNameError(fmt.Sprintf("no filter operator named %s was found", stage.ID))
		err.Source = stage
		return ErrResult(err)
	}

	args := append([]Emission{{Values: []values.Value{prior}}}, stageAccum...)
	return e.continueChain(stage, sc, handler(e, sc, stage, args))
}

// continueChain runs stage.Next (if any) once stage's own result is known,
// threading every Result kind through correctly: a Value feeds the next
// stage; Push and Async are re-wrapped so the chain continuation still
// runs once they resolve; Error stops the chain and propagates.
func (e *Evaluator) continueChain(stage *ast.Filter, sc *scope.Scope, res Result) Result {
	if stage.Next == nil {
		return res
	}

	switch res.Kind {
	case KindValue:
		next := stage.Next
		nextPrior := values.Null
		if len(res.Values) > 0 {
			nextPrior = res.Values[len(res.Values)-1]
		}
		return PushResult(childrenOf(next), sc, func(e *Evaluator, f *Frame) Result {
			return e.applyFilterStage(next, sc, nextPrior, f.Accum)
		})

	case KindPush:
		inner := res.OnComplete
		pushScope := res.PushScope
		if pushScope == nil {
			pushScope = sc
		}
		return PushResult(res.PushNodes, pushScope, func(e *Evaluator, f *Frame) Result {
			return e.continueChain(stage, sc, inner(e, f))
		})

	case KindAsync:
		wrapper := NewAsyncProxy()
		res.Proxy.OnCompleted(func(final Result) {
			wrapper.Complete(e.continueChain(stage, sc, final))
		})
		return Result{Kind: KindAsync, Proxy: wrapper}

	default: // KindError
		return res
	}
}
