package eval

import (
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// bindArgs creates lm's child scope and binds its first
// min(len(params), len(args)) parameters by name.
func bindArgs(lm *values.Lambda, caller *scope.Scope, args []values.Value) *scope.Scope {
	child := caller.NewChild()
	n := len(lm.Params)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		child.SetLocal(lm.Params[i], args[i])
	}
	return child
}

func bodyOnComplete(e *Evaluator, f *Frame) Result {
	return Result{Kind: KindValue, Values: All(f.Accum)}
}

// lambdaPush builds the Push result a lambda call resolves to: its body
// runs as a synthetic frame over the freshly bound child scope, and the
// accumulated body results become the call's multi-value result. Used by
// evalOperator so an Operator-node lambda invocation is driven by the
// already-running stack, rather than starting a second one.
func lambdaPush(lm *values.Lambda, caller *scope.Scope, args []values.Value) Result {
	return PushResult(lm.Body, bindArgs(lm, caller, args), bodyOnComplete)
}

// Call invokes lm directly: drives a fresh stack to completion (or to a
// pending Async), for hosts calling a lambda value rather than going
// through an Operator node.
func (e *Evaluator) Call(lm *values.Lambda, caller *scope.Scope, args []values.Value) Result {
	stack := []*Frame{newPushFrame(lm.Body, bindArgs(lm, caller, args), bodyOnComplete)}

	var topProxy *AsyncProxy
	var final Result
	settled := false

	e.drive(stack, func(r Result) {
		if topProxy != nil {
			topProxy.Complete(r)
			return
		}
		final = r
		settled = true
	})

	if settled {
		return final
	}
	topProxy = NewAsyncProxy()
	return Result{Kind: KindAsync, Proxy: topProxy}
}

// CallAsync is Call for callers that prefer a callback over subscribing to
// the returned Async's proxy themselves; it invokes done exactly once,
// synchronously if the call never suspends.
func (e *Evaluator) CallAsync(lm *values.Lambda, caller *scope.Scope, args []values.Value, done func(Result)) {
	res := e.Call(lm, caller, args)
	if res.Kind != KindAsync {
		done(res)
		return
	}
	res.Proxy.OnCompleted(done)
}
