package eval

import (
	"fmt"
	"strings"

	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// OperatorHandler implements a standard operator's run(scope, node,
// child-results) → Result contract.
type OperatorHandler func(e *Evaluator, sc *scope.Scope, node ast.Node, children []Emission) Result

// SpecialHandler implements a special operator's run-time half; Prepare
// lives in pkg/parser and has already sorted the node's children into the
// public/Hidden split this handler relies on.
type SpecialHandler func(e *Evaluator, sc *scope.Scope, node *ast.SpecialOperator, children []Emission) Result

// Evaluator owns the operator registries, the root scope, and the clock
// WAIT suspends on. One instance is meant to live for the process: register
// built-ins, then host operators, then run the first eval.
type Evaluator struct {
	Root  *scope.Scope
	clock Clock

	operators        map[string]OperatorHandler
	specialOperators map[string]SpecialHandler
}

// NewEvaluator creates an evaluator with the seven built-in special
// operators registered and an empty standard-operator table; callers
// still need to register the ~40 standard operators (pkg/builtins) before
// the first eval, per the construction-order note above. A nil clock
// defaults to the real wall clock.
func NewEvaluator(clock Clock) *Evaluator {
	if clock == nil {
		clock = RealClock{}
	}
	e := &Evaluator{
		Root:             scope.NewRoot(),
		clock:            clock,
		operators:        make(map[string]OperatorHandler),
		specialOperators: make(map[string]SpecialHandler),
	}
	e.registerControlFlow()
	return e
}

// RegisterOperator adds or overrides a standard operator. Names beginning
// with "LOSP:" and names matching a special operator are rejected — those
// are the built-ins'/pkg/builtins' own namespace.
func (e *Evaluator) RegisterOperator(name string, h OperatorHandler) error {
	if strings.HasPrefix(name, "LOSP:") {
		return fmt.Errorf("losp: operator names beginning with LOSP: are reserved")
	}
	if _, ok := e.specialOperators[name]; ok {
		return fmt.Errorf("losp: %q is a special operator and cannot be overridden", name)
	}
	e.operators[name] = h
	return nil
}

// RegisterBuiltinOperator is RegisterOperator without the LOSP: guard, for
// pkg/builtins' own startup registration (it legitimately owns names like
// "LOSP:TEST:DBLPUSH"). Host code should use RegisterOperator instead.
func (e *Evaluator) RegisterBuiltinOperator(name string, h OperatorHandler) {
	e.operators[name] = h
}

// RegisterSpecialOperator adds a host-defined special operator's run
// handler; pkg/parser's hostPrepare map must carry a matching Prepare hook
// under the same name for the node to ever reach here with Hidden children
// populated. The name must start with "$" and be at least two characters;
// the seven built-in names are permanently reserved.
func (e *Evaluator) RegisterSpecialOperator(name string, h SpecialHandler) error {
	if len(name) < 2 || name[0] != '$' {
		return fmt.Errorf("losp: host special operators must start with '$' and be at least 2 characters")
	}
	if _, ok := e.specialOperators[name]; ok {
		return fmt.Errorf("losp: special operator %q is already registered", name)
	}
	e.specialOperators[name] = h
	return nil
}

func (e *Evaluator) registerBuiltinSpecialOperator(name string, h SpecialHandler) {
	e.specialOperators[name] = h
}

// TryGetOperator and TryGetSpecialOperator are the registry lookup surface.
func (e *Evaluator) TryGetOperator(name string) (OperatorHandler, bool) {
	h, ok := e.operators[name]
	return h, ok
}

func (e *Evaluator) TryGetSpecialOperator(name string) (SpecialHandler, bool) {
	h, ok := e.specialOperators[name]
	return h, ok
}

// SetGlobal and TryGetGlobal implement the root scope's process-wide
// bindings table.
func (e *Evaluator) SetGlobal(name string, v values.Value) {
	e.Root.SetLocal(name, v)
}

func (e *Evaluator) TryGetGlobal(name string) (values.Value, bool) {
	return e.Root.Get(name)
}

// Eval evaluates node under the root scope. If the result is not yet
// available synchronously, it returns a KindAsync result carrying a
// lazily-created top-level proxy the caller subscribes to via
// OnCompleted.
func (e *Evaluator) Eval(node ast.Node) Result {
	return e.EvalIn(node, e.Root)
}

// EvalIn evaluates node under an explicit scope; Eval calls it with the
// root scope. (Call builds its own frame stack for a lambda body.)
func (e *Evaluator) EvalIn(node ast.Node, sc *scope.Scope) Result {
	stack := []*Frame{e.newFrame(node, sc)}

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

// drive runs the frame stack until it produces a final Value/Error result
// or suspends on an Async. done is called exactly once, synchronously if
// possible; otherwise it is called later, from whatever goroutine resolves
// the suspending AsyncProxy (the host clock's timer goroutine, for WAIT).
//
// A Push result replaces the current top frame in place, at whatever depth
// it sits, rather than popping it first: the frame already ran its
// OnComplete (that is what produced the Push), so it must never run again.
// Once the replacement frame's own OnComplete eventually yields a
// Value/Error, that result is delivered exactly as the original frame's
// would have been — to the caller if the stack is now empty above it, or
// appended to whatever sits below it.
func (e *Evaluator) drive(stack []*Frame, done func(Result)) {
	for {
		top := stack[len(stack)-1]

		if top.Index < len(top.Children) {
			child := top.Children[top.Index]
			if filt, ok := child.(*ast.Filter); ok {
				prior := lastValue(top.Accum)
				// The chain's result replaces the value that fed it.
				if n := len(top.Accum); n > 0 && len(top.Accum[n-1].Values) > 0 {
					vals := top.Accum[n-1].Values
					top.Accum[n-1].Values = vals[:len(vals)-1]
					if len(top.Accum[n-1].Values) == 0 {
						top.Accum = top.Accum[:n-1]
					}
				}
				stack = append(stack, e.newFilterChainFrame(filt, top.Scope, prior))
				continue
			}
			stack = append(stack, e.newFrame(child, top.Scope))
			continue
		}

		res := top.OnComplete(e, top)

		switch res.Kind {
		case KindAsync:
			frozen := stack
			res.Proxy.OnCompleted(func(final Result) {
				e.resume(frozen, final, done)
			})
			return
		case KindPush:
			pushScope := res.PushScope
			if pushScope == nil {
				pushScope = top.Scope
			}
			stack[len(stack)-1] = newPushFrame(res.PushNodes, pushScope, res.OnComplete)
			continue
		}

		if len(stack) == 1 {
			done(res)
			return
		}
		if res.Kind == KindError {
			done(res)
			return
		}

		stack = stack[:len(stack)-1]
		parent := stack[len(stack)-1]
		parent.Accum = append(parent.Accum, Emission{Key: res.Key, Values: res.Values})
		parent.Index++
	}
}

// resume re-enters drive after an Async result's proxy has fired, treating
// final as though top.OnComplete had returned it synchronously. An async
// that itself resolves to another Async is a contract violation and is
// converted to an error.
func (e *Evaluator) resume(stack []*Frame, final Result, done func(Result)) {
	if final.Kind == KindAsync {
		done(ErrResult(values.NewAsyncContractError("async processes cannot emit another async result")))
		return
	}

	if final.Kind == KindPush {
		top := stack[len(stack)-1]
		pushScope := final.PushScope
		if pushScope == nil {
			pushScope = top.Scope
		}
		stack[len(stack)-1] = newPushFrame(final.PushNodes, pushScope, final.OnComplete)
		e.drive(stack, done)
		return
	}

	if len(stack) == 1 || final.Kind == KindError {
		done(final)
		return
	}

	stack = stack[:len(stack)-1]
	parent := stack[len(stack)-1]
	parent.Accum = append(parent.Accum, Emission{Key: final.Key, Values: final.Values})
	parent.Index++

	e.drive(stack, done)
}

func lastValue(accum []Emission) values.Value {
	if len(accum) == 0 {
		return values.Null
	}
	last := accum[len(accum)-1]
	if len(last.Values) == 0 {
		return values.Null
	}
	return last.Values[len(last.Values)-1]
}

// dispatch is the default FrameHook: once a frame's children are all
// evaluated, decide this node's own contribution by its kind. Synthetic
// Push frames (Node == nil) never reach here; they carry their own
// OnComplete.
func dispatch(e *Evaluator, f *Frame) Result {
	switch n := f.Node.(type) {
	case *ast.Literal:
		return evalLiteral(n)
	case *ast.Identifier:
		return e.evalIdentifier(n, f.Scope)
	case *ast.List:
		return evalList(f.Accum)
	case *ast.ObjectLiteral:
		return evalObjectLiteral(n, f.Accum)
	case *ast.KeyValue:
		return evalKeyValue(n, f.Accum)
	case *ast.Function:
		return evalFunction(n)
	case *ast.Operator:
		return e.evalOperator(n, f.Scope, f.Accum)
	case *ast.SpecialOperator:
		return e.evalSpecialOperator(n, f.Scope, f.Accum)
	default:
		return ErrResult(values.NewInternalError(fmt.Sprintf("unhandled node kind %s", f.Node.ASTKind())))
	}
}
