package eval

import (
	"time"

	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// registerControlFlow wires the seven built-in special operators' run
// handlers, matching pkg/parser/prepare.go's Prepare hooks one for one:
// one function per construct, reading SpecialOperator.Hidden for the
// children Prepare already sorted out of the public collection.
func (e *Evaluator) registerControlFlow() {
	e.registerBuiltinSpecialOperator("IF", ifRun)
	e.registerBuiltinSpecialOperator("FOR", forRun)
	e.registerBuiltinSpecialOperator("FORI", foriRun)
	e.registerBuiltinSpecialOperator("=", assignRun)
	e.registerBuiltinSpecialOperator("++", incDecRun)
	e.registerBuiltinSpecialOperator("--", incDecRun)
	e.registerBuiltinSpecialOperator("WAIT", waitRun)
}

func firstOf(accum []Emission) values.Value {
	if len(accum) == 0 || len(accum[0].Values) == 0 {
		return values.Null
	}
	return accum[0].Values[0]
}

// ifRun runs with cond already evaluated as the single public child; the
// *first* value governs even if cond emitted several.
func ifRun(e *Evaluator, sc *scope.Scope, n *ast.SpecialOperator, accum []Emission) Result {
	cond := firstOf(accum)
	if cond.StrictlyTrue() {
		return PushResult([]ast.Node{n.Hidden.At(0)}, sc, bodyOnComplete)
	}
	if n.Hidden.Len() > 1 {
		return PushResult([]ast.Node{n.Hidden.At(1)}, sc, bodyOnComplete)
	}
	return Result{Kind: KindValue}
}

// forRun implements the FOR(( ? cond) {do body}) loop: re-push the
// condition, check it, push the body, repeat until the condition is not
// strictly true. Emits nothing; the loop's effect is its side effects on
// scope.
func forRun(e *Evaluator, sc *scope.Scope, n *ast.SpecialOperator, accum []Emission) Result {
	cond := n.Hidden.At(0)
	body := n.Hidden.At(1)
	return forStep(sc, cond, body)
}

func forStep(sc *scope.Scope, cond, body ast.Node) Result {
	return PushResult([]ast.Node{cond}, sc, func(e *Evaluator, f *Frame) Result {
		if !firstOf(f.Accum).StrictlyTrue() {
			return Result{Kind: KindValue}
		}
		return PushResult([]ast.Node{body}, sc, func(e *Evaluator, f *Frame) Result {
			return forStep(sc, cond, body)
		})
	})
}

// foriRun implements FORI: idx is bound directly into sc (unlike a lambda
// call, FORI does not introduce a child scope), stepped while idx < before,
// collecting every iteration's body results; the collected values are
// emitted only if "emit" was strictly true.
func foriRun(e *Evaluator, sc *scope.Scope, n *ast.SpecialOperator, accum []Emission) Result {
	idx := n.Hidden.At(0).(*ast.Identifier)
	body := n.Hidden.At(1)

	from, ok := KeyedOne(accum, "from")
	if !ok {
		err := values.NewTypeErrorMsg(n, "FORI requires a 'from' value")
		return ErrResult(err)
	}
	before, ok := KeyedOne(accum, "before")
	if !ok {
		err := values.NewTypeErrorMsg(n, "FORI requires a 'before' value")
		return ErrResult(err)
	}
	emitVal, _ := KeyedOne(accum, "emit")
	emit := emitVal.StrictlyTrue()

	beforeN, ok := before.AsNumber()
	if !ok {
		return ErrResult(values.NewTypeErrorMsg(n, "FORI's 'before' must be numeric"))
	}

	sc.SetLocal(idx.Name, from)
	return foriStep(sc, idx.Name, beforeN, body, emit, nil)
}

func foriStep(sc *scope.Scope, idxName string, before float64, body ast.Node, emit bool, collected []values.Value) Result {
	idxVal, _ := sc.Get(idxName)
	n, ok := idxVal.AsNumber()
	if !ok || !(n < before) {
		if emit {
			return Result{Kind: KindValue, Values: collected}
		}
		return Result{Kind: KindValue}
	}

	return PushResult([]ast.Node{body}, sc, func(e *Evaluator, f *Frame) Result {
		collected = append(collected, All(f.Accum)...)
		sc.Set(idxName, incrementNumber(idxVal))
		return foriStep(sc, idxName, before, body, emit, collected)
	})
}

func incrementNumber(v values.Value) values.Value {
	if v.Type() == values.TypeFloat {
		return values.NewFloat(v.AsFloat() + 1)
	}
	return values.NewInt(v.AsInt() + 1)
}

// assignRun implements =(id expr): expr is already evaluated as the sole
// public child; store it under id and emit the same value.
func assignRun(e *Evaluator, sc *scope.Scope, n *ast.SpecialOperator, accum []Emission) Result {
	id := n.Hidden.At(0).(*ast.Identifier)
	v := bundle(firstEmissionValues(accum))
	sc.Set(id.Name, v)
	return ValueResult(v)
}

func firstEmissionValues(accum []Emission) []values.Value {
	if len(accum) == 0 {
		return nil
	}
	return accum[0].Values
}

// incDecRun implements ++ and --: an identifier operand (moved to Hidden
// by Prepare) is read, mutated, and written back; any other operand stays
// public, and the already-evaluated value is mutated and returned without
// touching any scope.
func incDecRun(e *Evaluator, sc *scope.Scope, n *ast.SpecialOperator, accum []Emission) Result {
	delta := int32(1)
	if n.ID == "--" {
		delta = -1
	}

	if n.Hidden.Len() == 1 {
		id := n.Hidden.At(0).(*ast.Identifier)
		cur, ok := sc.Get(id.Name)
		if !ok {
			err := values.NewNameError("no variable named " + id.Name + " was found")
			err.Source = id
			return ErrResult(err)
		}
		next, err := addDelta(n, cur, delta)
		if err != nil {
			return ErrResult(err)
		}
		sc.Set(id.Name, next)
		return ValueResult(next)
	}

	cur := bundle(firstEmissionValues(accum))
	next, err := addDelta(n, cur, delta)
	if err != nil {
		return ErrResult(err)
	}
	return ValueResult(next)
}

func addDelta(n *ast.SpecialOperator, v values.Value, delta int32) (values.Value, *values.LospError) {
	switch v.Type() {
	case values.TypeInt:
		return values.NewInt(v.AsInt() + delta), nil
	case values.TypeFloat:
		return values.NewFloat(v.AsFloat() + float32(delta)), nil
	default:
		err := values.NewTypeErrorMsg(n, "expected a numeric operand, got "+v.Type().String())
		return values.Null, err
	}
}

// waitRun implements WAIT(ms body): ms is the already-evaluated public
// child; zero pushes body immediately, otherwise the host clock schedules
// body to be pushed once ms milliseconds elapse, and an Async is returned
// meanwhile.
func waitRun(e *Evaluator, sc *scope.Scope, n *ast.SpecialOperator, accum []Emission) Result {
	ms := firstOf(accum)
	if ms.Type() != values.TypeInt || ms.AsInt() < 0 {
		return ErrResult(values.NewTypeErrorMsg(n, "WAIT requires a non-negative int delay"))
	}
	body := n.Hidden.At(0)

	if ms.AsInt() == 0 {
		return PushResult([]ast.Node{body}, sc, bodyOnComplete)
	}

	proxy := NewAsyncProxy()
	e.clock.AfterFunc(time.Duration(ms.AsInt())*time.Millisecond, func() {
		proxy.Complete(PushResult([]ast.Node{body}, sc, bodyOnComplete))
	})
	return Result{Kind: KindAsync, Proxy: proxy}
}
