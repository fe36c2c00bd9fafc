// Package eval drives Losp's stack-based evaluator: an explicit frame
// stack walks the AST depth-first, dispatching on node kind once a frame's
// children have all produced values, and suspending cooperatively when a
// handler returns an Async result instead of blocking a goroutine.
package eval

import (
	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// Kind tags which variant a Result holds.
type Kind int

const (
	KindValue Kind = iota
	KindError
	KindAsync
	KindPush
)

// Emission is what a completed frame contributes to its parent's
// accumulator: zero or more values, optionally keyed (KeyValue children
// contribute under their id; everything else is positional).
type Emission struct {
	Key    string
	Values []values.Value
}

// FrameHook dispatches a frame once all of its children have produced
// emissions, returning this position's contribution to its own parent.
type FrameHook func(e *Evaluator, f *Frame) Result

// Result is the outcome of dispatching one frame. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Result struct {
	Kind Kind

	// KindValue
	Key    string
	Values []values.Value

	// KindError
	Err *values.LospError

	// KindAsync — Proxy resolves to the eventual KindValue/KindError/
	// KindPush result once the suspended operation completes.
	Proxy *AsyncProxy

	// KindPush — evaluate PushNodes as a fresh frame's children before this
	// position's contribution to its parent is known. OnComplete runs once
	// those children finish, producing the position's real result. Scope
	// overrides the pushed frame's scope; nil inherits the pushing frame's
	// own scope. Lambda calls and control-flow bodies both resolve this way.
	PushNodes  []ast.Node
	PushScope  *scope.Scope
	OnComplete FrameHook
}

// ValueResult builds a single positional KindValue result.
func ValueResult(v values.Value) Result {
	return Result{Kind: KindValue, Values: []values.Value{v}}
}

// KeyedResult builds a single keyed KindValue result.
func KeyedResult(key string, v values.Value) Result {
	return Result{Kind: KindValue, Key: key, Values: []values.Value{v}}
}

// ErrResult wraps a LospError as a KindError result.
func ErrResult(err *values.LospError) Result {
	return Result{Kind: KindError, Err: err}
}

// PushResult requests that nodes be evaluated before this position's
// contribution is known.
func PushResult(nodes []ast.Node, sc *scope.Scope, onComplete FrameHook) Result {
	return Result{Kind: KindPush, PushNodes: nodes, PushScope: sc, OnComplete: onComplete}
}
