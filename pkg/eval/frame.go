package eval

import (
	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/scope"
)

// Frame is one entry on the evaluator's explicit stack: the node being
// evaluated (nil for a synthetic Push-created frame), the children left to
// run, the accumulator those children feed, the scope they run under, and
// the hook that turns the finished accumulator into this position's own
// Result.
type Frame struct {
	Node       ast.Node
	Children   []ast.Node
	Index      int
	Accum      []Emission
	Scope      *scope.Scope
	OnComplete FrameHook
}

// childrenOf reports the nodes a frame must evaluate before dispatching.
// A Function's body is latent and never walked here; it only runs inside
// a lambda-call frame.
func childrenOf(node ast.Node) []ast.Node {
	if _, ok := node.(*ast.Function); ok {
		return nil
	}
	cs := node.Children()
	if cs == nil {
		return nil
	}
	return cs.All()
}

func (e *Evaluator) newFrame(node ast.Node, sc *scope.Scope) *Frame {
	return &Frame{
		Node:       node,
		Children:   childrenOf(node),
		Scope:      sc,
		OnComplete: dispatch,
	}
}

func newPushFrame(nodes []ast.Node, sc *scope.Scope, onComplete FrameHook) *Frame {
	return &Frame{
		Children:   nodes,
		Scope:      sc,
		OnComplete: onComplete,
	}
}
