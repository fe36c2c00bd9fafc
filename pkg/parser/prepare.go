package parser

import (
	"fmt"

	"github.com/lemonberrylabs/losp/pkg/ast"
)

// ifPrepare rewrites IF's children: child0 becomes the public condition,
// child1 (then) and the optional child2 (else) move to Hidden.
func ifPrepare(n *ast.SpecialOperator) (ast.Node, error) {
	children := n.Children().All()
	if len(children) < 2 || len(children) > 3 {
		return nil, newSyntaxError(n.Tok(), "IF requires 2 or 3 children: condition, then, optional else")
	}

	if err := n.Hidden.Append(children[1]); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	if len(children) == 3 {
		if err := n.Hidden.Append(children[2]); err != nil {
			return nil, newSyntaxError(n.Tok(), err.Error())
		}
	}
	if err := n.ReplaceChildren(children[0]); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	return n, nil
}

// forPrepare implements FOR: a (? condition) operator child and a {do ...}
// KeyValue child move to Hidden as [condition, body]; the public collection
// is emptied.
func forPrepare(n *ast.SpecialOperator) (ast.Node, error) {
	var cond ast.Node
	var body *ast.KeyValue
	for _, c := range n.Children().All() {
		switch v := c.(type) {
		case *ast.KeyValue:
			if v.ID == "do" {
				body = v
			}
		case *ast.Operator:
			if v.ID == "?" {
				cond = v
			}
		}
	}
	if cond == nil {
		return nil, newSyntaxError(n.Tok(), "FOR requires a (? condition) child")
	}
	if body == nil {
		return nil, newSyntaxError(n.Tok(), "FOR requires a {do ...} child")
	}

	if err := n.Hidden.Append(cond); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	if err := n.Hidden.Append(body); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	if err := n.ReplaceChildren(); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	return n, nil
}

// foriPrepare implements FORI: child0 is an ObjectLiteral naming from,
// before, idx (an identifier) and optionally emit; idx moves to Hidden[0],
// the body (child1) to Hidden[1], and from/before/emit stay public.
func foriPrepare(n *ast.SpecialOperator) (ast.Node, error) {
	children := n.Children().All()
	if len(children) != 2 {
		return nil, newSyntaxError(n.Tok(), "FORI requires exactly 2 children: the loop spec object and the body")
	}
	spec, ok := children[0].(*ast.ObjectLiteral)
	if !ok {
		return nil, newSyntaxError(n.Tok(), "FORI's first child must be an object literal")
	}
	body := children[1]

	var idx *ast.Identifier
	var publicChildren []ast.Node
	haveFrom, haveBefore := false, false
	for _, c := range spec.Children().All() {
		kv, ok := c.(*ast.KeyValue)
		if !ok {
			continue
		}
		switch kv.ID {
		case "idx":
			kvChildren := kv.Children().All()
			id, ok := func() (*ast.Identifier, bool) {
				if len(kvChildren) != 1 {
					return nil, false
				}
				id, ok := kvChildren[0].(*ast.Identifier)
				return id, ok
			}()
			if !ok {
				return nil, newSyntaxError(n.Tok(), "FORI's idx must name exactly one identifier")
			}
			idx = id
		case "from", "before", "emit":
			publicChildren = append(publicChildren, kv)
			if kv.ID == "from" {
				haveFrom = true
			}
			if kv.ID == "before" {
				haveBefore = true
			}
		default:
			return nil, newSyntaxError(n.Tok(), fmt.Sprintf("FORI does not recognise key %q", kv.ID))
		}
	}
	if idx == nil {
		return nil, newSyntaxError(n.Tok(), "FORI requires an idx identifier")
	}
	if !haveFrom || !haveBefore {
		return nil, newSyntaxError(n.Tok(), "FORI requires both 'from' and 'before' keys")
	}

	if err := n.Hidden.Append(idx); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	if err := n.Hidden.Append(body); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	if err := n.ReplaceChildren(publicChildren...); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	return n, nil
}

// incDecPrepare implements ++ and --: an identifier operand moves to
// Hidden (read-mutate-write at eval time); any other single operand (an
// evaluated expression) stays public.
func incDecPrepare(n *ast.SpecialOperator) (ast.Node, error) {
	children := n.Children().All()
	if len(children) != 1 {
		return nil, newSyntaxError(n.Tok(), fmt.Sprintf("%s requires exactly one child", n.ID))
	}

	if id, ok := children[0].(*ast.Identifier); ok {
		if err := n.Hidden.Append(id); err != nil {
			return nil, newSyntaxError(n.Tok(), err.Error())
		}
		if err := n.ReplaceChildren(); err != nil {
			return nil, newSyntaxError(n.Tok(), err.Error())
		}
		return n, nil
	}
	if err := n.ReplaceChildren(children[0]); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	return n, nil
}

// assignPrepare implements =: the first child must be an identifier and
// moves to Hidden; the second (the value expression) stays public.
func assignPrepare(n *ast.SpecialOperator) (ast.Node, error) {
	children := n.Children().All()
	if len(children) != 2 {
		return nil, newSyntaxError(n.Tok(), "= requires exactly two children: an identifier and an expression")
	}
	id, ok := children[0].(*ast.Identifier)
	if !ok {
		return nil, newSyntaxError(n.Tok(), "= requires its first child to be an identifier")
	}

	if err := n.Hidden.Append(id); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	if err := n.ReplaceChildren(children[1]); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	return n, nil
}

// waitPrepare implements WAIT: the delay expression stays public, the body
// moves to Hidden so it is only evaluated once the delay completes.
func waitPrepare(n *ast.SpecialOperator) (ast.Node, error) {
	children := n.Children().All()
	if len(children) != 2 {
		return nil, newSyntaxError(n.Tok(), "WAIT requires exactly two children: a delay and a body")
	}

	if err := n.Hidden.Append(children[1]); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	if err := n.ReplaceChildren(children[0]); err != nil {
		return nil, newSyntaxError(n.Tok(), err.Error())
	}
	return n, nil
}
