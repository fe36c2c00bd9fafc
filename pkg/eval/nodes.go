package eval

import (
	"fmt"

	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/scope"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// evalLiteral converts a pre-parsed scalar into its runtime Value. Kept
// here rather than in pkg/ast so that pkg/values never has to import
// pkg/ast's Literal type (see ast.LiteralKind's doc comment).
func evalLiteral(n *ast.Literal) Result {
	switch n.LitKind {
	case ast.LiteralNull:
		return ValueResult(values.Null)
	case ast.LiteralInt:
		return ValueResult(values.NewInt(n.IntVal))
	case ast.LiteralFloat:
		return ValueResult(values.NewFloat(n.FloatVal))
	case ast.LiteralBool:
		return ValueResult(values.NewBool(n.BoolVal))
	case ast.LiteralString:
		return ValueResult(values.NewString(n.StrVal))
	default:
		return ErrResult(values.NewInternalError(fmt.Sprintf("unhandled literal kind %d", n.LitKind)))
	}
}

// evalIdentifier resolves a variable by name; a bare "," identifier is a
// stray-comma silent-emit path that real source is unlikely to produce but
// the evaluator must still handle.
func (e *Evaluator) evalIdentifier(n *ast.Identifier, sc *scope.Scope) Result {
	if n.Name == "," {
		return Result{Kind: KindValue}
	}
	v, ok := sc.Get(n.Name)
	if !ok {
		err := values.NewNameError(fmt.Sprintf("no variable named %s was found", n.Name))
		err.Source = n
		return ErrResult(err)
	}
	return ValueResult(v)
}

// evalList builds the single List value a List node emits from its
// children's flattened positional results.
func evalList(accum []Emission) Result {
	return ValueResult(values.NewList(All(accum)))
}

// evalObjectLiteral builds a script-object from an ObjectLiteral's keyed
// child results (each a KeyValue emission) plus its own tags.
func evalObjectLiteral(n *ast.ObjectLiteral, accum []Emission) Result {
	obj := values.NewObjectLiteral()
	obj.Tags = append(obj.Tags, n.Tags...)
	for _, e := range accum {
		if e.Key == "" || len(e.Values) == 0 {
			continue
		}
		obj.Set(e.Key, e.Values[0])
	}
	return ValueResult(values.NewScriptable(obj))
}

// evalKeyValue builds a KeyValue node's contribution: no children
// emits true; any keyed child builds a nested object; a single child
// passes its value through; multiple children bundle per-child into a
// list (a child that itself emitted more than one value is bundled as a
// nested List so its position stays distinguishable).
func evalKeyValue(n *ast.KeyValue, accum []Emission) Result {
	if len(accum) == 0 {
		return KeyedResult(n.ID, values.NewBool(true))
	}

	anyKeyed := false
	for _, e := range accum {
		if e.Key != "" {
			anyKeyed = true
			break
		}
	}
	if anyKeyed {
		obj := values.NewObjectLiteral()
		for _, e := range accum {
			if e.Key == "" || len(e.Values) == 0 {
				continue
			}
			obj.Set(e.Key, e.Values[0])
		}
		return KeyedResult(n.ID, values.NewScriptable(obj))
	}

	if len(accum) == 1 {
		return KeyedResult(n.ID, bundle(accum[0].Values))
	}

	parts := make([]values.Value, 0, len(accum))
	for _, e := range accum {
		if len(e.Values) == 0 {
			continue
		}
		parts = append(parts, bundle(e.Values))
	}
	return KeyedResult(n.ID, values.NewList(parts))
}

// bundle reduces a single child's emitted values to one value: pass
// through a lone value, or wrap several as a nested list.
func bundle(vs []values.Value) values.Value {
	if len(vs) == 1 {
		return vs[0]
	}
	return values.NewList(vs)
}

// evalFunction emits the lambda value a Function literal produces,
// capturing its parameter names and its (otherwise latent) body.
func evalFunction(n *ast.Function) Result {
	return ValueResult(values.NewLambda(&values.Lambda{
		Params: n.Params,
		Body:   n.BodyChildren(),
	}))
}
