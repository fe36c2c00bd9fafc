package parser

import (
	"testing"

	"github.com/lemonberrylabs/losp/pkg/ast"
)

func TestParseLiteralsAndOperators(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Kind
	}{
		{"int literal", "5", ast.KindLiteral},
		{"string literal", `"hello"`, ast.KindLiteral},
		{"bare identifier", "x", ast.KindIdentifier},
		{"operator call", "(+ 5 6)", ast.KindOperator},
		{"list literal", `[5 (+ 5 6) "hello"]`, ast.KindList},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.src, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.ASTKind() != tt.want {
				t.Fatalf("expected kind %s, got %s", tt.want, n.ASTKind())
			}
		})
	}
}

func TestParseMultipleTopLevelValuesWrapsInList(t *testing.T) {
	n, err := Parse(`5 6`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lst, ok := n.(*ast.List)
	if !ok {
		t.Fatalf("expected an implicit top-level List, got %T", n)
	}
	if lst.Children().Len() != 2 {
		t.Fatalf("expected 2 children, got %d", lst.Children().Len())
	}
}

func TestParseSingleTopLevelValueUnwraps(t *testing.T) {
	n, err := Parse(`(+ 1 2)`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := n.(*ast.Operator); !ok {
		t.Fatalf("expected a single value to unwrap from the synthetic outer list, got %T", n)
	}
}

func TestParseOperatorAcceptsKeyedArgument(t *testing.T) {
	n, err := Parse(`(CONCAT "a" "b" {delim ","})`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	op := n.(*ast.Operator)
	if op.Children().Len() != 3 {
		t.Fatalf("expected 3 children (2 positional + 1 keyed), got %d", op.Children().Len())
	}
	if _, ok := op.Children().ByKey("delim"); !ok {
		t.Fatalf("expected a 'delim' keyed child to be resolvable")
	}
}

func TestParseUnterminatedOperatorIsSyntaxError(t *testing.T) {
	_, err := Parse(`(+ 1 2`, nil)
	if err == nil {
		t.Fatalf("expected an unbalanced '(' to be a fatal syntax error")
	}
}

func TestParseFunctionLiteral(t *testing.T) {
	n, err := Parse(`FN([name] (CONCAT "hi " name))`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := n.(*ast.Function)
	if !ok {
		t.Fatalf("expected a Function node, got %T", n)
	}
	if len(fn.Params) != 1 || fn.Params[0] != "name" {
		t.Fatalf("expected params [name], got %v", fn.Params)
	}
	if len(fn.BodyChildren()) != 1 {
		t.Fatalf("expected 1 body expression, got %d", len(fn.BodyChildren()))
	}
}

func TestParseObjectLiteralWithTagsAndEntries(t *testing.T) {
	n, err := Parse(`{{#cfg from 0 before 3}}`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := n.(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("expected an ObjectLiteral, got %T", n)
	}
	if len(obj.Tags) != 1 || obj.Tags[0] != "cfg" {
		t.Fatalf("expected leading tag 'cfg', got %v", obj.Tags)
	}
	if obj.Children().Len() != 2 {
		t.Fatalf("expected 2 flat key/value entries, got %d", obj.Children().Len())
	}
	from, ok := obj.Children().ByKey("from")
	if !ok {
		t.Fatalf("expected a 'from' entry to be resolvable by key")
	}
	if len(from.(*ast.KeyValue).Children().All()) != 1 {
		t.Fatalf("expected 'from' to carry exactly one value")
	}
}

func TestParseFilterChainLinksViaNext(t *testing.T) {
	n, err := Parse(`(LIST 1 2 3) #(map x) #(sum)`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lst := n.(*ast.List)
	if lst.Children().Len() != 2 {
		t.Fatalf("expected the operator and the first filter as siblings (chain collapses), got %d children", lst.Children().Len())
	}
	first, ok := lst.Children().At(1).(*ast.Filter)
	if !ok {
		t.Fatalf("expected the second child to be a Filter, got %T", lst.Children().At(1))
	}
	if first.Chained {
		t.Fatalf("the first filter in a chain should not itself be marked Chained")
	}
	if first.Next == nil || first.Next.ID != "sum" {
		t.Fatalf("expected the first filter's Next to chain to 'sum', got %v", first.Next)
	}
	if !first.Next.Chained {
		t.Fatalf("expected the second filter stage to be marked Chained")
	}
}

func TestParseStandaloneFilterAfterNonFilterSiblingDoesNotChain(t *testing.T) {
	// Even though the preceding token is ')', the preceding sibling (ID x)
	// is an Operator, not a Filter, so this must parse as two siblings.
	n, err := Parse(`(ID x) #(map y)`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lst := n.(*ast.List)
	if lst.Children().Len() != 2 {
		t.Fatalf("expected 2 siblings, got %d", lst.Children().Len())
	}
}

func TestIfPrepareSplitsThenElseIntoHidden(t *testing.T) {
	n, err := Parse(`IF((? true) "yes" "no")`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sop, ok := n.(*ast.SpecialOperator)
	if !ok {
		t.Fatalf("expected a SpecialOperator, got %T", n)
	}
	if sop.Children().Len() != 1 {
		t.Fatalf("expected IF's public children to hold only the condition, got %d", sop.Children().Len())
	}
	if sop.Hidden.Len() != 2 {
		t.Fatalf("expected IF's hidden children to hold then+else, got %d", sop.Hidden.Len())
	}
}

func TestIfPrepareWithoutElseHasSingleHidden(t *testing.T) {
	n, err := Parse(`IF((? true) "yes")`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sop := n.(*ast.SpecialOperator)
	if sop.Hidden.Len() != 1 {
		t.Fatalf("expected a single hidden 'then' child, got %d", sop.Hidden.Len())
	}
}

func TestAssignPrepareRequiresLeadingIdentifier(t *testing.T) {
	_, err := Parse(`=(var (* var 11))`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = Parse(`=(5 6)`, nil)
	if err == nil {
		t.Fatalf("expected = with a non-identifier first child to be rejected by Prepare")
	}
}

func TestForiPrepareRequiresFromBeforeIdx(t *testing.T) {
	_, err := Parse(`FORI({{from 0 before 3 idx i emit true}} i)`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = Parse(`FORI({{from 0 idx i}} i)`, nil)
	if err == nil {
		t.Fatalf("expected FORI without 'before' to be rejected by Prepare")
	}
}

func TestWaitPrepareSeparatesDelayAndBody(t *testing.T) {
	n, err := Parse(`WAIT(100 "done")`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sop := n.(*ast.SpecialOperator)
	if sop.Children().Len() != 1 {
		t.Fatalf("expected the delay to stay public, got %d public children", sop.Children().Len())
	}
	if sop.Hidden.Len() != 1 {
		t.Fatalf("expected the body to move to hidden, got %d", sop.Hidden.Len())
	}
}

func TestIncDecPrepareDistinguishesIdentifierFromExpression(t *testing.T) {
	n, err := Parse(`++(counter)`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sop := n.(*ast.SpecialOperator)
	if sop.Hidden.Len() != 1 || sop.Children().Len() != 0 {
		t.Fatalf("expected an identifier operand to move to hidden")
	}

	n, err = Parse(`++((+ 1 1))`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sop = n.(*ast.SpecialOperator)
	if sop.Hidden.Len() != 0 || sop.Children().Len() != 1 {
		t.Fatalf("expected a non-identifier operand to stay public")
	}
}

func TestHostSpecialOperatorUsesSuppliedPrepareHook(t *testing.T) {
	called := false
	hooks := map[string]PrepareFunc{
		"$MYOP": func(n *ast.SpecialOperator) (ast.Node, error) {
			called = true
			return n, nil
		},
	}
	if _, err := Parse(`$MYOP(1 2)`, hooks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected the host-supplied prepare hook to run")
	}
}

func TestUnregisteredSpecialOperatorIsSyntaxError(t *testing.T) {
	_, err := Parse(`$UNKNOWN(1)`, nil)
	if err == nil {
		t.Fatalf("expected an unregistered special operator to fail Prepare")
	}
}
