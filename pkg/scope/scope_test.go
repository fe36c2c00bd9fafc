package scope

import (
	"testing"

	"github.com/lemonberrylabs/losp/pkg/values"
)

func TestLookupWalksToRoot(t *testing.T) {
	root := NewRoot()
	root.SetLocal("x", values.NewInt(1))
	child := root.NewChild()
	grandchild := child.NewChild()

	v, ok := grandchild.Get("x")
	if !ok || v.AsInt() != 1 {
		t.Fatalf("expected lookup to find 'x' in root, got %v ok=%v", v, ok)
	}
}

func TestSetWritesIntoInnermostHolder(t *testing.T) {
	root := NewRoot()
	root.SetLocal("x", values.NewInt(1))
	child := root.NewChild()

	child.Set("x", values.NewInt(2))

	if v, _ := root.Get("x"); v.AsInt() != 2 {
		t.Fatalf("expected Set to rewrite the root's binding, got %v", v)
	}
	if _, ok := child.vars["x"]; ok {
		t.Fatalf("expected Set to not shadow-create a new local binding")
	}
}

func TestSetCreatesLocalWhenUnbound(t *testing.T) {
	root := NewRoot()
	child := root.NewChild()

	child.Set("y", values.NewInt(5))

	if _, ok := root.Get("y"); ok {
		t.Fatalf("unbound Set should not leak into the parent")
	}
	if v, ok := child.Get("y"); !ok || v.AsInt() != 5 {
		t.Fatalf("expected child to hold the new binding locally")
	}
}

func TestScopeLexicalityAfterCallReturns(t *testing.T) {
	root := NewRoot()
	lambdaScope := root.NewChild()
	lambdaScope.SetLocal("local", values.NewInt(42))

	if root.Exists("local") {
		t.Fatalf("a lambda-local binding must not be visible to the caller")
	}
}
