package ast

import (
	"testing"

	"github.com/lemonberrylabs/losp/pkg/token"
)

func TestChildSetOrderAndKeyShadowing(t *testing.T) {
	set := NewChildSet(PolicyKVOnly)
	a := NewKeyValue(token.Token{}, "x")
	b := NewKeyValue(token.Token{}, "y")
	c := NewKeyValue(token.Token{}, "x") // duplicate key

	for _, kv := range []*KeyValue{a, b, c} {
		if err := set.Append(kv); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if set.Len() != 3 {
		t.Fatalf("expected 3 children (duplicates retained), got %d", set.Len())
	}
	got, ok := set.ByKey("x")
	if !ok || got != Node(c) {
		t.Fatalf("expected key 'x' to resolve to the latest insertion")
	}
	if set.At(0) != Node(a) {
		t.Fatalf("expected insertion order preserved")
	}
}

func TestChildSetPolicyRejectsKeyValue(t *testing.T) {
	set := NewChildSet(PolicyNonKV)
	if err := set.Append(NewKeyValue(token.Token{}, "x")); err == nil {
		t.Fatalf("expected PolicyNonKV to reject a KeyValue child")
	}
}

func TestChildSetPolicyRequiresKeyValue(t *testing.T) {
	set := NewChildSet(PolicyKVOnly)
	if err := set.Append(NewIdentifier(token.Token{}, "x")); err == nil {
		t.Fatalf("expected PolicyKVOnly to reject a non-KeyValue child")
	}
}

func TestFunctionBodyChildren(t *testing.T) {
	fn := NewFunction(token.Token{}, []string{"a"})
	body := NewIdentifier(token.Token{}, "a")
	if err := fn.Children().Append(body); err != nil {
		t.Fatalf("append: %v", err)
	}
	got := fn.BodyChildren()
	if len(got) != 1 || got[0] != Node(body) {
		t.Fatalf("expected body children to surface the appended node, got %v", got)
	}
}
