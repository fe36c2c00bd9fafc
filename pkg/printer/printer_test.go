package printer

import (
	"strings"
	"testing"

	"github.com/lemonberrylabs/losp/pkg/parser"
	"github.com/lemonberrylabs/losp/pkg/values"
)

func TestDumpASTShowsOperatorAndChildren(t *testing.T) {
	node, err := parser.Parse(`(+ 1 2)`, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	dump := DumpAST(node)
	if !strings.Contains(dump, "Operator +") {
		t.Fatalf("expected operator id in dump, got:\n%s", dump)
	}
	if !strings.Contains(dump, "Literal 1") || !strings.Contains(dump, "Literal 2") {
		t.Fatalf("expected literal children in dump, got:\n%s", dump)
	}
}

func TestFormatValueList(t *testing.T) {
	v := values.NewList([]values.Value{values.NewInt(1), values.NewInt(2)})
	if got := FormatValue(v); got != "[1 2]" {
		t.Fatalf("expected \"[1 2]\", got %q", got)
	}
}

func TestFormatValueObjectLiteral(t *testing.T) {
	obj := values.NewObjectLiteral()
	obj.Set("a", values.NewInt(1))
	obj.Set("b", values.NewString("x"))
	got := FormatValue(values.NewScriptable(obj))
	if got != `{a 1} {b x}` {
		t.Fatalf("expected \"{a 1} {b x}\", got %q", got)
	}
}

func TestFormatTypedPrefixesAtoms(t *testing.T) {
	v := values.NewList([]values.Value{values.NewInt(1), values.NewString("x")})
	got := FormatTyped(v)
	if got != "[<int> 1 <string> x]" {
		t.Fatalf("expected type-annotated list, got %q", got)
	}
}

func TestStreamColoringDisabledWhenNotATerminal(t *testing.T) {
	s := &Stream{colored: false}
	if s.Node("x") != "x" {
		t.Fatalf("expected no ANSI codes when colored is false")
	}
}

func TestStreamColoringWrapsWhenEnabled(t *testing.T) {
	s := &Stream{colored: true}
	got := s.Node("x")
	if !strings.HasPrefix(got, ansiCyan) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected ANSI-wrapped text, got %q", got)
	}
}
