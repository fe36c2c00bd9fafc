package builtins

import (
	"math"
	"testing"

	"github.com/lemonberrylabs/losp/pkg/eval"
	"github.com/lemonberrylabs/losp/pkg/parser"
	"github.com/lemonberrylabs/losp/pkg/values"
)

func isInf32(f float32) bool {
	return math.IsInf(float64(f), 1)
}

func newEvaluator() *eval.Evaluator {
	e := eval.NewEvaluator(nil)
	Register(e)
	return e
}

func evalSrc(t *testing.T, src string) eval.Result {
	t.Helper()
	n, err := parser.Parse(src, nil)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return newEvaluator().Eval(n)
}

func expectOne(t *testing.T, src string) values.Value {
	t.Helper()
	res := evalSrc(t, src)
	if res.Kind != eval.KindValue {
		t.Fatalf("%q: expected KindValue, got kind %d (err=%v)", src, res.Kind, res.Err)
	}
	if len(res.Values) != 1 {
		t.Fatalf("%q: expected exactly one value, got %d", src, len(res.Values))
	}
	return res.Values[0]
}

func expectError(t *testing.T, src string, tag values.Tag) {
	t.Helper()
	res := evalSrc(t, src)
	if res.Kind != eval.KindError {
		t.Fatalf("%q: expected an error, got kind %d", src, res.Kind)
	}
	if res.Err.Tag != tag {
		t.Fatalf("%q: expected tag %s, got %s", src, tag, res.Err.Tag)
	}
}

func TestArithmeticPromotion(t *testing.T) {
	tests := []struct {
		src      string
		wantType values.Type
		wantStr  string
	}{
		{"(+ 1 2 3)", values.TypeInt, "6"},
		{"(+ 1 2.5)", values.TypeFloat, "3.5"},
		{"(- 10 3 2)", values.TypeInt, "5"},
		{"(- 5)", values.TypeInt, "-5"},
		{"(* 2 3 4)", values.TypeInt, "24"},
		{"(/ 10 2)", values.TypeInt, "5"},
		{"(^ 2 10)", values.TypeInt, "1024"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v := expectOne(t, tt.src)
			if v.Type() != tt.wantType {
				t.Fatalf("expected type %s, got %s", tt.wantType, v.Type())
			}
			if v.String() != tt.wantStr {
				t.Fatalf("expected %s, got %s", tt.wantStr, v.String())
			}
		})
	}
}

func TestDivisionByZeroFallsBack(t *testing.T) {
	v := expectOne(t, "(/ 5 0)")
	if v.Type() != values.TypeInt || v.AsInt() != math.MaxInt32 {
		t.Fatalf("expected INT_MAX, got %s", v.String())
	}
	f := expectOne(t, "(/ 5.0 0)")
	if f.Type() != values.TypeFloat || !isInf32(f.AsFloat()) {
		t.Fatalf("expected +Inf, got %s", f.String())
	}
}

func TestComparisonOrderingAndPromotion(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"(< 1 2)", true},
		{"(< 2 1)", false},
		{"(<= 2 2)", true},
		{"(> 1.5 1)", true},
		{`(< "a" "b")`, true},
		{"(== 1 1.0)", true},
		{"(!= 1 2)", true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v := expectOne(t, tt.src)
			if v.Type() != values.TypeBool || v.AsBool() != tt.want {
				t.Fatalf("expected bool %v, got %s", tt.want, v.String())
			}
		})
	}
}

func TestComparisonRejectsBoolOrdering(t *testing.T) {
	expectError(t, "(< true false)", values.TagType)
}

func TestTruthinessPredicates(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"(1 true)", true},
		{"(1 1)", false},
		{"(~1 1)", true},
		{"(~1 0)", false},
		{"(0 false)", true},
		{"(~0 0)", true},
		{"(! true)", false},
		{"(~! 0)", true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v := expectOne(t, tt.src)
			if v.Type() != values.TypeBool || v.AsBool() != tt.want {
				t.Fatalf("expected bool %v, got %s", tt.want, v.String())
			}
		})
	}
}

func TestAnyAllIn(t *testing.T) {
	if v := expectOne(t, "(ANY false false true)"); !v.AsBool() {
		t.Fatalf("expected ANY to find the true")
	}
	if v := expectOne(t, "(ALL true true false)"); v.AsBool() {
		t.Fatalf("expected ALL to fail on the false")
	}
	if v := expectOne(t, `(IN [1 2 3] 2)`); !v.AsBool() {
		t.Fatalf("expected 2 to be IN [1 2 3]")
	}
	if v := expectOne(t, `(IN [1 2 3] 9)`); v.AsBool() {
		t.Fatalf("expected 9 to not be IN [1 2 3]")
	}
}

func TestAnyRequiresAtLeastOneArgument(t *testing.T) {
	expectError(t, "(ANY)", values.TagType)
}

func TestCount(t *testing.T) {
	if v := expectOne(t, `(COUNT [1 2 3])`); v.AsInt() != 3 {
		t.Fatalf("expected count 3, got %s", v.String())
	}
}

func TestPropertyAccessChained(t *testing.T) {
	v := expectOne(t, `(. {{a {{b "deep"}}}} "a" "b")`)
	if v.Type() != values.TypeString || v.AsString() != "deep" {
		t.Fatalf("expected \"deep\", got %s", v.String())
	}
}

func TestPropertyAccessMissingKey(t *testing.T) {
	expectError(t, `(. {{a 1}} "missing")`, values.TagType)
}

func TestMerge(t *testing.T) {
	v := expectOne(t, `(. (MERGE {{a 1}} {{a 2 b 3}}) "a")`)
	if v.AsInt() != 2 {
		t.Fatalf("expected the second object's 'a' to win, got %s", v.String())
	}
}

func TestConcatWithDelim(t *testing.T) {
	v := expectOne(t, `(CONCAT 1 2 3 {delim ","})`)
	if v.AsString() != "1,2,3" {
		t.Fatalf("expected \"1,2,3\", got %q", v.AsString())
	}
}

func TestStrInt(t *testing.T) {
	v := expectOne(t, `(STR-INT "42")`)
	if v.Type() != values.TypeInt || v.AsInt() != 42 {
		t.Fatalf("expected int 42, got %s", v.String())
	}
	expectError(t, `(STR-INT "nope")`, values.TagType)
}

func TestStartsEndsContains(t *testing.T) {
	if v := expectOne(t, `(STARTS "hello" "he")`); !v.AsBool() {
		t.Fatalf("expected STARTS to match")
	}
	if v := expectOne(t, `(ENDS "hello" "lo")`); !v.AsBool() {
		t.Fatalf("expected ENDS to match")
	}
	if v := expectOne(t, `(CONTAINS "hello" "ell")`); !v.AsBool() {
		t.Fatalf("expected CONTAINS to match")
	}
	if v := expectOne(t, `(STARTS "HELLO" "he" {i true})`); !v.AsBool() {
		t.Fatalf("expected case-insensitive STARTS to match")
	}
}

func TestContainersRunMuteLast(t *testing.T) {
	v := evalSrc(t, `(RUN 1 2 3)`)
	if len(v.Values) != 3 {
		t.Fatalf("expected 3 emitted values, got %d", len(v.Values))
	}
	m := evalSrc(t, `(MUTE 1 2 3)`)
	if len(m.Values) != 0 {
		t.Fatalf("expected no emission from MUTE, got %v", m.Values)
	}
	l := expectOne(t, `(LAST 1 2 3)`)
	if l.AsInt() != 3 {
		t.Fatalf("expected LAST to keep 3, got %s", l.String())
	}
}

func TestExpandCollapse(t *testing.T) {
	v := evalSrc(t, `(EXPAND [1 2] 3 [4])`)
	if len(v.Values) != 4 {
		t.Fatalf("expected 4 flattened values, got %d", len(v.Values))
	}
	c := expectOne(t, `(COLLAPSE 1 2 3)`)
	if c.Type() != values.TypeList || len(c.AsList()) != 3 {
		t.Fatalf("expected a 3-element list, got %s", c.String())
	}
}

func TestPi(t *testing.T) {
	v := expectOne(t, "(PI)")
	if v.Type() != values.TypeFloat {
		t.Fatalf("expected a float, got %s", v.Type())
	}
}

func TestDblPushSumsAcrossTwoPushes(t *testing.T) {
	v := expectOne(t, "(LOSP:TEST:DBLPUSH)")
	if v.Type() != values.TypeInt || v.AsInt() != 3 {
		t.Fatalf("expected int 3 (1+2), got %s", v.String())
	}
}
