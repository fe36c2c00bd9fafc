package values

import "testing"

func TestTruthinessLaws(t *testing.T) {
	if !NewBool(true).StrictlyTrue() {
		t.Errorf("true should be strictly true")
	}
	if NewInt(0).StrictlyTrue() {
		t.Errorf("0 should not be strictly true")
	}
	if NewInt(0).Truthy() {
		t.Errorf("0 should not be truthy")
	}
	if NewString("").Truthy() {
		t.Errorf("empty string should not be truthy")
	}
	list := NewList([]Value{NewBool(true), NewInt(5)})
	if !list.Truthy() {
		t.Errorf("[true 5] should be truthy (all elements truthy)")
	}
	mixed := NewList([]Value{NewBool(true), NewInt(0)})
	if mixed.Truthy() {
		t.Errorf("[true 0] should not be truthy")
	}
}

func TestEqualNullOnlyMatchesNull(t *testing.T) {
	if !Null.Equal(Null) {
		t.Errorf("null should equal null")
	}
	if Null.Equal(NewInt(0)) {
		t.Errorf("null should not equal int 0")
	}
}

func TestEqualNumericPromotion(t *testing.T) {
	if !NewInt(5).Equal(NewFloat(5.0)) {
		t.Errorf("int 5 should equal float 5.0 under promotion")
	}
}

func TestObjectLiteralInsertionOrder(t *testing.T) {
	o := NewObjectLiteral()
	o.Set("b", NewInt(2))
	o.Set("a", NewInt(1))
	o.Set("b", NewInt(3)) // overwrite, should not move position
	keys := o.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("expected insertion order [b a], got %v", keys)
	}
	v, ok := o.Get("b")
	if !ok || v.AsInt() != 3 {
		t.Fatalf("expected overwritten value 3, got %v", v)
	}
}

func TestObjectLiteralTryClear(t *testing.T) {
	o := NewObjectLiteral()
	o.Set("a", NewInt(1))
	if !o.TryClear("a") {
		t.Fatalf("expected TryClear to succeed on existing key")
	}
	if o.TryClear("a") {
		t.Fatalf("expected TryClear to fail on already-removed key")
	}
}

type hostStruct struct {
	Name string
	Age  int32
}

func TestReflectObjectReadOnly(t *testing.T) {
	h := hostStruct{Name: "ada", Age: 30}
	conv := func(v any) (Value, bool) {
		switch x := v.(type) {
		case string:
			return NewString(x), true
		case int32:
			return NewInt(x), true
		}
		return Null, false
	}
	ro := NewReflectObject(&h, conv)
	v, ok := ro.Get("Name")
	if !ok || v.AsString() != "ada" {
		t.Fatalf("expected Name=ada, got %v", v)
	}
	if ro.Set("Name", NewString("x")) {
		t.Fatalf("expected ReflectObject to refuse writes")
	}
}
