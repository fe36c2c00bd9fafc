// Package values implements Losp's tagged-variant Value type, the
// script-object interface object literals and host bindings conform to,
// and the LospError taxonomy.
package values

import (
	"fmt"
	"math"
	"strings"

	"github.com/lemonberrylabs/losp/pkg/ast"
)

// Type tags the variant a Value holds.
type Type int

const (
	TypeNull Type = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeString
	TypeList
	TypeLambda
	TypeScriptable
	TypeExtrinsic
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeLambda:
		return "lambda"
	case TypeScriptable:
		return "scriptable"
	case TypeExtrinsic:
		return "extrinsic"
	default:
		return "unknown"
	}
}

// Lambda is a first-class function value: a parameter-name list plus a
// reference to the body nodes it closes over. A lambda call creates a
// child scope and evaluates Body as a synthetic frame.
type Lambda struct {
	Params []string
	Body   []ast.Node
}

// Value is the tagged union every Losp expression evaluates to.
type Value struct {
	typ Type

	intVal    int32
	floatVal  float32
	boolVal   bool
	stringVal string
	listVal   []Value

	lambdaVal     *Lambda
	scriptableVal Scriptable

	extrinsicVal any
	extrinsicTag string
}

// Null is the singleton null value.
var Null = Value{typ: TypeNull}

func NewInt(v int32) Value       { return Value{typ: TypeInt, intVal: v} }
func NewFloat(v float32) Value   { return Value{typ: TypeFloat, floatVal: v} }
func NewBool(v bool) Value       { return Value{typ: TypeBool, boolVal: v} }
func NewString(v string) Value   { return Value{typ: TypeString, stringVal: v} }
func NewList(v []Value) Value    { return Value{typ: TypeList, listVal: v} }
func NewLambda(l *Lambda) Value  { return Value{typ: TypeLambda, lambdaVal: l} }
func NewScriptable(s Scriptable) Value {
	return Value{typ: TypeScriptable, scriptableVal: s}
}

// NewExtrinsic wraps an opaque host value under a host-chosen tag name
// (used for diagnostics and by Extrinsic-aware host operators that want to
// assert on what kind of extrinsic they were handed).
func NewExtrinsic(tag string, v any) Value {
	return Value{typ: TypeExtrinsic, extrinsicTag: tag, extrinsicVal: v}
}

func (v Value) Type() Type   { return v.typ }
func (v Value) IsNull() bool { return v.typ == TypeNull }

func (v Value) AsInt() int32 {
	if v.typ != TypeInt {
		panic(fmt.Sprintf("losp: AsInt called on %s value", v.typ))
	}
	return v.intVal
}

func (v Value) AsFloat() float32 {
	if v.typ != TypeFloat {
		panic(fmt.Sprintf("losp: AsFloat called on %s value", v.typ))
	}
	return v.floatVal
}

func (v Value) AsBool() bool {
	if v.typ != TypeBool {
		panic(fmt.Sprintf("losp: AsBool called on %s value", v.typ))
	}
	return v.boolVal
}

func (v Value) AsString() string {
	if v.typ != TypeString {
		panic(fmt.Sprintf("losp: AsString called on %s value", v.typ))
	}
	return v.stringVal
}

func (v Value) AsList() []Value {
	if v.typ != TypeList {
		panic(fmt.Sprintf("losp: AsList called on %s value", v.typ))
	}
	return v.listVal
}

func (v Value) AsLambda() *Lambda {
	if v.typ != TypeLambda {
		panic(fmt.Sprintf("losp: AsLambda called on %s value", v.typ))
	}
	return v.lambdaVal
}

func (v Value) AsScriptable() Scriptable {
	if v.typ != TypeScriptable {
		panic(fmt.Sprintf("losp: AsScriptable called on %s value", v.typ))
	}
	return v.scriptableVal
}

// AsExtrinsic returns the wrapped host value and its host-chosen tag.
func (v Value) AsExtrinsic() (any, string) {
	if v.typ != TypeExtrinsic {
		panic(fmt.Sprintf("losp: AsExtrinsic called on %s value", v.typ))
	}
	return v.extrinsicVal, v.extrinsicTag
}

// ExtrinsicAs does a checked type-assertion on an Extrinsic's wrapped host
// value, for host operators that know the concrete Go type they registered.
func ExtrinsicAs[T any](v Value) (T, bool) {
	var zero T
	if v.typ != TypeExtrinsic {
		return zero, false
	}
	t, ok := v.extrinsicVal.(T)
	return t, ok
}

// AsNumber returns the numeric value as a float64, for comparison/promotion
// logic shared by arithmetic and comparison builtins.
func (v Value) AsNumber() (float64, bool) {
	switch v.typ {
	case TypeInt:
		return float64(v.intVal), true
	case TypeFloat:
		return float64(v.floatVal), true
	default:
		return 0, false
	}
}

// Truthy is the "truthy" (~1/~0) predicate for a single value:
// strictly-true booleans, any non-zero number, any non-empty string, or a
// list where every element is truthy.
func (v Value) Truthy() bool {
	switch v.typ {
	case TypeBool:
		return v.boolVal
	case TypeInt:
		return v.intVal != 0
	case TypeFloat:
		return v.floatVal != 0
	case TypeString:
		return v.stringVal != ""
	case TypeList:
		for _, item := range v.listVal {
			if !item.Truthy() {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// StrictlyTrue implements the "1" predicate: exactly boolean true, or a
// list where every element is strictly true.
func (v Value) StrictlyTrue() bool {
	switch v.typ {
	case TypeBool:
		return v.boolVal
	case TypeList:
		for _, item := range v.listVal {
			if !item.StrictlyTrue() {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Equal implements the boxed-value equality IN and the ==/!= comparison
// operators need, with null equal only to null and int/float comparable
// via numeric promotion.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		an, aok := v.AsNumber()
		bn, bok := other.AsNumber()
		if aok && bok {
			return an == bn
		}
		return false
	}
	switch v.typ {
	case TypeNull:
		return true
	case TypeBool:
		return v.boolVal == other.boolVal
	case TypeInt:
		return v.intVal == other.intVal
	case TypeFloat:
		return v.floatVal == other.floatVal
	case TypeString:
		return v.stringVal == other.stringVal
	case TypeList:
		if len(v.listVal) != len(other.listVal) {
			return false
		}
		for i := range v.listVal {
			if !v.listVal[i].Equal(other.listVal[i]) {
				return false
			}
		}
		return true
	case TypeScriptable:
		return v.scriptableVal == other.scriptableVal
	case TypeLambda:
		return v.lambdaVal == other.lambdaVal
	case TypeExtrinsic:
		return v.extrinsicVal == other.extrinsicVal
	default:
		return false
	}
}

// String renders the value the way the REPL-style printer's atom form
// does, without the "<type>" prefix (see pkg/printer for the annotated
// form).
func (v Value) String() string {
	switch v.typ {
	case TypeNull:
		return "null"
	case TypeBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case TypeInt:
		return fmt.Sprintf("%d", v.intVal)
	case TypeFloat:
		if float64(v.floatVal) == math.Trunc(float64(v.floatVal)) {
			return fmt.Sprintf("%.1f", v.floatVal)
		}
		return fmt.Sprintf("%g", v.floatVal)
	case TypeString:
		return v.stringVal
	case TypeList:
		parts := make([]string, len(v.listVal))
		for i, item := range v.listVal {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case TypeLambda:
		return fmt.Sprintf("<lambda/%d>", len(v.lambdaVal.Params))
	case TypeScriptable:
		parts := make([]string, 0)
		for _, k := range v.scriptableVal.Keys() {
			val, _ := v.scriptableVal.Get(k)
			parts = append(parts, fmt.Sprintf("{%s %s}", k, val.String()))
		}
		return strings.Join(parts, " ")
	case TypeExtrinsic:
		return fmt.Sprintf("<extrinsic:%s>", v.extrinsicTag)
	default:
		return "<unknown>"
	}
}
