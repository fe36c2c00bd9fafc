package values

import "reflect"

// Scriptable is the polymorphic "object with named fields" capability that
// object literals and host-provided objects both implement. The language
// core only ever depends on this interface, never on a concrete
// implementation.
type Scriptable interface {
	// Keys returns the object's key set. Implementations need not return
	// them in any particular order beyond what they themselves promise.
	Keys() []string
	// Get looks up a key. ok is false when the key is absent.
	Get(key string) (Value, bool)
	// Set stores a value under key, reporting whether the write was
	// accepted (a read-only Scriptable, e.g. one backed by reflection
	// over an unaddressable host struct, may refuse).
	Set(key string, v Value) bool
	// TryClear removes a key, reporting whether it was accepted.
	TryClear(key string) bool
	// Materialize builds a key->T map via a caller-supplied mapper,
	// letting callers flatten a Scriptable into any Go shape they need
	// (e.g. JSON encoding, or pkg/printer's rendering) without the
	// interface itself depending on that shape.
	Materialize(mapper func(Value) any) map[string]any
}

// ObjectLiteral is the built-in Scriptable backing `{{ ... }}` literals: an
// insertion-ordered map plus an ordered tag list.
type ObjectLiteral struct {
	keys   []string
	values map[string]Value
	Tags   []string
}

// NewObjectLiteral creates an empty insertion-ordered object.
func NewObjectLiteral() *ObjectLiteral {
	return &ObjectLiteral{values: make(map[string]Value)}
}

func (o *ObjectLiteral) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o *ObjectLiteral) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *ObjectLiteral) Set(key string, v Value) bool {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
	return true
}

func (o *ObjectLiteral) TryClear(key string) bool {
	if _, exists := o.values[key]; !exists {
		return false
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

func (o *ObjectLiteral) Materialize(mapper func(Value) any) map[string]any {
	out := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		out[k] = mapper(o.values[k])
	}
	return out
}

// LambdaObject is a Scriptable backed entirely by host-supplied closures,
// for hosts that want to expose a live, computed object (e.g. a session
// handle) rather than a snapshot map.
type LambdaObject struct {
	KeysFn     func() []string
	GetFn      func(key string) (Value, bool)
	SetFn      func(key string, v Value) bool
	TryClearFn func(key string) bool
}

func (l *LambdaObject) Keys() []string {
	if l.KeysFn == nil {
		return nil
	}
	return l.KeysFn()
}

func (l *LambdaObject) Get(key string) (Value, bool) {
	if l.GetFn == nil {
		return Null, false
	}
	return l.GetFn(key)
}

func (l *LambdaObject) Set(key string, v Value) bool {
	if l.SetFn == nil {
		return false
	}
	return l.SetFn(key, v)
}

func (l *LambdaObject) TryClear(key string) bool {
	if l.TryClearFn == nil {
		return false
	}
	return l.TryClearFn(key)
}

func (l *LambdaObject) Materialize(mapper func(Value) any) map[string]any {
	out := make(map[string]any)
	for _, k := range l.Keys() {
		if v, ok := l.Get(k); ok {
			out[k] = mapper(v)
		}
	}
	return out
}

// ReflectObject is a read-only Scriptable that enumerates the exported
// fields of a host struct via reflection, letting a host hand a plain Go
// struct to Losp without writing per-type glue.
type ReflectObject struct {
	target  reflect.Value
	fields  map[string]int
	order   []string
	toValue reflectConv
}

// NewReflectObject wraps host (a struct or pointer to struct) for
// read access from Losp scripts. ToValue converts each exported field
// into a Value; a field ToValue cannot convert is skipped.
func NewReflectObject(host any, toValue func(any) (Value, bool)) *ReflectObject {
	v := reflect.ValueOf(host)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	r := &ReflectObject{target: v, fields: make(map[string]int)}
	if v.Kind() != reflect.Struct {
		return r
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if _, ok := toValue(v.Field(i).Interface()); !ok {
			continue
		}
		r.fields[f.Name] = i
		r.order = append(r.order, f.Name)
	}
	r.toValue = toValue
	return r
}

// toValue is set by NewReflectObject; kept as a field (not a closure
// param) so Get can call it lazily per field access.
type reflectConv = func(any) (Value, bool)

func (r *ReflectObject) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *ReflectObject) Get(key string) (Value, bool) {
	idx, ok := r.fields[key]
	if !ok {
		return Null, false
	}
	return r.toValue(r.target.Field(idx).Interface())
}

func (r *ReflectObject) Set(key string, v Value) bool  { return false }
func (r *ReflectObject) TryClear(key string) bool      { return false }

func (r *ReflectObject) Materialize(mapper func(Value) any) map[string]any {
	out := make(map[string]any, len(r.order))
	for _, k := range r.order {
		if v, ok := r.Get(k); ok {
			out[k] = mapper(v)
		}
	}
	return out
}
