package eval

import "github.com/lemonberrylabs/losp/pkg/values"

// Positional flattens every unkeyed emission's values, in order, ignoring
// keyed ones. Operator handlers use this to read their ordinary arguments
// while keyed options (delim, case, ~, ...) are pulled separately via
// Keyed.
func Positional(accum []Emission) []values.Value {
	var out []values.Value
	for _, e := range accum {
		if e.Key == "" {
			out = append(out, e.Values...)
		}
	}
	return out
}

// Keyed returns the values emitted under key, and whether any emission
// carried that key.
func Keyed(accum []Emission, key string) ([]values.Value, bool) {
	for _, e := range accum {
		if e.Key == key {
			return e.Values, true
		}
	}
	return nil, false
}

// KeyedOne is Keyed for handlers that only accept a single value under the
// key (delim, case, i, ~, ...).
func KeyedOne(accum []Emission, key string) (values.Value, bool) {
	vs, ok := Keyed(accum, key)
	if !ok || len(vs) == 0 {
		return values.Null, false
	}
	return vs[0], true
}

// All flattens every emission's values regardless of key, in order.
func All(accum []Emission) []values.Value {
	var out []values.Value
	for _, e := range accum {
		out = append(out, e.Values...)
	}
	return out
}
