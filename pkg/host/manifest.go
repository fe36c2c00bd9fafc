package host

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lemonberrylabs/losp/pkg/values"
)

// LoadManifest reads a YAML file of top-level name: value bindings and
// converts each into a Value, for seeding an Evaluator's globals at
// startup: a flat map of arbitrary YAML scalars, sequences, and mappings.
func LoadManifest(path string) (map[string]values.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("host: reading manifest %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("host: parsing manifest %s: %w", path, err)
	}
	out := make(map[string]values.Value, len(raw))
	for k, v := range raw {
		out[k] = toValue(v)
	}
	return out, nil
}

// toValue converts a yaml.v3-decoded interface{} (the scalar/[]any/
// map[string]any shape Unmarshal produces for an `any` target) into a
// Value, recursing through sequences and mappings.
func toValue(v any) values.Value {
	switch t := v.(type) {
	case nil:
		return values.Null
	case bool:
		return values.NewBool(t)
	case int:
		return values.NewInt(int32(t))
	case int64:
		return values.NewInt(int32(t))
	case float64:
		return values.NewFloat(float32(t))
	case string:
		return values.NewString(t)
	case []any:
		out := make([]values.Value, len(t))
		for i, item := range t {
			out[i] = toValue(item)
		}
		return values.NewList(out)
	case map[string]any:
		obj := values.NewObjectLiteral()
		for k, item := range t {
			obj.Set(k, toValue(item))
		}
		return values.NewScriptable(obj)
	default:
		return values.NewString(fmt.Sprintf("%v", t))
	}
}
