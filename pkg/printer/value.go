package printer

import (
	"strings"

	"github.com/lemonberrylabs/losp/pkg/values"
)

// FormatValue renders v the way a REPL would echo it back: lists as
// "[v1 v2 …]", object literals (and any Scriptable) as a sequence of
// "{key value}" entries joined by spaces. This matches Value.String()
// exactly; it is re-exported here so callers reach for pkg/printer for
// every rendering concern instead of splitting between the two packages.
func FormatValue(v values.Value) string {
	return v.String()
}

// FormatTyped renders v the same way as FormatValue, but prefixes every
// scalar leaf with its "<type>" tag (lists and objects keep their
// bracket/brace structure; only the atoms inside get annotated).
func FormatTyped(v values.Value) string {
	var b strings.Builder
	writeTyped(&b, v)
	return b.String()
}

func writeTyped(b *strings.Builder, v values.Value) {
	switch v.Type() {
	case values.TypeList:
		b.WriteByte('[')
		for i, item := range v.AsList() {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeTyped(b, item)
		}
		b.WriteByte(']')
	case values.TypeScriptable:
		s := v.AsScriptable()
		keys := s.Keys()
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('{')
			b.WriteString(k)
			b.WriteByte(' ')
			val, _ := s.Get(k)
			writeTyped(b, val)
			b.WriteByte('}')
		}
	default:
		b.WriteByte('<')
		b.WriteString(v.Type().String())
		b.WriteString("> ")
		b.WriteString(v.String())
	}
}
