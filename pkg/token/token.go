// Package token defines the lexical units the tokenizer produces and the
// scanner that produces them from raw Losp source text.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota

	LParen // (
	RParen // )
	LBracket
	RBracket
	LCurly
	RCurly
	DblLCurly // {{
	DblRCurly // }}

	String
	Int
	Float
	Bool
	Null
	Tag // #name

	Symbol                // a bare identifier/operator name
	SpecialOperatorSymbol // a symbol immediately followed by '(' that names a special operator
	LeftInitFilter        // #( not directly after a ')' — opens a filter chain on the preceding sibling
	LeftChainFilter        // #( directly after any ')' — chains another stage when the preceding sibling is a Filter
	LeftInitFunc           // FN( — opens a function literal
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case LCurly:
		return "LCurly"
	case RCurly:
		return "RCurly"
	case DblLCurly:
		return "DblLCurly"
	case DblRCurly:
		return "DblRCurly"
	case String:
		return "String"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	case Null:
		return "Null"
	case Tag:
		return "Tag"
	case Symbol:
		return "Symbol"
	case SpecialOperatorSymbol:
		return "SpecialOperatorSymbol"
	case LeftInitFilter:
		return "LeftInitFilter"
	case LeftChainFilter:
		return "LeftChainFilter"
	case LeftInitFunc:
		return "LeftInitFunc"
	default:
		return "Unknown"
	}
}

// Token is a single lexical unit: its kind, its span into the original
// source, and — for literal kinds — its pre-parsed scalar value.
type Token struct {
	Kind Kind

	// Source positions, as a half-open byte range [Start, End) into the
	// string the Tokenizer scanned.
	Start, End int
	Line, Col  int

	// Raw is the exact source text of the token (including quotes/braces
	// for string/tag literals).
	Raw string

	// Pre-parsed scalar payloads, populated only for the matching Kind.
	IntVal   int32
	FloatVal float32
	BoolVal  bool
	StrVal   string // unescaped string body, or the tag name without '#'
}

func (t Token) String() string {
	switch t.Kind {
	case String:
		return fmt.Sprintf("String(%q)", t.StrVal)
	case Int:
		return fmt.Sprintf("Int(%d)", t.IntVal)
	case Float:
		return fmt.Sprintf("Float(%g)", t.FloatVal)
	case Bool:
		return fmt.Sprintf("Bool(%t)", t.BoolVal)
	case Tag:
		return fmt.Sprintf("Tag(#%s)", t.StrVal)
	case Symbol, SpecialOperatorSymbol:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Raw)
	default:
		return t.Kind.String()
	}
}
