// Package ast defines the Losp abstract syntax tree: a sum of node kinds
// sharing a common ordered/keyed child collection, produced by pkg/parser
// and consumed read-only by pkg/eval.
package ast

import "github.com/lemonberrylabs/losp/pkg/token"

// Kind tags the variant a Node holds.
type Kind int

const (
	KindOperator Kind = iota
	KindSpecialOperator
	KindFilter
	KindIdentifier
	KindLiteral
	KindKeyValue
	KindObjectLiteral
	KindList
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindOperator:
		return "Operator"
	case KindSpecialOperator:
		return "SpecialOperator"
	case KindFilter:
		return "Filter"
	case KindIdentifier:
		return "Identifier"
	case KindLiteral:
		return "Literal"
	case KindKeyValue:
		return "KeyValue"
	case KindObjectLiteral:
		return "ObjectLiteral"
	case KindList:
		return "List"
	case KindFunction:
		return "Function"
	default:
		return "Unknown"
	}
}

// LiteralKind tags the pre-parsed scalar a Literal node carries. Literal
// intentionally does not reference pkg/values.Value: pkg/values.Lambda
// needs to reference ast.Node for its captured body, and a
// Node->Value->Node cycle would result if Literal held a Value directly.
// Conversion to a Value happens in pkg/eval's evalLiteral.
type LiteralKind int

const (
	LiteralNull LiteralKind = iota
	LiteralInt
	LiteralFloat
	LiteralBool
	LiteralString
)

// Node is any AST node.
type Node interface {
	ASTKind() Kind
	Tok() token.Token
	Children() *ChildSet
}

// Common holds the state every node shares: its source token (for error
// reporting) and its child collection, if it has one.
type Common struct {
	SourceTok token.Token
	children  *ChildSet
}

func (c *Common) Tok() token.Token    { return c.SourceTok }
func (c *Common) Children() *ChildSet { return c.children }

// Operator is `(id child...)`.
type Operator struct {
	Common
	ID string
}

func (n *Operator) ASTKind() Kind { return KindOperator }

// SpecialOperator is `ID(child...)` after a successful Prepare rewrite. It
// carries a second, hidden child collection that ordinary child
// enumeration never walks; special-operator run-time logic reaches into it
// by index instead.
type SpecialOperator struct {
	Common
	ID     string
	Hidden *ChildSet
}

func (n *SpecialOperator) ASTKind() Kind { return KindSpecialOperator }

// ReplaceChildren swaps the public child collection during Prepare, keeping
// the collection's original admissibility policy. Prepare hooks use this to
// move some of their parsed children into Hidden and leave the rest public.
func (n *SpecialOperator) ReplaceChildren(nodes ...Node) error {
	cs := NewChildSet(n.children.Policy())
	for _, c := range nodes {
		if err := cs.Append(c); err != nil {
			return err
		}
	}
	n.children = cs
	return nil
}

// Filter is `#(child...)`, optionally chained to a following filter stage
// via Next.
type Filter struct {
	Common
	ID      string
	Chained bool
	Next    *Filter
}

func (n *Filter) ASTKind() Kind { return KindFilter }

// Identifier is a bare name resolved against the scope chain at eval time.
type Identifier struct {
	Common
	Name string
}

func (n *Identifier) ASTKind() Kind { return KindIdentifier }

// Literal is a pre-parsed scalar constant.
type Literal struct {
	Common
	LitKind  LiteralKind
	IntVal   int32
	FloatVal float32
	BoolVal  bool
	StrVal   string
}

func (n *Literal) ASTKind() Kind { return KindLiteral }

// KeyValue is `{name child...}`, usable as an Operator's named argument or
// as an ObjectLiteral's entry. Tags is the set of leading #tag tokens
// attached directly to this KV (distinct from an ObjectLiteral's own tags).
type KeyValue struct {
	Common
	ID   string
	Tags []string
}

func (n *KeyValue) ASTKind() Kind { return KindKeyValue }

// ObjectLiteral is `{{ [#tag...] KeyValue... }}`.
type ObjectLiteral struct {
	Common
	Tags []string
}

func (n *ObjectLiteral) ASTKind() Kind { return KindObjectLiteral }

// List is `[child...]`, disallowing KeyValue children.
type List struct {
	Common
}

func (n *List) ASTKind() Kind { return KindList }

// Function is `FN([param...] body...)`. Params holds the parameter-name
// list parsed from the leading FunctionParams bracket; the body lives in
// Common.children. The evaluator does not run it when it meets the node —
// a Function is latent until it's actually called.
type Function struct {
	Common
	Params []string
}

func (n *Function) ASTKind() Kind { return KindFunction }

// BodyChildren returns the body expressions a lambda call should evaluate.
// Separate from Children() because Common.Children() must keep reporting
// the real collection (Prepare/printer need it); only the evaluator's
// ordinary per-node child enumeration treats Function specially, and it
// does so by a type assertion on *Function rather than calling this method —
// this accessor exists purely so lambda invocation has an unambiguous name
// for "the nodes to run" instead of reaching into Common.children.
func (n *Function) BodyChildren() []Node {
	if n.children == nil {
		return nil
	}
	return n.children.All()
}

// Constructors. Each builds a node with a freshly allocated child
// collection under the node kind's admissibility policy.

func NewOperator(tok token.Token, id string) *Operator {
	// Operators admit any child, including KeyValue: keyed arguments like
	// `(CONCAT "a" "b" {delim ","})` are ordinary operator children, unlike
	// List and ObjectLiteral which restrict to non-KV and KV-only respectively.
	return &Operator{Common: Common{SourceTok: tok, children: NewChildSet(PolicyAll)}, ID: id}
}

func NewSpecialOperator(tok token.Token, id string) *SpecialOperator {
	return &SpecialOperator{
		Common: Common{SourceTok: tok, children: NewChildSet(PolicyAll)},
		ID:     id,
		Hidden: NewChildSet(PolicyAll),
	}
}

func NewFilter(tok token.Token, id string) *Filter {
	return &Filter{Common: Common{SourceTok: tok, children: NewChildSet(PolicyAll)}, ID: id}
}

func NewIdentifier(tok token.Token, name string) *Identifier {
	return &Identifier{Common: Common{SourceTok: tok}, Name: name}
}

func NewLiteral(tok token.Token) *Literal {
	return &Literal{Common: Common{SourceTok: tok}}
}

func NewKeyValue(tok token.Token, id string) *KeyValue {
	return &KeyValue{Common: Common{SourceTok: tok, children: NewChildSet(PolicyAll)}, ID: id}
}

func NewObjectLiteral(tok token.Token) *ObjectLiteral {
	return &ObjectLiteral{Common: Common{SourceTok: tok, children: NewChildSet(PolicyKVOnly)}}
}

func NewList(tok token.Token) *List {
	return &List{Common: Common{SourceTok: tok, children: NewChildSet(PolicyNonKV)}}
}

func NewFunction(tok token.Token, params []string) *Function {
	return &Function{Common: Common{SourceTok: tok, children: NewChildSet(PolicyAll)}, Params: params}
}
