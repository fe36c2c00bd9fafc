// Package parser builds a Losp AST from source text. It runs a pushdown
// automaton over the token stream produced by pkg/token: each bracket-like
// opener pushes a frame with its own admissible-child rules, and closing the
// bracket pops the frame and, for special operators, runs a Prepare hook
// that may reshape the node before it is handed back to its parent.
package parser

import (
	"fmt"

	"github.com/lemonberrylabs/losp/pkg/ast"
	"github.com/lemonberrylabs/losp/pkg/token"
)

// SyntaxError is returned for any malformed construct: an unexpected token,
// an unbalanced bracket reaching EOF, or a Prepare hook rejecting its node.
type SyntaxError struct {
	Line, Col int
	Message   string
	Excerpt   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("losp: syntax error at line %d col %d: %s (near %q)", e.Line, e.Col, e.Message, e.Excerpt)
}

func newSyntaxError(tok token.Token, msg string) *SyntaxError {
	return &SyntaxError{Line: tok.Line, Col: tok.Col, Message: msg, Excerpt: tok.Raw}
}

// PrepareFunc reshapes a freshly closed SpecialOperator node: splitting its
// parsed children between the node's public collection and its Hidden one,
// or rejecting the node outright. The seven built-in special operators
// (IF, FOR, FORI, ++, --, =, WAIT) have hooks baked into this package; a
// host registering its own `$`-prefixed special operator supplies its hook
// through Parse's hostPrepare map.
type PrepareFunc func(*ast.SpecialOperator) (ast.Node, error)

var builtinPrepareHooks = map[string]PrepareFunc{
	"IF":   ifPrepare,
	"FOR":  forPrepare,
	"FORI": foriPrepare,
	"++":   incDecPrepare,
	"--":   incDecPrepare,
	"=":    assignPrepare,
	"WAIT": waitPrepare,
}

// Builder walks a flat token slice, maintaining just a cursor: the pushdown
// stack is the Go call stack itself (parseOperator calls parseChildrenUntil
// calls parseValue calls parseOperator, ...), one frame per open bracket.
type Builder struct {
	toks        []token.Token
	pos         int
	hostPrepare map[string]PrepareFunc
}

// Parse tokenizes source and builds its AST. hostPrepare may be nil if the
// source uses no host-registered special operators.
func Parse(source string, hostPrepare map[string]PrepareFunc) (ast.Node, error) {
	lx := token.NewLexer(source)
	toks, err := lx.Tokenize()
	if err != nil {
		return nil, err
	}

	b := &Builder{toks: toks, hostPrepare: hostPrepare}
	children, err := b.parseChildrenUntil(token.EOF)
	if err != nil {
		return nil, err
	}
	if b.cur().Kind != token.EOF {
		return nil, newSyntaxError(b.cur(), fmt.Sprintf("unexpected %s", b.cur().Kind))
	}

	outer := ast.NewList(token.Token{Kind: token.LBracket})
	for _, c := range children {
		if err := outer.Children().Append(c); err != nil {
			return nil, newSyntaxError(b.cur(), err.Error())
		}
	}
	if outer.Children().Len() == 1 {
		return outer.Children().At(0), nil
	}
	return outer, nil
}

func (b *Builder) cur() token.Token { return b.toks[b.pos] }

func (b *Builder) advance() {
	if b.pos < len(b.toks)-1 {
		b.pos++
	}
}

// parseChildrenUntil parses values up to (not including) a token of kind
// stop, or EOF. It also owns filter-chain linking: a LeftChainFilter token
// only actually chains (attaches via Next instead of becoming a new
// sibling) when the immediately preceding sibling is itself a Filter —
// the lexer's LeftChainFilter/LeftInitFilter distinction is a hint, not
// the final word.
func (b *Builder) parseChildrenUntil(stop token.Kind) ([]ast.Node, error) {
	var out []ast.Node
	for b.cur().Kind != stop && b.cur().Kind != token.EOF {
		tok := b.cur()
		if tok.Kind == token.LeftInitFilter || tok.Kind == token.LeftChainFilter {
			f, err := b.parseFilterNode(tok)
			if err != nil {
				return nil, err
			}
			if tok.Kind == token.LeftChainFilter && len(out) > 0 {
				if prev, ok := out[len(out)-1].(*ast.Filter); ok {
					tail := prev
					for tail.Next != nil {
						tail = tail.Next
					}
					f.Chained = true
					tail.Next = f
					continue
				}
			}
			out = append(out, f)
			continue
		}

		n, err := b.parseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (b *Builder) parseValue() (ast.Node, error) {
	tok := b.cur()
	switch tok.Kind {
	case token.LParen:
		return b.parseOperator()
	case token.SpecialOperatorSymbol:
		return b.parseSpecialOperator()
	case token.LCurly:
		return b.parseKeyValue()
	case token.DblLCurly:
		return b.parseObjectLiteral()
	case token.LBracket:
		return b.parseList()
	case token.LeftInitFunc:
		return b.parseFunction()
	case token.String, token.Int, token.Float, token.Bool, token.Null:
		return b.parseLiteral()
	case token.Symbol:
		return b.parseIdentifier()
	case token.LeftInitFilter, token.LeftChainFilter:
		// Reached only from a single-value call site (an ObjectLiteral
		// entry's value) that has no sibling list to chain against;
		// parseChildrenUntil intercepts these tokens itself when a
		// sibling list is available.
		return b.parseFilterNode(tok)
	default:
		return nil, newSyntaxError(tok, fmt.Sprintf("unexpected %s", tok.Kind))
	}
}

func (b *Builder) parseOperator() (*ast.Operator, error) {
	opener := b.cur()
	b.advance() // '('
	idTok := b.cur()
	switch idTok.Kind {
	case token.Symbol, token.Int, token.Float:
	default:
		return nil, newSyntaxError(idTok, "expected an operator id after '('")
	}
	b.advance()

	op := ast.NewOperator(opener, idTok.Raw)
	children, err := b.parseChildrenUntil(token.RParen)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if err := op.Children().Append(c); err != nil {
			return nil, newSyntaxError(opener, err.Error())
		}
	}
	if b.cur().Kind != token.RParen {
		return nil, newSyntaxError(b.cur(), "unterminated operator, expected ')'")
	}
	b.advance()
	return op, nil
}

// parseSpecialOperator runs after the lexer has already classified the
// operator's id as SpecialOperatorSymbol; the opening '(' was left
// unconsumed so it's still the next token here.
func (b *Builder) parseSpecialOperator() (ast.Node, error) {
	idTok := b.cur()
	b.advance()
	if b.cur().Kind != token.LParen {
		return nil, newSyntaxError(b.cur(), "expected '(' immediately after special operator id")
	}
	opener := b.cur()
	b.advance()

	node := ast.NewSpecialOperator(idTok, idTok.Raw)
	children, err := b.parseChildrenUntil(token.RParen)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if err := node.Children().Append(c); err != nil {
			return nil, newSyntaxError(opener, err.Error())
		}
	}
	if b.cur().Kind != token.RParen {
		return nil, newSyntaxError(b.cur(), "unterminated special operator, expected ')'")
	}
	b.advance()

	return b.prepare(node)
}

func (b *Builder) prepare(n *ast.SpecialOperator) (ast.Node, error) {
	if hook, ok := builtinPrepareHooks[n.ID]; ok {
		out, err := hook(n)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	if hook, ok := b.hostPrepare[n.ID]; ok {
		out, err := hook(n)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, newSyntaxError(n.Tok(), fmt.Sprintf("%q is not a registered special operator", n.ID))
}

func (b *Builder) parseFilterNode(opener token.Token) (*ast.Filter, error) {
	b.advance() // '#('
	idTok := b.cur()
	if idTok.Kind != token.Symbol {
		return nil, newSyntaxError(idTok, "expected a filter id after '#('")
	}
	b.advance()

	f := ast.NewFilter(opener, idTok.Raw)
	children, err := b.parseChildrenUntil(token.RParen)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if err := f.Children().Append(c); err != nil {
			return nil, newSyntaxError(opener, err.Error())
		}
	}
	if b.cur().Kind != token.RParen {
		return nil, newSyntaxError(b.cur(), "unterminated filter, expected ')'")
	}
	b.advance()
	return f, nil
}

func (b *Builder) parseKeyValue() (*ast.KeyValue, error) {
	opener := b.cur()
	b.advance() // '{'

	var tags []string
	for b.cur().Kind == token.Tag {
		tags = append(tags, b.cur().StrVal)
		b.advance()
	}

	idTok := b.cur()
	if idTok.Kind != token.Symbol {
		return nil, newSyntaxError(idTok, "expected an identifier as KeyValue's key")
	}
	b.advance()

	kv := ast.NewKeyValue(opener, idTok.Raw)
	kv.Tags = tags
	children, err := b.parseChildrenUntil(token.RCurly)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if err := kv.Children().Append(c); err != nil {
			return nil, newSyntaxError(opener, err.Error())
		}
	}
	if b.cur().Kind != token.RCurly {
		return nil, newSyntaxError(b.cur(), "unterminated KeyValue, expected '}'")
	}
	b.advance()
	return kv, nil
}

// parseObjectLiteral reads `{{ [#tag...] (key value)* }}`. Unlike a
// standalone `{key value...}` KeyValue, an ObjectLiteral's entries carry no
// individual brace of their own — `{{from 0 before 3 idx i emit true}}` is
// a flat run of key/value pairs inside the double braces, not a sequence
// of brace-delimited KeyValues. Each entry therefore takes exactly one
// self-delimiting value expression; that's the only way to read a flat,
// unparenthesized pair stream unambiguously.
func (b *Builder) parseObjectLiteral() (*ast.ObjectLiteral, error) {
	opener := b.cur()
	b.advance() // '{{'

	node := ast.NewObjectLiteral(opener)
	for b.cur().Kind == token.Tag {
		node.Tags = append(node.Tags, b.cur().StrVal)
		b.advance()
	}

	for b.cur().Kind != token.DblRCurly && b.cur().Kind != token.EOF {
		var kvTags []string
		for b.cur().Kind == token.Tag {
			kvTags = append(kvTags, b.cur().StrVal)
			b.advance()
		}

		keyTok := b.cur()
		if keyTok.Kind != token.Symbol {
			return nil, newSyntaxError(keyTok, "expected a key identifier in object literal")
		}
		b.advance()

		val, err := b.parseValue()
		if err != nil {
			return nil, err
		}

		kv := ast.NewKeyValue(keyTok, keyTok.Raw)
		kv.Tags = kvTags
		if err := kv.Children().Append(val); err != nil {
			return nil, newSyntaxError(keyTok, err.Error())
		}
		if err := node.Children().Append(kv); err != nil {
			return nil, newSyntaxError(opener, err.Error())
		}
	}
	if b.cur().Kind != token.DblRCurly {
		return nil, newSyntaxError(b.cur(), "unterminated object literal, expected '}}'")
	}
	b.advance()
	return node, nil
}

func (b *Builder) parseList() (*ast.List, error) {
	opener := b.cur()
	b.advance() // '['

	lst := ast.NewList(opener)
	children, err := b.parseChildrenUntil(token.RBracket)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if err := lst.Children().Append(c); err != nil {
			return nil, newSyntaxError(opener, err.Error())
		}
	}
	if b.cur().Kind != token.RBracket {
		return nil, newSyntaxError(b.cur(), "unterminated list, expected ']'")
	}
	b.advance()
	return lst, nil
}

func (b *Builder) parseFunction() (*ast.Function, error) {
	opener := b.cur()
	b.advance() // 'FN('

	if b.cur().Kind != token.LBracket {
		return nil, newSyntaxError(b.cur(), "expected '[' to open a function's parameter list")
	}
	b.advance()

	var params []string
	for b.cur().Kind != token.RBracket && b.cur().Kind != token.EOF {
		if b.cur().Kind != token.Symbol {
			return nil, newSyntaxError(b.cur(), "function parameters must be plain identifiers")
		}
		params = append(params, b.cur().Raw)
		b.advance()
	}
	if b.cur().Kind != token.RBracket {
		return nil, newSyntaxError(b.cur(), "unterminated function parameter list, expected ']'")
	}
	b.advance()

	fn := ast.NewFunction(opener, params)
	body, err := b.parseChildrenUntil(token.RParen)
	if err != nil {
		return nil, err
	}
	for _, c := range body {
		if err := fn.Children().Append(c); err != nil {
			return nil, newSyntaxError(opener, err.Error())
		}
	}
	if b.cur().Kind != token.RParen {
		return nil, newSyntaxError(b.cur(), "unterminated function literal, expected ')'")
	}
	b.advance()
	return fn, nil
}

func (b *Builder) parseIdentifier() (*ast.Identifier, error) {
	tok := b.cur()
	b.advance()
	return ast.NewIdentifier(tok, tok.Raw), nil
}

func (b *Builder) parseLiteral() (*ast.Literal, error) {
	tok := b.cur()
	b.advance()

	lit := ast.NewLiteral(tok)
	switch tok.Kind {
	case token.Null:
		lit.LitKind = ast.LiteralNull
	case token.Int:
		lit.LitKind = ast.LiteralInt
		lit.IntVal = tok.IntVal
	case token.Float:
		lit.LitKind = ast.LiteralFloat
		lit.FloatVal = tok.FloatVal
	case token.Bool:
		lit.LitKind = ast.LiteralBool
		lit.BoolVal = tok.BoolVal
	case token.String:
		lit.LitKind = ast.LiteralString
		lit.StrVal = tok.StrVal
	}
	return lit, nil
}
