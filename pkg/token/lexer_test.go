package token

import "testing"

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func sameKinds(got, want []Kind) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestTokenizeBrackets(t *testing.T) {
	tests := []struct {
		input string
		want  []Kind
	}{
		{"()", []Kind{LParen, RParen, EOF}},
		{"[]", []Kind{LBracket, RBracket, EOF}},
		{"{ }", []Kind{LCurly, RCurly, EOF}},
		{"{{ }}", []Kind{DblLCurly, DblRCurly, EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := NewLexer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}
			if got := kinds(toks); !sameKinds(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenizeLiterals(t *testing.T) {
	toks, err := NewLexer(`null true false 5 -5 3.5 "hi" #tag sym`).Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	want := []Kind{Null, Bool, Bool, Int, Int, Float, String, Tag, Symbol, EOF}
	if got := kinds(toks); !sameKinds(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if toks[3].IntVal != 5 || toks[4].IntVal != -5 {
		t.Errorf("int values wrong: %d, %d", toks[3].IntVal, toks[4].IntVal)
	}
	if toks[6].StrVal != "hi" {
		t.Errorf("string value wrong: %q", toks[6].StrVal)
	}
	if toks[7].StrVal != "tag" {
		t.Errorf("tag value wrong: %q", toks[7].StrVal)
	}
}

func TestTokenizeEscapedString(t *testing.T) {
	toks, err := NewLexer(`"a\"b"`).Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if toks[0].Kind != String || toks[0].StrVal != `a"b` {
		t.Errorf("got %+v", toks[0])
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	if _, err := NewLexer(`"abc`).Tokenize(); err == nil {
		t.Fatalf("expected error for unterminated string")
	}
}

func TestTokenizeComment(t *testing.T) {
	toks, err := NewLexer("5 // trailing comment\n6").Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	want := []Kind{Int, Int, EOF}
	if got := kinds(toks); !sameKinds(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeFunctionPrefix(t *testing.T) {
	toks, err := NewLexer(`FN([x] x)`).Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if toks[0].Kind != LeftInitFunc || toks[0].Raw != "FN(" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestTokenizeSpecialOperatorPrefix(t *testing.T) {
	toks, err := NewLexer(`IF(x y z) $custom(a) $x(a) x(a)`).Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if toks[0].Kind != SpecialOperatorSymbol || toks[0].Raw != "IF" {
		t.Errorf("IF token: %+v", toks[0])
	}
	// find the "$custom" token
	var sawCustom, sawDollarX bool
	for _, tok := range toks {
		if tok.Kind == SpecialOperatorSymbol && tok.Raw == "$custom" {
			sawCustom = true
		}
		if tok.Kind == SpecialOperatorSymbol && tok.Raw == "$x" {
			sawDollarX = true
		}
	}
	if !sawCustom {
		t.Errorf("expected $custom to tokenize as SpecialOperatorSymbol")
	}
	if !sawDollarX {
		t.Errorf("expected $x to tokenize as SpecialOperatorSymbol")
	}
	// "x(a)" is a plain two-char symbol "$" is required, so x stays a Symbol
	foundPlainX := false
	for i, tok := range toks {
		if tok.Kind == Symbol && tok.Raw == "x" && i+1 < len(toks) && toks[i+1].Kind == LParen {
			foundPlainX = true
		}
	}
	if !foundPlainX {
		t.Errorf("expected bare 'x' before '(' to stay a plain Symbol")
	}
}

func TestTokenizeFilterPrefix(t *testing.T) {
	toks, err := NewLexer(`(x) #(y) #(z)`).Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	// toks: LParen x RParen LeftChainFilter y RParen LeftChainFilter z RParen EOF
	// (every '#(' directly after a ')' is a chain filter)
	want := []Kind{LParen, Symbol, RParen, LeftChainFilter, Symbol, RParen, LeftChainFilter, Symbol, RParen, EOF}
	if got := kinds(toks); !sameKinds(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeModuloIsPlainSymbol(t *testing.T) {
	toks, err := NewLexer(`(% 10 3)`).Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if toks[1].Kind != Symbol || toks[1].Raw != "%" {
		t.Errorf("expected '%%' to tokenize as a plain Symbol, got %+v", toks[1])
	}
}
