// Package printer renders a parsed AST and evaluated Values for humans:
// an indented tree dump of the former, a REPL-style form of the latter.
// Neither affects evaluation; value rendering's exact shape is
// test-referenced, so it is implemented in full rather than sketched.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lemonberrylabs/losp/pkg/ast"
)

const indentUnit = "  "

// DumpAST renders node as an indented tree, one line per node, children
// indented one level under their parent. Operator/SpecialOperator nodes
// show their id; Identifier shows its name; Literal shows its scalar.
func DumpAST(node ast.Node) string {
	var b strings.Builder
	dumpNode(&b, node, 0)
	return b.String()
}

func dumpNode(b *strings.Builder, node ast.Node, depth int) {
	if node == nil {
		return
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString(describeNode(node))
	b.WriteByte('\n')
	if cs := node.Children(); cs != nil {
		for _, c := range cs.All() {
			dumpNode(b, c, depth+1)
		}
	}
	if so, ok := node.(*ast.SpecialOperator); ok && so.Hidden.Len() > 0 {
		b.WriteString(strings.Repeat(indentUnit, depth+1))
		b.WriteString("(hidden)\n")
		for _, c := range so.Hidden.All() {
			dumpNode(b, c, depth+2)
		}
	}
}

func describeNode(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Operator:
		return "Operator " + n.ID
	case *ast.SpecialOperator:
		return "SpecialOperator " + n.ID
	case *ast.Filter:
		if n.Chained {
			return "Filter " + n.ID + " (chained)"
		}
		return "Filter " + n.ID
	case *ast.Identifier:
		return "Identifier " + n.Name
	case *ast.Literal:
		return "Literal " + describeLiteral(n)
	case *ast.KeyValue:
		return "KeyValue " + n.ID
	case *ast.ObjectLiteral:
		return "ObjectLiteral"
	case *ast.List:
		return "List"
	case *ast.Function:
		return "Function [" + strings.Join(n.Params, " ") + "]"
	default:
		return node.ASTKind().String()
	}
}

func describeLiteral(n *ast.Literal) string {
	switch n.LitKind {
	case ast.LiteralNull:
		return "null"
	case ast.LiteralInt:
		return strconv.FormatInt(int64(n.IntVal), 10)
	case ast.LiteralFloat:
		return strconv.FormatFloat(float64(n.FloatVal), 'g', -1, 32)
	case ast.LiteralBool:
		return strconv.FormatBool(n.BoolVal)
	case ast.LiteralString:
		return strconv.Quote(n.StrVal)
	default:
		return fmt.Sprintf("<unknown literal kind %d>", n.LitKind)
	}
}
