package parser

import (
	"go/ast"
	gotypes "go/types"
	"strings"
)

// exprToString converts a type expression to the text used for accessor matching.
// The result is the canonical printed form of the expression, so `* T` and `*T`
// compare equal while `int` and `int64` do not.
func exprToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		// Simple identifier: int, string, CustomType
		return t.Name

	case *ast.SelectorExpr:
		// Qualified identifier: pkg.Type
		return exprToString(t.X) + "." + t.Sel.Name

	case *ast.StarExpr:
		return "*" + exprToString(t.X)

	case *ast.ParenExpr:
		return "(" + exprToString(t.X) + ")"

	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + exprToString(t.Elt)
		}
		return "[" + exprToString(t.Len) + "]" + exprToString(t.Elt)

	case *ast.MapType:
		return "map[" + exprToString(t.Key) + "]" + exprToString(t.Value)

	case *ast.ChanType:
		switch t.Dir {
		case ast.SEND:
			return "chan<- " + exprToString(t.Value)
		case ast.RECV:
			return "<-chan " + exprToString(t.Value)
		default:
			return "chan " + exprToString(t.Value)
		}

	case *ast.Ellipsis:
		// Variadic: ...T
		return "..." + exprToString(t.Elt)

	case *ast.IndexExpr:
		// Generic instantiation: List[T]
		return exprToString(t.X) + "[" + exprToString(t.Index) + "]"

	case *ast.IndexListExpr:
		args := make([]string, 0, len(t.Indices))
		for _, idx := range t.Indices {
			args = append(args, exprToString(idx))
		}
		return exprToString(t.X) + "[" + strings.Join(args, ", ") + "]"

	case *ast.BasicLit:
		// Literal (for array lengths, etc.)
		return t.Value

	case nil:
		return ""

	default:
		// Struct, interface and func literals are rare in accessor signatures
		return gotypes.ExprString(expr)
	}
}

// resultsToString renders a result list. No results yields "" (void).
func resultsToString(fl *ast.FieldList) string {
	if fl == nil || len(fl.List) == 0 {
		return ""
	}

	parts := fieldListTypes(fl)
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// fieldListTypes expands a field list into one type string per declared name,
// so `x, y int` yields two entries
func fieldListTypes(fl *ast.FieldList) []string {
	if fl == nil {
		return nil
	}

	var out []string
	for _, field := range fl.List {
		typeStr := exprToString(field.Type)

		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for range n {
			out = append(out, typeStr)
		}
	}
	return out
}

// receiverTypeName returns the base type name of a method receiver
func receiverTypeName(recv *ast.FieldList) string {
	if recv == nil || len(recv.List) == 0 {
		return ""
	}

	expr := recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}
