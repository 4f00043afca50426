package generator

import (
	"go/ast"
	"go/parser"
	gotypes "go/types"

	"github.com/dave/jennifer/jen"

	"git.weirdcat.su/weirdcat/vogen/internal/genctx"
	"git.weirdcat.su/weirdcat/vogen/internal/types"
)

// TypeCode converts a type expression into jennifer code. Package qualifiers
// found in imports become jen.Qual references so the generated file imports
// them; anything that does not parse is emitted verbatim.
func TypeCode(typeText string, imports []types.ImportSpec) *jen.Statement {
	expr, err := parser.ParseExpr(typeText)
	if err != nil {
		return jen.Id(typeText)
	}

	byName := make(map[string]string, len(imports))
	for _, imp := range imports {
		byName[genctx.ImportName(imp)] = imp.Path
	}
	return exprCode(expr, byName)
}

func exprCode(expr ast.Expr, imports map[string]string) *jen.Statement {
	switch t := expr.(type) {
	case *ast.Ident:
		return jen.Id(t.Name)

	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			if importPath, found := imports[x.Name]; found {
				return jen.Qual(importPath, t.Sel.Name)
			}
			return jen.Id(x.Name).Dot(t.Sel.Name)
		}

	case *ast.StarExpr:
		return jen.Op("*").Add(exprCode(t.X, imports))

	case *ast.ParenExpr:
		return jen.Parens(exprCode(t.X, imports))

	case *ast.ArrayType:
		if t.Len == nil {
			return jen.Index().Add(exprCode(t.Elt, imports))
		}
		return jen.Index(jen.Id(gotypes.ExprString(t.Len))).Add(exprCode(t.Elt, imports))

	case *ast.MapType:
		return jen.Map(exprCode(t.Key, imports)).Add(exprCode(t.Value, imports))

	case *ast.ChanType:
		switch t.Dir {
		case ast.SEND:
			return jen.Chan().Op("<-").Add(exprCode(t.Value, imports))
		case ast.RECV:
			return jen.Op("<-").Chan().Add(exprCode(t.Value, imports))
		default:
			return jen.Chan().Add(exprCode(t.Value, imports))
		}

	case *ast.Ellipsis:
		return jen.Op("...").Add(exprCode(t.Elt, imports))

	case *ast.FuncType:
		params := fieldListCode(t.Params, imports)
		results := fieldListCode(t.Results, imports)
		stmt := jen.Func().Params(params...)
		switch {
		case len(results) == 1 && len(t.Results.List[0].Names) == 0:
			return stmt.Add(results[0])
		case len(results) > 0:
			return stmt.Params(results...)
		}
		return stmt

	case *ast.IndexExpr:
		return exprCode(t.X, imports).Types(exprCode(t.Index, imports))

	case *ast.IndexListExpr:
		args := make([]jen.Code, len(t.Indices))
		for i, index := range t.Indices {
			args[i] = exprCode(index, imports)
		}
		return exprCode(t.X, imports).Types(args...)

	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return jen.Interface()
		}

	case *ast.StructType:
		if t.Fields == nil || len(t.Fields.List) == 0 {
			return jen.Struct()
		}
	}

	// Non-empty struct and interface literals keep their text
	return jen.Id(gotypes.ExprString(expr))
}

// fieldListCode drops parameter names and repeats the type once per name
func fieldListCode(list *ast.FieldList, imports map[string]string) []jen.Code {
	if list == nil {
		return nil
	}

	var out []jen.Code
	for _, field := range list.List {
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for range n {
			out = append(out, exprCode(field.Type, imports))
		}
	}
	return out
}
