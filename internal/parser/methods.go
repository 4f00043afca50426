package parser

import (
	"go/ast"

	"git.weirdcat.su/weirdcat/vogen/internal/types"
)

// ParseMethods groups the method declarations of a file by receiver type name,
// keeping declaration order within each group
func ParseMethods(file *ast.File) map[string][]types.MethodSignature {
	methods := make(map[string][]types.MethodSignature)

	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Recv == nil {
			continue
		}

		recvName := receiverTypeName(funcDecl.Recv)
		if recvName == "" {
			continue
		}

		methods[recvName] = append(methods[recvName], types.MethodSignature{
			Name:       funcDecl.Name.Name,
			ReturnType: resultsToString(funcDecl.Type.Results),
			ParamTypes: fieldListTypes(funcDecl.Type.Params),
		})
	}

	return methods
}
