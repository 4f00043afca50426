package parser

import (
	"go/ast"

	"git.weirdcat.su/weirdcat/vogen/internal/types"
)

// ParseFields extracts the named fields of a struct in declaration order.
// Embedded fields carry no name of their own and are skipped.
func ParseFields(structType *ast.StructType) []types.FieldDescriptor {
	fields := []types.FieldDescriptor{}
	if structType.Fields == nil {
		return fields
	}

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			continue
		}

		fieldType := exprToString(field.Type)
		for _, name := range field.Names {
			fields = append(fields, types.FieldDescriptor{
				Name: name.Name,
				Type: fieldType,
			})
		}
	}

	return fields
}
