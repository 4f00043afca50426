package parser

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"

	"github.com/spf13/afero"

	"git.weirdcat.su/weirdcat/vogen/internal/failure"
	"git.weirdcat.su/weirdcat/vogen/internal/types"
)

// ParseFile reads and parses one Go source file. pkg is the dotted package
// name the file was found under and is recorded on every descriptor.
func ParseFile(fs afero.Fs, path, pkg string) (*types.SourceFile, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, failure.IO("read", path, err)
	}
	return ParseSource(path, src, pkg)
}

// ParseSource parses Go source text into a SourceFile
func ParseSource(path string, src []byte, pkg string) (*types.SourceFile, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, &failure.ParseError{Path: path, Err: err}
	}

	sf := BuildFile(file, pkg)
	sf.Path = path
	return sf, nil
}

// BuildFile turns a parsed file into descriptors: one ClassDescriptor per
// top-level non-generic struct, in declaration order, each carrying the
// methods declared on it in the same file
func BuildFile(file *ast.File, pkg string) *types.SourceFile {
	sf := &types.SourceFile{
		GoPackage: file.Name.Name,
		Imports:   parseImports(file),
		Types:     []types.ClassDescriptor{},
	}

	methods := ParseMethods(file)

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok || typeSpec.Assign.IsValid() || typeSpec.TypeParams != nil {
				continue
			}

			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue
			}

			sf.Types = append(sf.Types, types.ClassDescriptor{
				Name:    typeSpec.Name.Name,
				Package: pkg,
				Fields:  ParseFields(structType),
				Methods: methods[typeSpec.Name.Name],
			})
		}
	}

	return sf
}

func parseImports(file *ast.File) []types.ImportSpec {
	imports := make([]types.ImportSpec, 0, len(file.Imports))
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		spec := types.ImportSpec{Path: path}
		if imp.Name != nil {
			spec.Name = imp.Name.Name
		}
		imports = append(imports, spec)
	}
	return imports
}
