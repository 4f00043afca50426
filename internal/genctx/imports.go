package genctx

import (
	"fmt"
	"go/ast"
	"go/parser"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"
	"golang.org/x/mod/modfile"

	"git.weirdcat.su/weirdcat/vogen/internal/accessor"
	"git.weirdcat.su/weirdcat/vogen/internal/types"
	"git.weirdcat.su/weirdcat/vogen/internal/walker"
)

// ImportResolver maps dotted package names onto Go import paths
type ImportResolver struct {
	sourcePrefix string
	outputPrefix string
}

// NewImportResolver uses the given prefixes, falling back to the module path
// of the nearest go.mod above each root when a prefix is empty
func NewImportResolver(fs afero.Fs, sourceRoot, outputRoot, sourcePrefix, outputPrefix string) (*ImportResolver, error) {
	var err error
	if sourcePrefix == "" {
		if sourcePrefix, err = ModulePrefix(fs, sourceRoot); err != nil {
			return nil, err
		}
	}
	if outputPrefix == "" {
		if outputPrefix, err = ModulePrefix(fs, outputRoot); err != nil {
			return nil, err
		}
	}
	return &ImportResolver{sourcePrefix: sourcePrefix, outputPrefix: outputPrefix}, nil
}

// StaticResolver returns a resolver with fixed prefixes
func StaticResolver(sourcePrefix, outputPrefix string) *ImportResolver {
	return &ImportResolver{sourcePrefix: sourcePrefix, outputPrefix: outputPrefix}
}

// Source returns the import path of a source package
func (r *ImportResolver) Source(pkg string) string {
	return path.Join(r.sourcePrefix, walker.PackagePath(pkg))
}

// Output returns the import path of a generated package
func (r *ImportResolver) Output(pkg string) string {
	return path.Join(r.outputPrefix, walker.PackagePath(pkg))
}

// ModulePrefix returns the import path of dir, derived from the closest go.mod
// at or above it. It returns "" when no go.mod is found.
func ModulePrefix(fs afero.Fs, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	for cur := abs; ; cur = filepath.Dir(cur) {
		gomod := filepath.Join(cur, "go.mod")
		data, err := afero.ReadFile(fs, gomod)
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", fmt.Errorf("%s: missing module directive", gomod)
			}
			rel, err := filepath.Rel(cur, abs)
			if err != nil {
				return "", fmt.Errorf("resolving %s: %w", dir, err)
			}
			return path.Join(modPath, filepath.ToSlash(rel)), nil
		}

		if parent := filepath.Dir(cur); parent == cur {
			return "", nil
		}
	}
}

// UsedImports keeps the imports whose package name qualifies one of the field types
func UsedImports(fields []accessor.EligibleField, imports []types.ImportSpec) []types.ImportSpec {
	qualifiers := make(map[string]bool)
	for _, f := range fields {
		for _, q := range typeQualifiers(f.Type) {
			qualifiers[q] = true
		}
	}

	used := []types.ImportSpec{}
	for _, imp := range imports {
		if imp.Name == "_" || imp.Name == "." {
			continue
		}
		if qualifiers[ImportName(imp)] {
			used = append(used, imp)
		}
	}
	return used
}

// ImportName returns the identifier an import is referred to by
func ImportName(imp types.ImportSpec) string {
	if imp.Name != "" {
		return imp.Name
	}
	return AssumedName(imp.Path)
}

// AssumedName guesses the package name of an import path the way goimports
// does: the last element, skipping a major version suffix, without a go-
// prefix and cut at the first character that is not valid in an identifier
func AssumedName(importPath string) string {
	base := path.Base(importPath)
	if isVersion(base) {
		if dir := path.Dir(importPath); dir != "." {
			base = path.Base(dir)
		}
	}
	base = strings.TrimPrefix(base, "go-")
	if i := strings.IndexFunc(base, notIdentifier); i >= 0 {
		base = base[:i]
	}
	return base
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func notIdentifier(r rune) bool {
	return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
}

// typeQualifiers lists the package names used in a type expression
func typeQualifiers(typeText string) []string {
	expr, err := parser.ParseExpr(typeText)
	if err != nil {
		return nil
	}

	var out []string
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok {
			out = append(out, id.Name)
		}
		return false
	})
	return out
}
