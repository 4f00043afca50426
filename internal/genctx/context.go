// Package genctx assembles the per-class and per-package data handed to the renderer.
package genctx

import (
	"path"
	"strconv"
	"strings"

	"git.weirdcat.su/weirdcat/vogen/internal/accessor"
	"git.weirdcat.su/weirdcat/vogen/internal/types"
	"git.weirdcat.su/weirdcat/vogen/internal/walker"
)

const (
	// DerivedSuffix is appended to every source type name
	DerivedSuffix = "VO"
	// DerivedSubPackage is appended to every source package
	DerivedSubPackage = "vo"
	// FileExt is the suffix of generated files
	FileExt = ".go"
)

// ClassContext is everything the class template needs for one value object
type ClassContext struct {
	OriginalName      string
	DerivedName       string
	OriginalPackage   string
	DerivedPackage    string
	DerivedPackageDir string
	DerivedFileName   string

	// GoPackage is the package clause of the generated file
	GoPackage string
	// SourceGoPackage is the package clause of the source file
	SourceGoPackage   string
	SourceImportPath  string
	DerivedImportPath string

	Fields []accessor.EligibleField
	// Imports lists the source imports referenced by Fields
	Imports []types.ImportSpec
}

// QualifiedName is the key of the class inside its package context
func (c ClassContext) QualifiedName() string {
	return c.OriginalPackage + "." + c.OriginalName
}

// DerivedName returns name + DerivedSuffix
func DerivedName(name string) string {
	return name + DerivedSuffix
}

// DerivedPackage returns pkg + "." + DerivedSubPackage
func DerivedPackage(pkg string) string {
	return pkg + "." + DerivedSubPackage
}

// LastSegment returns the final element of a dotted package name
func LastSegment(pkg string) string {
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}

// NewClassContext derives the names and paths of the value object for class.
// It is a pure function of its arguments.
func NewClassContext(
	class types.ClassDescriptor,
	sourceGoPackage string,
	fields []accessor.EligibleField,
	imports []types.ImportSpec,
	resolver *ImportResolver,
) ClassContext {
	derivedName := DerivedName(class.Name)
	derivedPackage := DerivedPackage(class.Package)

	return ClassContext{
		OriginalName:      class.Name,
		DerivedName:       derivedName,
		OriginalPackage:   class.Package,
		DerivedPackage:    derivedPackage,
		DerivedPackageDir: walker.PackagePath(derivedPackage),
		DerivedFileName:   derivedName + FileExt,
		GoPackage:         DerivedSubPackage,
		SourceGoPackage:   sourceGoPackage,
		SourceImportPath:  resolver.Source(class.Package),
		DerivedImportPath: resolver.Output(derivedPackage),
		Fields:            fields,
		Imports:           UsedImports(fields, imports),
	}
}

// ConverterEntry is one class as seen from the converter file
type ConverterEntry struct {
	Key   string
	Class ClassContext
	// SourceType and VOType are the type expressions usable inside the converter file
	SourceType string
	VOType     string
	// ToFunc and FromFunc name the two conversion functions
	ToFunc   string
	FromFunc string
}

// PackageContext aggregates the classes of one source package in encounter order
type PackageContext struct {
	Package           string
	DefaultPackage    string
	DefaultGoPackage  string
	DefaultImportPath string
	DefaultPackageDir string
	FileName          string
	// FuncPrefix is inserted into the conversion function names so packages
	// sharing the converter package do not clash
	FuncPrefix string

	keys    []string
	classes map[string]ClassContext
}

// NewPackageContext creates an empty aggregate for pkg whose converter is
// written to fileName inside defaultPackage
func NewPackageContext(pkg, defaultPackage, fileName string, resolver *ImportResolver) *PackageContext {
	return &PackageContext{
		Package:           pkg,
		DefaultPackage:    defaultPackage,
		DefaultGoPackage:  LastSegment(defaultPackage),
		DefaultImportPath: resolver.Output(defaultPackage),
		DefaultPackageDir: walker.PackagePath(defaultPackage),
		FileName:          fileName,
		classes:           make(map[string]ClassContext),
	}
}

// Put stores c under its qualified name. Re-putting a key replaces the value
// but keeps its original position.
func (p *PackageContext) Put(c ClassContext) {
	key := c.QualifiedName()
	if _, exists := p.classes[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.classes[key] = c
}

// Get looks up a class by qualified name
func (p *PackageContext) Get(key string) (ClassContext, bool) {
	c, ok := p.classes[key]
	return c, ok
}

// Len returns the number of classes
func (p *PackageContext) Len() int {
	return len(p.keys)
}

// Keys returns the qualified names in encounter order
func (p *PackageContext) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Classes returns the class contexts in encounter order
func (p *PackageContext) Classes() []ClassContext {
	out := make([]ClassContext, 0, len(p.keys))
	for _, key := range p.keys {
		out = append(out, p.classes[key])
	}
	return out
}

// Entries returns the classes with the type expressions used by the converter
func (p *PackageContext) Entries() []ConverterEntry {
	srcAlias, voAlias := p.aliases()

	out := make([]ConverterEntry, 0, len(p.keys))
	for _, key := range p.keys {
		c := p.classes[key]
		out = append(out, ConverterEntry{
			Key:        key,
			Class:      c,
			SourceType: qualify(srcAlias, c.OriginalName),
			VOType:     qualify(voAlias, c.DerivedName),
			ToFunc:     "To" + p.FuncPrefix + c.DerivedName,
			FromFunc:   "From" + p.FuncPrefix + c.DerivedName,
		})
	}
	return out
}

// Imports returns the imports of the converter file. A package that is the
// converter's own package is not imported.
func (p *PackageContext) Imports() []types.ImportSpec {
	if len(p.keys) == 0 {
		return []types.ImportSpec{}
	}

	first := p.classes[p.keys[0]]
	srcAlias, voAlias := p.aliases()

	imports := []types.ImportSpec{}
	if srcAlias != "" {
		imports = append(imports, importFor(first.SourceImportPath, srcAlias))
	}
	if voAlias != "" {
		imports = append(imports, importFor(first.DerivedImportPath, voAlias))
	}
	return imports
}

// PackageClause is the package name of the converter file. It follows the
// source package clause when the converter is written into that package.
func (p *PackageContext) PackageClause() string {
	if len(p.keys) > 0 {
		first := p.classes[p.keys[0]]
		if first.SourceImportPath == p.DefaultImportPath && first.SourceGoPackage != "" {
			return first.SourceGoPackage
		}
	}
	return p.DefaultGoPackage
}

// aliases picks the package qualifiers used in the converter file. An empty
// alias means the package is the converter's own.
func (p *PackageContext) aliases() (src, vo string) {
	if len(p.keys) == 0 {
		return "", ""
	}
	first := p.classes[p.keys[0]]

	if first.SourceImportPath != p.DefaultImportPath {
		src = first.SourceGoPackage
		if src == "" {
			src = LastSegment(first.OriginalPackage)
		}
	}
	if first.DerivedImportPath != p.DefaultImportPath {
		vo = first.GoPackage
		if vo == src {
			vo = src + DerivedSubPackage
		}
	}
	return src, vo
}

func qualify(alias, name string) string {
	if alias == "" {
		return name
	}
	return alias + "." + name
}

func importFor(importPath, alias string) types.ImportSpec {
	spec := types.ImportSpec{Path: importPath}
	if AssumedName(importPath) != alias {
		spec.Name = alias
	}
	return spec
}

// ConverterFileName returns the converter file for pkg. When several packages
// share the default package each one gets its own file.
func ConverterFileName(base, pkg string, shared bool) string {
	if !shared {
		return base
	}
	return strings.ReplaceAll(pkg, ".", "_") + "_" + path.Base(base)
}

// FuncPrefixes assigns every package a distinct CamelCase prefix for its
// conversion functions. A single package needs none.
func FuncPrefixes(packages []string) map[string]string {
	prefixes := make(map[string]string, len(packages))
	if len(packages) < 2 {
		for _, pkg := range packages {
			prefixes[pkg] = ""
		}
		return prefixes
	}

	used := make(map[string]bool, len(packages))
	for _, pkg := range packages {
		if _, done := prefixes[pkg]; done {
			continue
		}

		var b strings.Builder
		for _, segment := range strings.Split(pkg, ".") {
			b.WriteString(accessor.Capitalize(segment))
		}
		prefix := b.String()
		for n := 2; used[prefix]; n++ {
			prefix = b.String() + strconv.Itoa(n)
		}

		used[prefix] = true
		prefixes[pkg] = prefix
	}
	return prefixes
}
