// Package generator builds value objects and converters as jennifer syntax
// trees instead of text templates.
package generator

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"git.weirdcat.su/weirdcat/vogen/internal/failure"
	"git.weirdcat.su/weirdcat/vogen/internal/genctx"
	"git.weirdcat.su/weirdcat/vogen/internal/render"
	"git.weirdcat.su/weirdcat/vogen/internal/types"
)

const (
	classHeader     = "Code generated by vogen. DO NOT EDIT."
	converterHeader = "Code generated by vogen. The conversion bodies are stubs."
)

// JenRenderer renders the same artifacts as the template engine
type JenRenderer struct{}

var _ render.Renderer = (*JenRenderer)(nil)

// New creates a JenRenderer
func New() *JenRenderer {
	return &JenRenderer{}
}

// Render accepts a genctx.ClassContext for render.ClassTemplate and a
// *genctx.PackageContext for render.PackageTemplate
func (r *JenRenderer) Render(name string, data any) ([]byte, error) {
	switch name {
	case render.ClassTemplate:
		switch ctx := data.(type) {
		case genctx.ClassContext:
			return save(name, GenerateValueObject(ctx))
		case *genctx.ClassContext:
			return save(name, GenerateValueObject(*ctx))
		}
	case render.PackageTemplate:
		if pc, ok := data.(*genctx.PackageContext); ok {
			return save(name, GenerateConverters(pc))
		}
	default:
		return nil, &failure.RenderError{Template: name, Err: render.ErrUnknownTemplate}
	}
	return nil, &failure.RenderError{Template: name, Err: fmt.Errorf("unexpected data %T", data)}
}

func save(name string, f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, &failure.RenderError{Template: name, Err: err}
	}
	return render.Format(name, buf.Bytes())
}

// GenerateValueObject builds the file holding one value object and its accessors
func GenerateValueObject(ctx genctx.ClassContext) *jen.File {
	f := jen.NewFilePathName(ctx.DerivedImportPath, ctx.GoPackage)
	f.HeaderComment(classHeader)
	registerImports(f, ctx.Imports)

	fieldTypes := make([]jen.Code, len(ctx.Fields))
	for i, field := range ctx.Fields {
		fieldTypes[i] = TypeCode(field.Type, ctx.Imports)
	}

	f.Comment(fmt.Sprintf("%s is the value object of %s.%s.", ctx.DerivedName, ctx.SourceGoPackage, ctx.OriginalName))
	f.Type().Id(ctx.DerivedName).StructFunc(func(g *jen.Group) {
		for i, field := range ctx.Fields {
			g.Id(field.Name).Add(fieldTypes[i])
		}
	})

	for i, field := range ctx.Fields {
		f.Line()
		f.Func().Params(
			jen.Id("v").Op("*").Id(ctx.DerivedName),
		).Id(field.Getter).Params().Add(fieldTypes[i]).Block(
			jen.Return(jen.Id("v").Dot(field.Name)),
		)

		f.Line()
		f.Func().Params(
			jen.Id("v").Op("*").Id(ctx.DerivedName),
		).Id(field.Setter).Params(
			jen.Id("value").Add(fieldTypes[i]),
		).Block(
			jen.Id("v").Dot(field.Name).Op("=").Id("value"),
		)
	}

	return f
}

// GenerateConverters builds the converter file of one source package
func GenerateConverters(pc *genctx.PackageContext) *jen.File {
	f := jen.NewFilePathName(pc.DefaultImportPath, pc.PackageClause())
	f.HeaderComment(converterHeader)
	registerImports(f, pc.Imports())

	for _, entry := range pc.Entries() {
		c := entry.Class
		source := jen.Op("*").Qual(c.SourceImportPath, c.OriginalName)
		derived := jen.Op("*").Qual(c.DerivedImportPath, c.DerivedName)

		f.Comment(fmt.Sprintf("%s converts a %s into a %s.", entry.ToFunc, entry.SourceType, entry.VOType))
		f.Func().Id(entry.ToFunc).Params(
			jen.Id("o").Add(source),
		).Add(derived).Block(
			jen.Return(jen.Nil()),
		)

		f.Line()

		f.Comment(fmt.Sprintf("%s converts a %s back into a %s.", entry.FromFunc, entry.VOType, entry.SourceType))
		f.Func().Id(entry.FromFunc).Params(
			jen.Id("v").Add(derived),
		).Add(source).Block(
			jen.Return(jen.Nil()),
		)

		f.Line()
	}

	return f
}

// registerImports pins the package names jennifer uses to the ones the type
// text was written against
func registerImports(f *jen.File, imports []types.ImportSpec) {
	for _, imp := range imports {
		if imp.Name != "" {
			f.ImportAlias(imp.Path, imp.Name)
		} else {
			f.ImportName(imp.Path, genctx.AssumedName(imp.Path))
		}
	}
}
