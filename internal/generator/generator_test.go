package generator

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.weirdcat.su/weirdcat/vogen/internal/accessor"
	"git.weirdcat.su/weirdcat/vogen/internal/failure"
	"git.weirdcat.su/weirdcat/vogen/internal/genctx"
	"git.weirdcat.su/weirdcat/vogen/internal/render"
	"git.weirdcat.su/weirdcat/vogen/internal/types"
)

var resolver = genctx.StaticResolver("example.com/app", "example.com/app/gen")

func field(name, typ string) accessor.EligibleField {
	fd := types.FieldDescriptor{Name: name, Type: typ}
	return accessor.EligibleField{Name: name, Type: typ, Getter: accessor.GetterName(fd), Setter: accessor.SetterName(fd)}
}

func holderContext() genctx.ClassContext {
	class := types.ClassDescriptor{Name: "Holder", Package: "a.b"}
	fields := []accessor.EligibleField{
		field("birthday", "*time.Time"),
		field("tags", "map[string][]string"),
		field("events", "<-chan int"),
		field("handler", "func(int, string) error"),
		field("message", "pb.Message"),
		field("box", "Box[int]"),
		field("any", "interface{}"),
		field("active", "bool"),
	}
	imports := []types.ImportSpec{
		{Path: "time"},
		{Name: "pb", Path: "example.com/proto/v2"},
		{Path: "strings"},
	}
	return genctx.NewClassContext(class, "model", fields, imports, resolver)
}

func parseGo(t *testing.T, src []byte) {
	t.Helper()
	_, err := parser.ParseFile(token.NewFileSet(), "out.go", src, parser.AllErrors)
	require.NoError(t, err, string(src))
}

func TestJenRenderer_ValueObject(t *testing.T) {
	out, err := New().Render(render.ClassTemplate, holderContext())
	require.NoError(t, err)
	parseGo(t, out)

	src := string(out)
	t.Run("Should emit header and package", func(t *testing.T) {
		assert.Contains(t, src, "// Code generated by vogen. DO NOT EDIT.")
		assert.Contains(t, src, "package vo\n")
		assert.Contains(t, src, "type HolderVO struct {")
	})

	t.Run("Should import only referenced packages", func(t *testing.T) {
		assert.Contains(t, src, `"time"`)
		assert.Contains(t, src, `pb "example.com/proto/v2"`)
		assert.NotContains(t, src, `"strings"`)
	})

	t.Run("Should keep the field types", func(t *testing.T) {
		assert.Contains(t, src, "func (v *HolderVO) GetBirthday() *time.Time {")
		assert.Contains(t, src, "func (v *HolderVO) SetTags(value map[string][]string) {")
		assert.Contains(t, src, "func (v *HolderVO) GetEvents() <-chan int {")
		assert.Contains(t, src, "func (v *HolderVO) GetHandler() func(int, string) error {")
		assert.Contains(t, src, "func (v *HolderVO) GetMessage() pb.Message {")
		assert.Contains(t, src, "func (v *HolderVO) GetBox() Box[int] {")
		assert.Contains(t, src, "func (v *HolderVO) IsActive() bool {")
		assert.Contains(t, src, "func (v *HolderVO) SetActive(value bool) {")
		assert.Contains(t, src, "v.active = value")
	})

	t.Run("Should accept a pointer context", func(t *testing.T) {
		ctx := holderContext()
		again, err := New().Render(render.ClassTemplate, &ctx)
		require.NoError(t, err)
		assert.Equal(t, out, again)
	})
}

func TestJenRenderer_Converters(t *testing.T) {
	t.Run("Should qualify both packages", func(t *testing.T) {
		pc := genctx.NewPackageContext("a.b", "conv", "vo.go", resolver)
		pc.Put(holderContext())

		out, err := New().Render(render.PackageTemplate, pc)
		require.NoError(t, err)
		parseGo(t, out)

		src := string(out)
		assert.Contains(t, src, "package conv\n")
		assert.Contains(t, src, `model "example.com/app/a/b"`)
		assert.Contains(t, src, `"example.com/app/gen/a/b/vo"`)
		assert.Contains(t, src, "func ToHolderVO(o *model.Holder) *vo.HolderVO {")
		assert.Contains(t, src, "func FromHolderVO(v *vo.HolderVO) *model.Holder {")
		assert.Contains(t, src, "return nil")
	})

	t.Run("Should leave its own package unqualified", func(t *testing.T) {
		shared := genctx.StaticResolver("example.com/app", "example.com/app")
		pc := genctx.NewPackageContext("a.b", "a.b", "vo.go", shared)
		pc.Put(genctx.NewClassContext(types.ClassDescriptor{Name: "User", Package: "a.b"}, "model", nil, nil, shared))

		out, err := New().Render(render.PackageTemplate, pc)
		require.NoError(t, err)
		parseGo(t, out)

		src := string(out)
		assert.Contains(t, src, "package model\n")
		assert.Contains(t, src, "func ToUserVO(o *User) *vo.UserVO {")
		assert.NotContains(t, src, `"example.com/app/a/b"`)
	})
}

func TestJenRenderer_Errors(t *testing.T) {
	t.Run("Should reject unknown names", func(t *testing.T) {
		_, err := New().Render("other.tmpl", nil)
		assert.ErrorIs(t, err, render.ErrUnknownTemplate)
	})

	t.Run("Should reject mismatched data", func(t *testing.T) {
		_, err := New().Render(render.PackageTemplate, holderContext())

		var renderErr *failure.RenderError
		require.True(t, errors.As(err, &renderErr))
		assert.Equal(t, render.PackageTemplate, renderErr.Template)
	})
}

func TestTypeCode(t *testing.T) {
	imports := []types.ImportSpec{{Path: "time"}, {Name: "pb", Path: "example.com/proto/v2"}}

	tests := []struct {
		typeText string
		expected string
	}{
		{"int", "int"},
		{"*time.Time", "*time.Time"},
		{"[]string", "[]string"},
		{"[4]byte", "[4]byte"},
		{"map[string]int", "map[string]int"},
		{"unknown.Thing", "unknown.Thing"},
		{"chan<- int", "chan<- int"},
	}

	for _, tt := range tests {
		t.Run(tt.typeText, func(t *testing.T) {
			assert.Equal(t, tt.expected, fmtCode(t, TypeCode(tt.typeText, imports)))
		})
	}
}

func fmtCode(t *testing.T, code jen.Code) string {
	t.Helper()
	f := jen.NewFile("x")
	f.Var().Id("_").Add(code)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf))

	for _, line := range strings.Split(buf.String(), "\n") {
		if rest, ok := strings.CutPrefix(line, "var _ "); ok {
			return rest
		}
	}
	return ""
}
