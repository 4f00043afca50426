package render

import (
	"errors"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.weirdcat.su/weirdcat/vogen/internal/accessor"
	"git.weirdcat.su/weirdcat/vogen/internal/failure"
	"git.weirdcat.su/weirdcat/vogen/internal/genctx"
	"git.weirdcat.su/weirdcat/vogen/internal/types"
)

func userContext() genctx.ClassContext {
	class := types.ClassDescriptor{Name: "User", Package: "a.b"}
	fields := []accessor.EligibleField{
		{Name: "birthday", Type: "time.Time", Getter: "GetBirthday", Setter: "SetBirthday"},
		{Name: "i", Type: "int", Getter: "GetI", Setter: "SetI"},
		{Name: "active", Type: "bool", Getter: "IsActive", Setter: "SetActive"},
	}
	imports := []types.ImportSpec{{Path: "time"}, {Path: "strings"}}
	return genctx.NewClassContext(class, "model", fields, imports, genctx.StaticResolver("example.com/app", "example.com/app/gen"))
}

func assertValidGo(t *testing.T, src []byte) {
	t.Helper()
	_, err := parser.ParseFile(token.NewFileSet(), "out.go", src, parser.AllErrors)
	require.NoError(t, err, string(src))
}

func TestTemplateEngine_Class(t *testing.T) {
	engine, err := NewTemplateEngine(TemplateOptions{})
	require.NoError(t, err)

	out, err := engine.Render(ClassTemplate, userContext())
	require.NoError(t, err)
	assertValidGo(t, out)

	src := string(out)
	t.Run("Should emit the value object in the vo package", func(t *testing.T) {
		assert.Contains(t, src, "// Code generated by vogen. DO NOT EDIT.")
		assert.Contains(t, src, "package vo\n")
		assert.Contains(t, src, "type UserVO struct {")
		assert.Contains(t, src, "\"time\"")
		assert.NotContains(t, src, "\"strings\"")
	})

	t.Run("Should emit accessors for every field", func(t *testing.T) {
		assert.Contains(t, src, "func (v *UserVO) GetBirthday() time.Time {")
		assert.Contains(t, src, "func (v *UserVO) SetBirthday(value time.Time) {")
		assert.Contains(t, src, "func (v *UserVO) IsActive() bool {")
		assert.Contains(t, src, "func (v *UserVO) SetActive(value bool) {")
		assert.NotContains(t, src, "MethodToIgnore")
	})

	t.Run("Should be byte-for-byte reproducible", func(t *testing.T) {
		again, err := engine.Render(ClassTemplate, userContext())
		require.NoError(t, err)
		assert.Equal(t, out, again)
	})
}

func TestTemplateEngine_Package(t *testing.T) {
	engine, err := NewTemplateEngine(TemplateOptions{})
	require.NoError(t, err)

	resolver := genctx.StaticResolver("example.com/app", "example.com/app/gen")
	pc := genctx.NewPackageContext("a.b", "conv", "vo.go", resolver)
	pc.Put(userContext())
	pc.Put(genctx.NewClassContext(types.ClassDescriptor{Name: "Account", Package: "a.b"}, "model", nil, nil, resolver))

	out, err := engine.Render(PackageTemplate, pc)
	require.NoError(t, err)
	assertValidGo(t, out)

	src := string(out)
	assert.Contains(t, src, "package conv\n")
	assert.Contains(t, src, `model "example.com/app/a/b"`)
	assert.Contains(t, src, `"example.com/app/gen/a/b/vo"`)
	assert.Contains(t, src, "func ToUserVO(o *model.User) *vo.UserVO {")
	assert.Contains(t, src, "func FromUserVO(v *vo.UserVO) *model.User {")
	assert.Contains(t, src, "func ToAccountVO(o *model.Account) *vo.AccountVO {")
	assert.Less(t, strings.Index(src, "ToUserVO"), strings.Index(src, "ToAccountVO"))
}

func TestTemplateEngine_Errors(t *testing.T) {
	t.Run("Should reject unknown template names", func(t *testing.T) {
		engine, err := NewTemplateEngine(TemplateOptions{})
		require.NoError(t, err)

		_, err = engine.Render("missing.tmpl", nil)

		var renderErr *failure.RenderError
		require.True(t, errors.As(err, &renderErr))
		assert.Equal(t, "missing.tmpl", renderErr.Template)
		assert.ErrorIs(t, err, ErrUnknownTemplate)
	})

	t.Run("Should report binding failures", func(t *testing.T) {
		engine, err := NewTemplateEngine(TemplateOptions{})
		require.NoError(t, err)

		_, err = engine.Render(ClassTemplate, struct{}{})

		var renderErr *failure.RenderError
		assert.True(t, errors.As(err, &renderErr))
	})

	t.Run("Should fail construction on a broken override", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/tpl/vo.go.tmpl", []byte("{{ .Unclosed "), 0o644))

		_, err := NewTemplateEngine(TemplateOptions{Dir: "/tpl", Fs: fs})

		var renderErr *failure.RenderError
		assert.True(t, errors.As(err, &renderErr))
	})

	t.Run("Should fail construction on a missing override dir", func(t *testing.T) {
		_, err := NewTemplateEngine(TemplateOptions{Dir: "/nope", Fs: afero.NewMemMapFs()})
		assert.Error(t, err)
	})

	t.Run("Should reject output that is not Go", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/tpl/vo.go.tmpl", []byte("this is not go"), 0o644))
		engine, err := NewTemplateEngine(TemplateOptions{Dir: "/tpl", Fs: fs})
		require.NoError(t, err)

		_, err = engine.Render(ClassTemplate, userContext())

		var renderErr *failure.RenderError
		assert.True(t, errors.As(err, &renderErr))
	})
}

func TestTemplateEngine_Override(t *testing.T) {
	fs := afero.NewMemMapFs()
	override := "package {{ .GoPackage }}\n\n// {{ .DerivedName }} overrides the built-in template.\ntype {{ .DerivedName }} struct{}\n"
	require.NoError(t, afero.WriteFile(fs, "/tpl/vo.go.tmpl", []byte(override), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/tpl/notes.txt", []byte("ignored"), 0o644))

	engine, err := NewTemplateEngine(TemplateOptions{Dir: "/tpl", Fs: fs})
	require.NoError(t, err)

	out, err := engine.Render(ClassTemplate, userContext())
	require.NoError(t, err)
	assert.Contains(t, string(out), "UserVO overrides the built-in template")

	pc := genctx.NewPackageContext("a.b", "a.b.vo", "vo.go", genctx.StaticResolver("", ""))
	out, err = engine.Render(PackageTemplate, pc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "package vo")
}

func TestFormat(t *testing.T) {
	out, err := Format("x.go", []byte("package x\nimport (\n\"strings\"\n\"fmt\"\n)\nvar _ = fmt.Sprint\nvar _ = strings.TrimSpace\n"))
	require.NoError(t, err)
	assertValidGo(t, out)
	assert.Contains(t, string(out), "import (\n\t\"fmt\"\n\t\"strings\"\n)")
}
