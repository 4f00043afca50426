package render

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/afero"

	"git.weirdcat.su/weirdcat/vogen/internal/failure"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// TemplateOptions configures a TemplateEngine
type TemplateOptions struct {
	// Dir holds *.tmpl files that replace built-in templates of the same name
	Dir string
	Fs  afero.Fs
}

// TemplateEngine renders artifacts from text/template sources
type TemplateEngine struct {
	tmpl *template.Template
}

var _ Renderer = (*TemplateEngine)(nil)

// NewTemplateEngine parses the built-in templates and any overrides.
func NewTemplateEngine(opts TemplateOptions) (*TemplateEngine, error) {
	tmpl, err := template.New("vogen").
		Funcs(templateFuncs()).
		Option("missingkey=error").
		ParseFS(builtin, "templates/*.tmpl")
	if err != nil {
		return nil, &failure.RenderError{Template: "built-in", Err: err}
	}

	if opts.Dir != "" {
		if err := parseOverrides(tmpl, opts); err != nil {
			return nil, err
		}
	}

	return &TemplateEngine{tmpl: tmpl}, nil
}

// Render executes the named template with data and formats the result
func (e *TemplateEngine) Render(name string, data any) ([]byte, error) {
	t := e.tmpl.Lookup(name)
	if t == nil {
		return nil, &failure.RenderError{Template: name, Err: ErrUnknownTemplate}
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, &failure.RenderError{Template: name, Err: err}
	}

	return Format(name, buf.Bytes())
}

func parseOverrides(tmpl *template.Template, opts TemplateOptions) error {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	entries, err := afero.ReadDir(fs, opts.Dir)
	if err != nil {
		return &failure.RenderError{Template: opts.Dir, Err: fmt.Errorf("reading template dir: %w", err)}
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}

		path := filepath.Join(opts.Dir, entry.Name())
		src, err := afero.ReadFile(fs, path)
		if err != nil {
			return &failure.RenderError{Template: entry.Name(), Err: err}
		}
		if _, err := tmpl.New(entry.Name()).Parse(string(src)); err != nil {
			return &failure.RenderError{Template: entry.Name(), Err: err}
		}
	}
	return nil
}

// templateFuncs returns sprig's text functions plus generator helpers
func templateFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["importLine"] = func(name, path string) string {
		if name == "" {
			return fmt.Sprintf("%q", path)
		}
		return fmt.Sprintf("%s %q", name, path)
	}
	return funcs
}
