// Package render turns generation contexts into Go source text.
package render

import (
	"errors"

	"golang.org/x/tools/imports"

	"git.weirdcat.su/weirdcat/vogen/internal/failure"
)

// Identifiers of the two artifacts every renderer must produce
const (
	ClassTemplate   = "vo.go.tmpl"
	PackageTemplate = "converter.go.tmpl"
)

// ErrUnknownTemplate is returned for names a renderer does not know
var ErrUnknownTemplate = errors.New("unknown template")

// Renderer produces formatted Go source for a named artifact
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

// Format gofmts src and sorts its import block. Imports are neither added nor
// removed, so the result only depends on src.
func Format(name string, src []byte) ([]byte, error) {
	out, err := imports.Process(name, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, &failure.RenderError{Template: name, Err: err}
	}
	return out, nil
}
