// Package emitter writes rendered artifacts below the output root.
package emitter

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"git.weirdcat.su/weirdcat/vogen/internal/failure"
	"git.weirdcat.su/weirdcat/vogen/internal/genctx"
	"git.weirdcat.su/weirdcat/vogen/internal/render"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Emitter renders contexts and writes the results under root. It never rolls
// back files already written.
type Emitter struct {
	fs       afero.Fs
	root     string
	renderer render.Renderer
}

// New creates an Emitter writing to root on fs
func New(fs afero.Fs, root string, renderer render.Renderer) *Emitter {
	return &Emitter{fs: fs, root: root, renderer: renderer}
}

// Clean removes everything inside the output root. The root itself is kept,
// and a missing root is not an error.
func (e *Emitter) Clean() error {
	entries, err := afero.ReadDir(e.fs, e.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return failure.IO("readdir", e.root, err)
	}

	for _, entry := range entries {
		target := filepath.Join(e.root, entry.Name())
		if err := e.fs.RemoveAll(target); err != nil {
			return failure.IO("remove", target, err)
		}
	}
	return nil
}

// EmitClass writes the value object of c and returns the written path
func (e *Emitter) EmitClass(c genctx.ClassContext) (string, error) {
	target := filepath.Join(e.root, c.DerivedPackageDir, c.DerivedFileName)
	return target, e.emit(render.ClassTemplate, c, target)
}

// EmitPackage writes the converter file of pc and returns the written path
func (e *Emitter) EmitPackage(pc *genctx.PackageContext) (string, error) {
	target := filepath.Join(e.root, pc.DefaultPackageDir, pc.FileName)
	return target, e.emit(render.PackageTemplate, pc, target)
}

func (e *Emitter) emit(name string, data any, target string) error {
	out, err := e.renderer.Render(name, data)
	if err != nil {
		return err
	}

	dir := filepath.Dir(target)
	if err := e.fs.MkdirAll(dir, dirMode); err != nil {
		return failure.IO("mkdir", dir, err)
	}
	if err := afero.WriteFile(e.fs, target, out, fileMode); err != nil {
		return failure.IO("write", target, err)
	}
	return nil
}
