// Package failure defines the error taxonomy of a generation pass.
package failure

import "fmt"

// IoError reports a filesystem failure while reading sources or writing output
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// ParseError reports a source file that could not be parsed
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RenderError reports a template that is missing or failed to execute
type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Template, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// GenerationError wraps the fatal cause of a failed pass. Package is empty
// when the failure happened outside package processing (cleanup, setup).
type GenerationError struct {
	Package string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Package == "" {
		return fmt.Sprintf("generation failed: %v", e.Err)
	}
	return fmt.Sprintf("generation failed for package %s: %v", e.Package, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IO builds an IoError, returning nil when err is nil
func IO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IoError{Op: op, Path: path, Err: err}
}
