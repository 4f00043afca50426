// Package walker lists the source files of a package directory.
package walker

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"git.weirdcat.su/weirdcat/vogen/internal/failure"
)

// SourceExt is the suffix of files considered source files
const SourceExt = ".go"

// DefaultExclude skips test files
var DefaultExclude = []string{"*_test.go"}

// Options tunes file selection
type Options struct {
	// Exclude holds doublestar patterns matched against file base names
	Exclude []string
}

// PackageDir maps a dotted package name onto a directory below root
func PackageDir(root, pkg string) string {
	return filepath.Join(root, PackagePath(pkg))
}

// PackagePath converts a dotted package name to a slash separated path
func PackagePath(pkg string) string {
	return strings.ReplaceAll(pkg, ".", "/")
}

// ListSourceFiles returns the source files directly inside the directory of pkg.
// Sub-packages are not visited. Files come back sorted by name.
func ListSourceFiles(fs afero.Fs, root, pkg string, opts Options) ([]string, error) {
	dir := PackageDir(root, pkg)

	info, err := fs.Stat(dir)
	if err != nil {
		return nil, failure.IO("stat", dir, err)
	}
	if !info.IsDir() {
		return nil, &failure.IoError{Op: "stat", Path: dir, Err: errNotDir}
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, failure.IO("readdir", dir, err)
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SourceExt) {
			continue
		}
		if excluded(entry.Name(), opts.Exclude) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		// patterns are validated up front by ValidatePatterns
		if ok, _ := doublestar.Match(pattern, path.Base(name)); ok {
			return true
		}
	}
	return false
}

// ValidatePatterns reports the first malformed exclude pattern
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return &invalidPatternError{pattern: pattern}
		}
	}
	return nil
}
