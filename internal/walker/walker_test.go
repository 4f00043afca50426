package walker

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.weirdcat.su/weirdcat/vogen/internal/failure"
)

func writeFiles(t *testing.T, fs afero.Fs, files ...string) {
	t.Helper()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("package x\n"), 0o644))
	}
}

func TestPackagePath(t *testing.T) {
	assert.Equal(t, "a/b/c", PackagePath("a.b.c"))
	assert.Equal(t, "model", PackagePath("model"))
	assert.Equal(t, filepath.Join("/src", "a", "b"), PackageDir("/src", "a.b"))
}

func TestListSourceFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs,
		"/src/a/b/user.go",
		"/src/a/b/account.go",
		"/src/a/b/user_test.go",
		"/src/a/b/README.md",
		"/src/a/b/nested/deep.go",
		"/src/a/other.go",
	)

	t.Run("Should list direct go files sorted and skip sub-packages", func(t *testing.T) {
		files, err := ListSourceFiles(fs, "/src", "a.b", Options{Exclude: DefaultExclude})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join("/src", "a", "b", "account.go"),
			filepath.Join("/src", "a", "b", "user.go"),
		}, files)
	})

	t.Run("Should include test files without exclude patterns", func(t *testing.T) {
		files, err := ListSourceFiles(fs, "/src", "a.b", Options{})
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("Should honour custom exclude globs", func(t *testing.T) {
		files, err := ListSourceFiles(fs, "/src", "a.b", Options{Exclude: []string{"*_test.go", "acc*"}})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join("/src", "a", "b", "user.go")}, files)
	})

	t.Run("Should return an empty list for a package without sources", func(t *testing.T) {
		require.NoError(t, fs.MkdirAll("/src/empty", 0o755))
		files, err := ListSourceFiles(fs, "/src", "empty", Options{})
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("Should fail with an IoError when the directory is missing", func(t *testing.T) {
		_, err := ListSourceFiles(fs, "/src", "does.not.exist", Options{})

		var ioErr *failure.IoError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, filepath.Join("/src", "does", "not", "exist"), ioErr.Path)
	})

	t.Run("Should fail with an IoError when the package path is a file", func(t *testing.T) {
		writeFiles(t, fs, "/src/notadir")
		_, err := ListSourceFiles(fs, "/src", "notadir", Options{})

		var ioErr *failure.IoError
		assert.True(t, errors.As(err, &ioErr))
	})
}

func TestValidatePatterns(t *testing.T) {
	assert.NoError(t, ValidatePatterns([]string{"*_test.go", "zz_*.go"}))
	assert.Error(t, ValidatePatterns([]string{"[abc"}))
}
