package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestReadLines(t *testing.T) {
	t.Run("splits on newlines without trimming content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.log")
		writeFile(t, path, "first\n  indented second  \nthird\n")

		lines, err := ReadLines(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "  indented second  ", "third"}, lines)
	})

	t.Run("missing trailing newline keeps last line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.log")
		writeFile(t, path, "only line")

		lines, err := ReadLines(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"only line"}, lines)
	})

	t.Run("empty file yields no lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.log")
		writeFile(t, path, "")

		lines, err := ReadLines(path)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("long lines survive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.log")
		long := strings.Repeat("x", 200*1024)
		writeFile(t, path, long+"\n")

		lines, err := ReadLines(path)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Len(t, lines[0], 200*1024)
	})

	t.Run("missing file propagates the error", func(t *testing.T) {
		_, err := ReadLines(filepath.Join(t.TempDir(), "nope.log"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build.log"), "a\n")
	writeFile(t, filepath.Join(dir, "nested", "unit.log"), "b\n")
	writeFile(t, filepath.Join(dir, "nested", "notes.txt"), "c\n")

	t.Run("literal paths pass through", func(t *testing.T) {
		paths, err := Resolve([]string{filepath.Join(dir, "missing.log")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "missing.log")}, paths)
	})

	t.Run("doublestar matches recursively", func(t *testing.T) {
		paths, err := Resolve([]string{filepath.Join(dir, "**", "*.log")})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "build.log"),
			filepath.Join(dir, "nested", "unit.log"),
		}, paths)
	})

	t.Run("glob with no matches fails", func(t *testing.T) {
		_, err := Resolve([]string{filepath.Join(dir, "*.missing")})
		assert.Error(t, err)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		p := filepath.Join(dir, "build.log")
		paths, err := Resolve([]string{p, p, filepath.Join(dir, "*.log")})
		require.NoError(t, err)
		assert.Equal(t, []string{p}, paths)
	})
}
