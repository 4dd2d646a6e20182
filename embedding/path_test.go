package embedding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(plain, []byte("a 1\n"), 0o644))
	compressed := filepath.Join(dir, "model")
	require.NoError(t, os.WriteFile(compressed+".bz2", []byte("x"), 0o644))
	both := filepath.Join(dir, "both")
	require.NoError(t, os.WriteFile(both, []byte("a 1\n"), 0o644))
	require.NoError(t, os.WriteFile(both+".bz2", []byte("x"), 0o644))

	t.Run("literal path", func(t *testing.T) {
		got, err := ResolvePath(plain)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	})

	t.Run("compressed suffix", func(t *testing.T) {
		got, err := ResolvePath(compressed)
		require.NoError(t, err)
		assert.Equal(t, compressed+".bz2", got)
	})

	t.Run("literal wins over suffix", func(t *testing.T) {
		got, err := ResolvePath(both)
		require.NoError(t, err)
		assert.Equal(t, both, got)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ResolvePath(filepath.Join(dir, "absent"))
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("directory is not a file", func(t *testing.T) {
		_, err := ResolvePath(dir)
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ResolvePath("")
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}
