package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	assert.False(t, DirectoryExists(dir))
	require.NoError(t, EnsureDir(dir))
	assert.True(t, DirectoryExists(dir))
	require.NoError(t, EnsureDir(dir))
}

func TestReadNonEmptyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.txt")
	require.NoError(t, os.WriteFile(path, []byte("# openai\n\n  sk-test  \n"), 0o600))

	lines, err := ReadNonEmptyLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"sk-test"}, lines)
}

func TestFindProjectRoot(t *testing.T) {
	root, err := FindProjectRoot()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, err)
}
