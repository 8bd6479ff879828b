package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("state_code: SP\n"), 0o600))
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"))
	writeFile(t, filepath.Join(root, "nfekey.yaml"))
	nested := filepath.Join(root, "cmd", "nfekey")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindConfigFile(nested, "nfekey.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "nfekey.yaml"), found)
}

func TestFindConfigFile_PrefersNearest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"))
	writeFile(t, filepath.Join(root, "nfekey.yaml"))
	writeFile(t, filepath.Join(root, "sub", "nfekey.yaml"))

	found, err := FindConfigFile(filepath.Join(root, "sub"), "nfekey.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sub", "nfekey.yaml"), found)
}

func TestFindConfigFile_StopsAtModuleRoot(t *testing.T) {
	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, "nfekey.yaml"))
	module := filepath.Join(outer, "module")
	writeFile(t, filepath.Join(module, "go.mod"))

	_, err := FindConfigFile(module, "nfekey.yaml")
	assert.Error(t, err)
}

func TestFindConfigFile_IgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nfekey.yaml"), 0o755))

	_, err := FindConfigFile(root, "nfekey.yaml")
	assert.Error(t, err)
}
