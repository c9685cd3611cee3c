package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestEnvironment(t *testing.T) {
	t.Setenv("CMDCORRECT_OUTPUT_FORMAT", "json")

	env := NewTestEnvironment(t, true)

	assert.Equal(t, env.ConfigHome, os.Getenv("XDG_CONFIG_HOME"))
	assert.Equal(t, env.StateHome, os.Getenv("XDG_STATE_HOME"))
	_, set := os.LookupEnv("CMDCORRECT_OUTPUT_FORMAT")
	assert.False(t, set)

	wd, err := os.Getwd()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(env.WorkDir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWithFileTree(t *testing.T) {
	env := NewTestEnvironment(t, false)
	env.WithFileTree(FileTree{
		"rules.toml": "[[rules]]\n",
		"functions": FileTree{
			"load.mcfunction": "say hi\n",
			"nested":          FileTree{"a.mcfunction": ""},
		},
	})

	AssertFileContent(t, env.Path("rules.toml"), "[[rules]]\n")
	AssertFileContent(t, env.Path("functions", "load.mcfunction"), "say hi\n")
	assert.FileExists(t, env.Path("functions", "nested", "a.mcfunction"))
	assert.Equal(t, "say hi\n", ReadFile(t, env.Path("functions", "load.mcfunction")))
}

func TestCreateFile_MakesParents(t *testing.T) {
	dir := t.TempDir()
	path := CreateFile(t, dir, filepath.Join("a", "b", "c.txt"), "x")
	AssertFileContent(t, path, "x")
}
