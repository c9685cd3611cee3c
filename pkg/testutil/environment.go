package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// EnvPrefix is the prefix of environment variables read by the config layer
const EnvPrefix = "CMDCORRECT_"

// TestEnvironment isolates a test from the user's configuration and state
type TestEnvironment struct {
	WorkDir    string
	ConfigHome string
	StateHome  string

	t *testing.T
}

// NewTestEnvironment points XDG_CONFIG_HOME and XDG_STATE_HOME at temp
// directories, clears CMDCORRECT_* variables and, when chdir is set, makes
// WorkDir the working directory until the test ends.
func NewTestEnvironment(t *testing.T, chdir bool) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		WorkDir:    t.TempDir(),
		ConfigHome: t.TempDir(),
		StateHome:  t.TempDir(),
		t:          t,
	}
	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_STATE_HOME", env.StateHome)

	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, EnvPrefix) {
			continue
		}
		key := strings.SplitN(kv, "=", 2)[0]
		// Setenv restores the old value on cleanup
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	if chdir {
		prev, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(env.WorkDir))
		t.Cleanup(func() { _ = os.Chdir(prev) })
	}
	return env
}

// Path joins parts onto WorkDir
func (env *TestEnvironment) Path(parts ...string) string {
	return filepath.Join(append([]string{env.WorkDir}, parts...)...)
}

// WithFileTree creates tree below WorkDir
func (env *TestEnvironment) WithFileTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	CreateFileTree(env.t, env.WorkDir, tree)
	return env
}

// FileTree maps names to file contents (string) or subdirectories (FileTree)
type FileTree map[string]interface{}

// CreateFileTree recursively creates tree below basePath
func CreateFileTree(t *testing.T, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			CreateFile(t, basePath, name, v)
		case FileTree:
			require.NoError(t, os.MkdirAll(fullPath, 0755))
			CreateFileTree(t, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
