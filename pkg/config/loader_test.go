package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
)

// isolate points every lookup location at empty temp directories
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	return t.TempDir()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	workDir := isolate(t)

	cfg, err := Load(LoadOptions{WorkDir: workDir})
	require.NoError(t, err)

	assert.Empty(t, cfg.Rules.Files)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.MatchTimeout)
	assert.Equal(t, runtime.NumCPU(), cfg.Engine.Workers)
	assert.Equal(t, 20, cfg.Notify.ContextWidth)
	assert.Equal(t, ">!<", cfg.Notify.Caret)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, "journal.toml", filepath.Base(cfg.Journal.Path))
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Empty(t, cfg.LoadedFrom)
}

func TestLoad_Layering(t *testing.T) {
	workDir := isolate(t)

	writeFile(t, UserConfigPath(), `
[engine]
workers = 2
match_timeout = "1s"

[output]
format = "plain"
`)
	writeFile(t, filepath.Join(workDir, ".cmdcorrect.toml"), `
[rules]
files = ["fixes.toml"]

[engine]
workers = 3
`)
	explicit := filepath.Join(t.TempDir(), "extra.yaml")
	writeFile(t, explicit, `
notify:
  context_width: 5
`)
	t.Setenv("CMDCORRECT_OUTPUT_FORMAT", "json")

	cfg, err := Load(LoadOptions{
		WorkDir:      workDir,
		ExplicitPath: explicit,
		Overrides:    map[string]interface{}{"notify.caret": "^"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Engine.Workers, "project overrides user")
	assert.Equal(t, time.Second, cfg.Engine.MatchTimeout, "user value survives")
	assert.Equal(t, []string{filepath.Join(workDir, "fixes.toml")}, cfg.Rules.Files)
	assert.Equal(t, 5, cfg.Notify.ContextWidth, "explicit yaml file applied")
	assert.Equal(t, "json", cfg.Output.Format, "environment overrides files")
	assert.Equal(t, "^", cfg.Notify.Caret, "overrides applied last")
	assert.Len(t, cfg.LoadedFrom, 3)
}

func TestLoad_EnvironmentKeys(t *testing.T) {
	workDir := isolate(t)
	t.Setenv("CMDCORRECT_ENGINE_MATCH_TIMEOUT", "2s")
	t.Setenv("CMDCORRECT_RULES_FILES", "/a.toml,/b.rules")

	cfg, err := Load(LoadOptions{WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Engine.MatchTimeout)
	assert.Equal(t, []string{"/a.toml", "/b.rules"}, cfg.Rules.Files)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		project string
		opts    LoadOptions
		code    errors.ErrorCode
	}{
		{
			name: "missing explicit file",
			opts: LoadOptions{ExplicitPath: "/does/not/exist.toml"},
			code: errors.ErrConfigLoad,
		},
		{
			name:    "unparseable project file",
			project: "[engine\nworkers = ",
			code:    errors.ErrConfigParse,
		},
		{
			name:    "negative workers",
			project: "[engine]\nworkers = -1\n",
			code:    errors.ErrConfigValid,
		},
		{
			name:    "unknown format",
			project: "[output]\nformat = \"xml\"\n",
			code:    errors.ErrConfigValid,
		},
		{
			name:    "empty caret",
			project: "[notify]\ncaret = \"\"\n",
			code:    errors.ErrConfigValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir := isolate(t)
			if tt.project != "" {
				writeFile(t, filepath.Join(workDir, "cmdcorrect.toml"), tt.project)
			}
			tt.opts.WorkDir = workDir

			_, err := Load(tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestProjectConfigPath(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, ProjectConfigPath(dir))

	writeFile(t, filepath.Join(dir, "cmdcorrect.toml"), "")
	assert.Equal(t, filepath.Join(dir, "cmdcorrect.toml"), ProjectConfigPath(dir))

	writeFile(t, filepath.Join(dir, ".cmdcorrect.toml"), "")
	assert.Equal(t, filepath.Join(dir, ".cmdcorrect.toml"), ProjectConfigPath(dir))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "engine.match_timeout", envKey("CMDCORRECT_ENGINE_MATCH_TIMEOUT"))
	assert.Equal(t, "output.format", envKey("CMDCORRECT_OUTPUT_FORMAT"))
}

func TestDefault(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	cfg := Default()
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()
	assert.Contains(t, content, "[engine]")
	assert.Contains(t, content, `# match_timeout = "250ms"`)
	assert.NotContains(t, content, "\nworkers = 0")
}
