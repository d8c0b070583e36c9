package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
[source]
extension = ".fc"

[output]
dir = "build"
write_trace = true
color = false

[watch]
debounce = "1s"
exclude_files = ["*_tmp.fc"]

[log]
level = "debug"

[tracing]
endpoint = "localhost:4317"
insecure = true
`
	path := filepath.Join(t.TempDir(), "fanc.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, ".fc", cfg.Source.Extension)
	assert.Equal(t, []string{"*.fc"}, cfg.Source.Include)
	assert.Equal(t, "build", cfg.Output.Dir)
	assert.True(t, cfg.Output.WriteTrace)
	assert.False(t, cfg.ColorEnabled())
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.MinInterval)
	assert.Equal(t, []string{".git", "build"}, cfg.Watch.ExcludeDirs)
	assert.Equal(t, []string{"*_tmp.fc"}, cfg.Watch.ExcludeFiles)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "localhost:4317", cfg.Tracing.Endpoint)
	assert.True(t, cfg.Tracing.Insecure)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTemplateMatchesDefaults(t *testing.T) {
	cfg, err := Parse(Template)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".fanc", cfg.Source.Extension)
	assert.Equal(t, []string{"*.fanc"}, cfg.Source.Include)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.True(t, cfg.ColorEnabled())
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"bad version", "version = 3", "unsupported config version 3"},
		{"extension without dot", "[source]\nextension = \"fanc\"", "source.extension must start with '.'"},
		{"bad include glob", "[source]\ninclude = [\"[a\"]", "source.include[0]"},
		{"empty include", "[source]\ninclude = [\"\"]", "source.include[0]: pattern must not be empty"},
		{"negative debounce", "[watch]\ndebounce = \"-1s\"", "watch.debounce must not be negative"},
		{"bad exclude glob", "[watch]\nexclude_dirs = [\"[b\"]", "watch.exclude_dirs[0]"},
		{"bad level", "[log]\nlevel = \"loud\"", "log.level must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("[source\nextension = 1")
	assert.Error(t, err)
}
