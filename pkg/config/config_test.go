package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sfo/pkg/config"
	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/filesystem"
	"github.com/arthur-debert/sfo/pkg/rules"
	"github.com/arthur-debert/sfo/pkg/types"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yml", `
rules:
  - name: images
    type: extension
    pattern: "jpg,png"
    target_template: "images/{yyyy}"
  - name: dedupe
    type: hash
    hash_prefix_len: 3
    target_template: "blobs/{hash_prefix}"
ignore: ["*.tmp"]
collision: skip
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, types.CollisionSkip, cfg.CollisionPolicy())
	assert.Equal(t, []string{"*.tmp"}, cfg.Ignore)
	assert.Equal(t, 4, cfg.MaxWorkersHashing, "default kept")
	assert.False(t, cfg.DeterministicDedup)
	require.Len(t, cfg.Rules, 2)

	set, err := cfg.CompileRules()
	require.NoError(t, err)
	assert.Equal(t, []string{"images", "dedupe"}, set.Names())
	assert.Equal(t, 3, set[1].HashPrefixLen)
	assert.True(t, set.NeedsHash())
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
collision = "overwrite"
max_workers_hashing = 2

[[rules]]
name = "docs"
type = "regex"
pattern = "^report"
target_template = "reports/{yyyy}"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.CollisionOverwrite, cfg.CollisionPolicy())
	assert.Equal(t, 2, cfg.MaxWorkersHashing)

	set, err := cfg.CompileRules()
	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.Equal(t, rules.KindRegex, set[0].Kind)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "config.yml", "collision: skip\nrules: []\n")
	t.Setenv("SFO_COLLISION", "rename")
	t.Setenv("SFO_MAX_WORKERS_HASHING", "8")
	t.Setenv("SFO_DETERMINISTIC_DEDUP", "true")
	t.Setenv("SFO_IGNORE", "*.log,*.bak")
	t.Setenv("SFO_RULES", "ignored")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.CollisionRename, cfg.CollisionPolicy())
	assert.Equal(t, 8, cfg.MaxWorkersHashing)
	assert.True(t, cfg.DeterministicDedup)
	assert.Equal(t, []string{"*.log", "*.bak"}, cfg.Ignore)
	assert.Empty(t, cfg.Rules)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    errors.ErrorCode
	}{
		{"bad_yaml", "c.yml", "rules: [unclosed", errors.ErrConfigParse},
		{"bad_collision", "c.yml", "collision: merge", errors.ErrConfigInvalid},
		{"bad_workers", "c.yml", "max_workers_hashing: 0", errors.ErrConfigInvalid},
		{"bad_version", "c.yml", "version: 2", errors.ErrConfigInvalid},
		{"bad_ignore_glob", "c.yml", "ignore: ['[x']", errors.ErrConfigInvalid},
		{"unsupported_extension", "c.json", "{}", errors.ErrConfigLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err), err.Error())
			assert.True(t, errors.IsConfigError(err))
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestCompileRulesSurfacesRuleErrors(t *testing.T) {
	cfg, err := config.Parse([]byte(`
rules:
  - name: images
    type: extension
    target_template: "images"
`), config.FormatYAML)
	require.NoError(t, err, "rules are not compiled while loading")

	_, err = cfg.CompileRules()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
	assert.Contains(t, err.Error(), "requires 'pattern'")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("SFO_CONFIG", "/etc/sfo.yml")
	assert.Equal(t, "/etc/sfo.yml", config.DefaultPath())

	t.Setenv("SFO_CONFIG", "")
	assert.True(t, strings.HasSuffix(config.DefaultPath(), filepath.Join("sfo", "config.yml")))
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]config.Format{
		"a.yml":    config.FormatYAML,
		"a.YAML":   config.FormatYAML,
		"noext":    config.FormatYAML,
		"a.toml":   config.FormatTOML,
		"x/y.toml": config.FormatTOML,
	} {
		got, err := config.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := config.FormatFromPath("a.ini")
	assert.Error(t, err)
}

func TestExampleConfigCompiles(t *testing.T) {
	for _, format := range []config.Format{config.FormatYAML, config.FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			content, err := config.Generate(format)
			require.NoError(t, err)
			assert.Contains(t, string(content), "# sfo configuration")

			cfg, err := config.Parse(content, format)
			require.NoError(t, err)
			assert.Equal(t, types.CollisionRename, cfg.CollisionPolicy())
			assert.Equal(t, []string{"*.tmp", ".DS_Store", "**/node_modules/**"}, cfg.Ignore)

			set, err := cfg.CompileRules()
			require.NoError(t, err)
			assert.Equal(t, []string{"images", "invoices", "archives-dedup", "by-month"}, set.Names())
		})
	}

	_, err := config.Generate("ini")
	assert.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	fs := filesystem.NewMemory()
	path := "/home/u/.config/sfo/config.yml"

	require.NoError(t, config.WriteDefault(fs, path, false))
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigYAML(), data)

	err = config.WriteDefault(fs, path, false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileExists))

	require.NoError(t, fs.WriteFile(path, []byte("stale"), 0644))
	require.NoError(t, config.WriteDefault(fs, path, true))
	data, err = fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigYAML(), data)

	require.NoError(t, config.WriteDefault(fs, "/cfg/sfo.toml", false))
	data, err = fs.ReadFile("/cfg/sfo.toml")
	require.NoError(t, err)
	assert.Regexp(t, `collision = ['"]rename['"]`, string(data))
}
