package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvTargetPath, "")
	t.Setenv(EnvConfigFile, filepath.Join(dir, "missing.toml"))
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "", cfg.Paths.Config)
	assert.Equal(t, "", cfg.Paths.Target)
	assert.Equal(t, "LOCAL", cfg.Layout.LocalDir)
	assert.Equal(t, "REPO", cfg.Layout.RepoDir)
	assert.Equal(t, "features", cfg.Layout.FeaturesDir)
	assert.Equal(t, "manifest.yml", cfg.Layout.ManifestFile)
	assert.Equal(t, "features.yml", cfg.Layout.RegistryFile)
	assert.Equal(t, "sh", cfg.Shell.Interpreter)
	assert.Equal(t, "-c", cfg.Shell.Flag)
	assert.Equal(t, "upstream", cfg.Sync.Remote)
	assert.Equal(t, "master", cfg.Sync.Branch)
	assert.Equal(t, "upsync", cfg.Sync.CommitMessage)
}

func TestLoad_DefaultsWithoutSettingsFile(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_SettingsFile(t *testing.T) {
	dir := isolate(t)
	settings := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(settings, []byte(`
[paths]
target = "/srv/target"

[sync]
remote = "origin"
branch = "main"
`), 0644))

	cfg, err := Load(LoadOptions{File: settings})
	require.NoError(t, err)

	assert.Equal(t, "/srv/target", cfg.Paths.Target)
	assert.Equal(t, "origin", cfg.Sync.Remote)
	assert.Equal(t, "main", cfg.Sync.Branch)
	assert.Equal(t, "manifest.yml", cfg.Layout.ManifestFile, "untouched keys keep defaults")
}

func TestLoad_YAMLSettingsFile(t *testing.T) {
	dir := isolate(t)
	settings := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(settings, []byte(`
shell:
  interpreter: bash
  flag: -lc
sync:
  branch: trunk
`), 0644))

	cfg, err := Load(LoadOptions{File: settings})
	require.NoError(t, err)

	assert.Equal(t, "bash", cfg.Shell.Interpreter)
	assert.Equal(t, "-lc", cfg.Shell.Flag)
	assert.Equal(t, "trunk", cfg.Sync.Branch)
}

func TestParserFor(t *testing.T) {
	assert.IsType(t, yaml.Parser(), parserFor("/x/settings.YAML"))
	assert.IsType(t, yaml.Parser(), parserFor("settings.yml"))
	assert.IsType(t, toml.Parser(), parserFor("settings.toml"))
	assert.IsType(t, toml.Parser(), parserFor("settings"))
}

func TestLoad_SettingsFileFromEnv(t *testing.T) {
	dir := isolate(t)
	settings := filepath.Join(dir, "alt.toml")
	require.NoError(t, os.WriteFile(settings, []byte("[shell]\ninterpreter = \"bash\"\n"), 0644))
	t.Setenv(EnvConfigFile, settings)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "bash", cfg.Shell.Interpreter)
}

func TestLoad_EnvBeatsSettingsFile(t *testing.T) {
	dir := isolate(t)
	settings := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(settings, []byte("[paths]\nconfig = \"/from/file\"\n"), 0644))

	t.Setenv(EnvConfigPath, "/from/env")
	t.Setenv(EnvTargetPath, "/target/env")
	t.Setenv("DOTFLEX_SYNC__REMOTE", "mirror")

	cfg, err := Load(LoadOptions{File: settings})
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Paths.Config)
	assert.Equal(t, "/target/env", cfg.Paths.Target)
	assert.Equal(t, "mirror", cfg.Sync.Remote)
}

func TestLoad_OverridesBeatEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTargetPath, "/target/env")

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{
		"paths.target": "/target/flag",
		"paths.config": "",
	}})
	require.NoError(t, err)

	assert.Equal(t, "/target/flag", cfg.Paths.Target)
	assert.Equal(t, "", cfg.Paths.Config, "empty overrides are ignored")
}

func TestLoad_InvalidSettings(t *testing.T) {
	dir := isolate(t)

	t.Run("malformed toml", func(t *testing.T) {
		settings := filepath.Join(dir, "broken.toml")
		require.NoError(t, os.WriteFile(settings, []byte("[paths\n"), 0644))

		_, err := Load(LoadOptions{File: settings})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("empty layout key", func(t *testing.T) {
		settings := filepath.Join(dir, "empty.toml")
		require.NoError(t, os.WriteFile(settings, []byte("[layout]\nmanifest_file = \"\"\n"), 0644))

		_, err := Load(LoadOptions{File: settings})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("local and repo collide", func(t *testing.T) {
		settings := filepath.Join(dir, "collide.toml")
		require.NoError(t, os.WriteFile(settings, []byte("[layout]\nrepo_dir = \"LOCAL\"\n"), 0644))

		_, err := Load(LoadOptions{File: settings})
		require.Error(t, err)
	})
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{EnvConfigPath, "paths.config"},
		{EnvTargetPath, "paths.target"},
		{EnvConfigFile, ""},
		{"DOTFLEX_SYNC__BRANCH", "sync.branch"},
		{"DOTFLEX_LAYOUT__MANIFEST_FILE", "layout.manifest_file"},
		{"DOTFLEX_VERBOSE", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

func TestConfigTOML(t *testing.T) {
	cfg := Default()
	cfg.Paths.Target = "/home/someone"

	out, err := cfg.TOML()
	require.NoError(t, err)

	assert.Contains(t, out, "[paths]")
	assert.Regexp(t, `target = ['"]/home/someone['"]`, out)
	assert.Contains(t, out, "[layout]")
	assert.Regexp(t, `manifest_file = ['"]manifest\.yml['"]`, out)
	assert.Contains(t, out, "[sync]")
}
