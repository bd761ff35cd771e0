package bind

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/feature"
	"github.com/dotflex/dotflex/pkg/filesystem"
	"github.com/dotflex/dotflex/pkg/operations"
	"github.com/dotflex/dotflex/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindCreatesFeature(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithTargetFiles(testutil.FileTree{
		".zshrc": "export EDITOR=vim\n",
	})

	result, err := Bind(context.Background(), env.App, BindOptions{
		Feature:  "shell",
		Bindings: []Binding{{Target: ".zshrc"}},
	})
	require.NoError(t, err)

	assert.True(t, result.Created)
	require.Len(t, result.Steps, 1)
	assert.True(t, result.Steps[0].OK())

	repoFile := filepath.Join(env.Store.FeatureDir("shell"), ".zshrc")
	assert.Equal(t, "export EDITOR=vim\n", env.ReadFile(repoFile))

	schema, err := env.Store.LoadManifest("shell")
	require.NoError(t, err)
	expected := feature.NewSchema(operations.CopyFile{
		From: "@r/features/shell/.zshrc",
		To:   "@t/.zshrc",
	})
	assert.True(t, expected.Equal(schema), "got %#v", schema)

	reg := env.LoadRegistry()
	assert.True(t, reg.IsActive("shell"))
}

func TestBindAppendsToExistingFeature(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithTargetFiles(testutil.FileTree{
		".zshrc": "zsh\n",
		".config": testutil.FileTree{
			"starship.toml": "[character]\n",
		},
	})

	ctx := context.Background()
	_, err := Bind(ctx, env.App, BindOptions{Feature: "shell", Bindings: []Binding{{Target: ".zshrc"}}})
	require.NoError(t, err)

	result, err := Bind(ctx, env.App, BindOptions{
		Feature:  "shell",
		Bindings: []Binding{{Target: ".config/starship.toml", Repo: "starship.toml"}},
	})
	require.NoError(t, err)
	assert.False(t, result.Created)

	schema, err := env.Store.LoadManifest("shell")
	require.NoError(t, err)
	require.Len(t, schema.Install, 2)
	assert.Equal(t, operations.CopyFile{
		From: "@r/features/shell/starship.toml",
		To:   "@t/.config/starship.toml",
	}, schema.Install[1])
	assert.Equal(t, "[character]\n", env.ReadFile(filepath.Join(env.Store.FeatureDir("shell"), "starship.toml")))
}

func TestBindOutsideTarget(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	outside := filepath.Join(filepath.Dir(env.TargetRoot), "elsewhere", "hosts")

	require.NoError(t, filesystem.WriteFile(env.FS, outside, []byte("127.0.0.1 localhost\n")))

	t.Run("requires repo path", func(t *testing.T) {
		_, err := Bind(context.Background(), env.App, BindOptions{
			Feature:  "net",
			Bindings: []Binding{{Target: outside}},
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.Contains(t, err.Error(), "must be fully specified")
	})

	t.Run("with repo path", func(t *testing.T) {
		_, err := Bind(context.Background(), env.App, BindOptions{
			Feature:  "net",
			Bindings: []Binding{{Target: outside, Repo: "hosts"}},
		})
		require.NoError(t, err)

		schema, err := env.Store.LoadManifest("net")
		require.NoError(t, err)
		require.Len(t, schema.Install, 1)
		// foreign paths are stored as they are
		assert.Equal(t, operations.CopyFile{From: "@r/features/net/hosts", To: outside}, schema.Install[0])
	})
}

func TestBindNotViableTouchesNothing(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithTargetFiles(testutil.FileTree{".zshrc": "zsh\n"})

	_, err := Bind(context.Background(), env.App, BindOptions{
		Feature:  "shell",
		Bindings: []Binding{{Target: ".zshrc"}, {Target: ".missing"}},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotViable))

	assert.False(t, env.Exists(filepath.Join(env.Store.FeatureDir("shell"), ".zshrc")))
	assert.False(t, env.Exists(env.Store.ManifestPath("shell")))
	assert.False(t, env.Exists(env.Store.RegistryPath()))
}

func TestBindWithoutFiles(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	result, err := Bind(context.Background(), env.App, BindOptions{Feature: "empty"})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.True(t, env.Exists(env.Store.FeatureDir("empty")))
	assert.False(t, env.Exists(env.Store.ManifestPath("empty")))
}

func TestBindRequiresName(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	_, err := Bind(context.Background(), env.App, BindOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestBindRejectsEscapingName(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithTargetFiles(testutil.FileTree{".zshrc": "zsh\n"})

	_, err := Bind(context.Background(), env.App, BindOptions{
		Feature:  "../x",
		Bindings: []Binding{{Target: ".zshrc"}},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFeatureInvalid))
	assert.False(t, env.Exists(filepath.Join(env.Store.FeaturesDir(), "..", "x")))
	assert.False(t, env.Exists(env.Store.RegistryPath()))
}

func TestBindDryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithTargetFiles(testutil.FileTree{".zshrc": "zsh\n"})
	env.App.DryRun = true

	result, err := Bind(context.Background(), env.App, BindOptions{
		Feature:  "shell",
		Bindings: []Binding{{Target: ".zshrc"}},
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	require.Len(t, result.Steps, 1)

	assert.False(t, env.Exists(env.Store.FeatureDir("shell")))
	assert.False(t, env.Exists(env.Store.RegistryPath()))
}
