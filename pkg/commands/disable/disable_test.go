package disable

import (
	"testing"

	"github.com/dotflex/dotflex/pkg/feature"
	"github.com/dotflex/dotflex/pkg/operations"
	"github.com/dotflex/dotflex/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisable(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.SetupFeature("vim", feature.NewSchema(
		operations.CopyFile{From: "@r/features/vim/.vimrc", To: "@t/.vimrc"},
	), testutil.FileTree{".vimrc": "set nu\n"})
	env.SetupRegistry(map[string]bool{"vim": true})
	env.WithTargetFiles(testutil.FileTree{".vimrc": "set nu\n"})

	result, err := Disable(env.App, DisableOptions{Features: []string{"vim", "emacs"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"vim"}, result.Disabled)
	assert.Equal(t, []string{"emacs"}, result.Unknown)
	assert.False(t, env.LoadRegistry().IsActive("vim"))
	assert.True(t, env.Exists(env.Roots.TargetPath(".vimrc")), "installed files are left alone")
}

func TestDisableDryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.SetupFeature("vim", feature.NewSchema(), nil)
	env.SetupRegistry(map[string]bool{"vim": true})
	env.App.DryRun = true

	result, err := Disable(env.App, DisableOptions{Features: []string{"vim"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"vim"}, result.Disabled)
	assert.True(t, env.LoadRegistry().IsActive("vim"))
}
