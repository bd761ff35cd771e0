package testutil

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dotflex/dotflex/pkg/app"
	"github.com/dotflex/dotflex/pkg/config"
	"github.com/dotflex/dotflex/pkg/datastore"
	"github.com/dotflex/dotflex/pkg/feature"
	"github.com/dotflex/dotflex/pkg/filesystem"
	"github.com/dotflex/dotflex/pkg/paths"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // file contents in memory, roots on disk
	EnvIsolated                  // real filesystem in temp directory
)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	ConfigRoot string
	TargetRoot string

	Config *config.Config
	Roots  *paths.Roots
	FS     afero.Fs
	Store  datastore.DataStore
	App    *app.App
	// Out collects everything the app prints
	Out *bytes.Buffer

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	env := &TestEnvironment{
		ConfigRoot: filepath.Join(tempDir, "config"),
		TargetRoot: filepath.Join(tempDir, "home"),
		Out:        &bytes.Buffer{},
		Type:       envType,
		t:          t,
	}

	// keep logs and user settings out of the real home
	t.Setenv("HOME", env.TargetRoot)
	t.Setenv("XDG_STATE_HOME", filepath.Join(tempDir, "state"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg-config"))

	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		env.FS = filesystem.NewOS()
	}

	env.Config = config.Default()
	env.Config.Paths.Config = env.ConfigRoot
	env.Config.Paths.Target = env.TargetRoot

	a, err := app.New(app.Options{Config: env.Config, FS: env.FS, Out: env.Out})
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	env.App = a
	env.Roots = a.Roots
	env.Store = a.Store

	// canonical forms, in case the temp dir sits behind a symlink
	env.ConfigRoot = env.Roots.ConfigDir()
	env.TargetRoot = env.Roots.Dir(paths.Target)

	return env
}

// FileTree maps relative paths to file contents. A nested FileTree is a
// directory.
type FileTree map[string]interface{}

// WithTargetFiles creates files under the target root
func (env *TestEnvironment) WithTargetFiles(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.TargetRoot, tree)
}

// WithRepoFiles creates files under the repository root
func (env *TestEnvironment) WithRepoFiles(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.Roots.Dir(paths.Repo), tree)
}

// SetupFeature writes a feature manifest plus the given files into the
// feature's directory
func (env *TestEnvironment) SetupFeature(name string, schema feature.Schema, files FileTree) {
	env.t.Helper()

	if err := env.Store.DumpManifest(name, schema); err != nil {
		env.t.Fatalf("Failed to write manifest for %s: %v", name, err)
	}
	createFileTree(env.t, env.FS, env.Store.FeatureDir(name), files)
}

// SetupRegistry saves a registry with the given active flags
func (env *TestEnvironment) SetupRegistry(flags map[string]bool) {
	env.t.Helper()

	reg := feature.NewRegistry()
	for name, active := range flags {
		reg.Put(feature.New(name, active, feature.Schema{}))
	}
	if err := env.Store.SaveRegistry(reg); err != nil {
		env.t.Fatalf("Failed to save registry: %v", err)
	}
}

// LoadRegistry reads the saved registry
func (env *TestEnvironment) LoadRegistry() *feature.Registry {
	env.t.Helper()

	reg, err := env.Store.LoadRegistry()
	if err != nil {
		env.t.Fatalf("Failed to load registry: %v", err)
	}
	return reg
}

// ReadFile reads a file through the environment's filesystem
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()

	data, err := afero.ReadFile(env.FS, path)
	if err != nil {
		env.t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists in the environment's filesystem
func (env *TestEnvironment) Exists(path string) bool {
	return filesystem.Exists(env.FS, path)
}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs afero.Fs, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := filesystem.WriteFile(fs, fullPath, []byte(v)); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, filesystem.DirPerm); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Unsupported file tree entry %s: %T", name, content)
		}
	}
}
