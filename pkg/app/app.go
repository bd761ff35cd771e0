// Package app holds the application context shared by every command.
//
// An App is built once at start-up from the loaded configuration and passed
// by reference to everything that needs roots, the filesystem, the
// datastore or the output settings. There is no package-level state.
package app

import (
	"io"
	"os"

	"github.com/dotflex/dotflex/pkg/config"
	"github.com/dotflex/dotflex/pkg/datastore"
	"github.com/dotflex/dotflex/pkg/executor"
	"github.com/dotflex/dotflex/pkg/filesystem"
	"github.com/dotflex/dotflex/pkg/logging"
	"github.com/dotflex/dotflex/pkg/paths"
	"github.com/dotflex/dotflex/pkg/reconcile"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// App is the per-process context
type App struct {
	Config  *config.Config
	Roots   *paths.Roots
	FS      afero.Fs
	Store   datastore.DataStore
	Out     io.Writer
	Verbose bool
	DryRun  bool
	Logger  zerolog.Logger
}

// Options configures New
type Options struct {
	Config  *config.Config
	FS      afero.Fs
	Out     io.Writer
	Verbose bool
	DryRun  bool
}

// New resolves the roots and wires the datastore. A root that cannot be
// created or canonicalized is returned as a configuration error.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	roots, err := paths.New(paths.Options{
		ConfigRoot: cfg.Paths.Config,
		TargetRoot: cfg.Paths.Target,
		LocalDir:   cfg.Layout.LocalDir,
		RepoDir:    cfg.Layout.RepoDir,
	})
	if err != nil {
		return nil, err
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	logger := logging.GetLogger("app")
	logger.Debug().
		Str("repo", roots.Dir(paths.Repo)).
		Str("local", roots.Dir(paths.Local)).
		Str("target", roots.Dir(paths.Target)).
		Bool("dry_run", opts.DryRun).
		Msg("Resolved roots")

	return &App{
		Config:  cfg,
		Roots:   roots,
		FS:      fs,
		Store:   datastore.New(fs, roots, cfg.Layout),
		Out:     out,
		Verbose: opts.Verbose,
		DryRun:  opts.DryRun,
		Logger:  logger,
	}, nil
}

// Executor returns an executor configured from the app settings
func (a *App) Executor() *executor.Executor {
	return executor.New(executor.Options{
		FS:      a.FS,
		Shell:   a.Config.Shell,
		DryRun:  a.DryRun,
		Verbose: a.Verbose,
		Out:     a.Out,
	})
}

// Reconciler returns a reconciler over the app's datastore. In dry-run
// mode it does not rewrite manifests.
func (a *App) Reconciler() *reconcile.Reconciler {
	return reconcile.New(a.Store, reconcile.Options{DryRun: a.DryRun})
}
