package sync

import (
	"context"

	"github.com/dotflex/dotflex/pkg/app"
	"github.com/dotflex/dotflex/pkg/commands/internal/runner"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/logging"
	"github.com/dotflex/dotflex/pkg/paths"
	gitsync "github.com/dotflex/dotflex/pkg/sync"
)

// InitOptions defines the options for the Init command
type InitOptions struct {
	// Remote is the url of the git remote
	Remote string
}

// DownsyncResult is the output of the Downsync command
type DownsyncResult struct {
	Steps []runner.Step
}

func syncer(a *app.App) *gitsync.Syncer {
	return gitsync.New(a.Roots.Dir(paths.Repo), a.Config.Sync)
}

// requireRepo fails with ErrRepoNotFound unless the repository root is a
// git repository
func requireRepo(a *app.App, s *gitsync.Syncer) error {
	if s.Exists() {
		return nil
	}
	dir := a.Roots.Dir(paths.Repo)
	return errors.Newf(errors.ErrRepoNotFound, "no local repo found at %s", dir).
		WithDetail("path", dir)
}

// Init turns the repository root into a git repository tracking Remote
func Init(ctx context.Context, a *app.App, opts InitOptions) error {
	log := logging.GetLogger("commands.sync")
	log.Debug().Str("command", "Init").Str("remote", opts.Remote).Msg("Executing command")

	if a.DryRun {
		if opts.Remote == "" {
			return errors.New(errors.ErrInvalidInput, "no remote url given")
		}
		log.Info().
			Str("path", a.Roots.Dir(paths.Repo)).
			Str("remote", opts.Remote).
			Msg("Dry run, repository not initialized")
		return nil
	}
	return syncer(a).Init(ctx, opts.Remote)
}

// Upsync commits and pushes the repository
func Upsync(ctx context.Context, a *app.App) error {
	log := logging.GetLogger("commands.sync")
	log.Debug().Str("command", "Upsync").Msg("Executing command")

	s := syncer(a)
	if err := requireRepo(a, s); err != nil {
		return err
	}
	if a.DryRun {
		log.Info().
			Str("remote", a.Config.Sync.Remote).
			Str("branch", a.Config.Sync.Branch).
			Msg("Dry run, nothing committed or pushed")
		return nil
	}
	return s.Upsync(ctx)
}

// Downsync pulls the repository and then installs every active feature
// with its freshly pulled schema. The merged registry is saved before
// installing, so discovered features stay recorded even when an install
// fails. In dry-run mode nothing is pulled and the install only reports
// its steps.
func Downsync(ctx context.Context, a *app.App) (*DownsyncResult, error) {
	log := logging.GetLogger("commands.sync")
	log.Debug().Str("command", "Downsync").Msg("Executing command")

	run := runner.New(a)
	hook := func(ctx context.Context) error {
		merged, err := a.Reconciler().Reconcile()
		if err != nil {
			return err
		}
		if !a.DryRun {
			if err := a.Store.SaveRegistry(merged.Registry); err != nil {
				return err
			}
		}
		return merged.Registry.InstallAll(ctx, run, nil)
	}

	s := syncer(a)
	if err := requireRepo(a, s); err != nil {
		return &DownsyncResult{}, err
	}

	var err error
	if a.DryRun {
		log.Info().
			Str("remote", a.Config.Sync.Remote).
			Str("branch", a.Config.Sync.Branch).
			Msg("Dry run, nothing pulled")
		err = hook(ctx)
	} else {
		err = s.Downsync(ctx, hook)
	}
	return &DownsyncResult{Steps: run.Steps()}, err
}
