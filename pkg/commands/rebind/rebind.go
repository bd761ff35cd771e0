package rebind

import (
	"context"

	"github.com/dotflex/dotflex/pkg/app"
	"github.com/dotflex/dotflex/pkg/commands/internal/runner"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/filesystem"
	"github.com/dotflex/dotflex/pkg/logging"
	"github.com/dotflex/dotflex/pkg/operations"
	"github.com/dotflex/dotflex/pkg/paths"
)

// RebindOptions defines the options for the Rebind command
type RebindOptions struct {
	Feature string
	// Files are target paths already bound to the feature
	Files []string
}

// RebindResult is the output of the Rebind command
type RebindResult struct {
	Feature string
	Steps   []runner.Step
	// Unbound lists files no CopyFile operation of the feature installs
	Unbound []string
}

// Failed reports whether any copy failed
func (r *RebindResult) Failed() bool {
	return runner.Failed(r.Steps)
}

// Rebind copies changed target files back into the repository. A file is
// copied for every CopyFile operation of the feature installing it.
func Rebind(ctx context.Context, a *app.App, opts RebindOptions) (*RebindResult, error) {
	log := logging.GetLogger("commands.rebind")
	log.Debug().Str("command", "Rebind").Str("feature", opts.Feature).Msg("Executing command")

	merged, err := a.Reconciler().Reconcile()
	if err != nil {
		return nil, err
	}

	f, ok := merged.Registry.Get(opts.Feature)
	if !ok {
		return nil, errors.Newf(errors.ErrFeatureNotFound, "no such feature: %s", opts.Feature).
			WithDetail("feature", opts.Feature)
	}

	featDir := a.Store.FeatureDir(opts.Feature)
	if !filesystem.IsDir(a.FS, featDir) {
		return nil, errors.Newf(errors.ErrNotFound, "could not find feature directory: %s", featDir).
			WithDetail("path", featDir)
	}

	result := &RebindResult{Feature: opts.Feature}
	run := runner.New(a)

	for _, file := range opts.Files {
		virtual := a.Roots.Virtual(a.Roots.Resolve(paths.Target, file))
		rebound := false

		for _, op := range f.Schema().Install {
			cp, ok := op.(operations.CopyFile)
			if !ok || cp.To != virtual {
				continue
			}
			back := operations.CopyFile{
				From: a.Roots.Resolve(paths.Target, cp.To),
				To:   a.Roots.Resolve(paths.Repo, cp.From),
			}
			// failures are recorded per step, the remaining files still run
			_ = run.Execute(ctx, back)
			rebound = true
		}

		if !rebound {
			result.Unbound = append(result.Unbound, file)
		}
	}

	result.Steps = run.Steps()
	return result, nil
}
