package bind

import (
	"context"
	"path/filepath"

	"github.com/dotflex/dotflex/pkg/app"
	"github.com/dotflex/dotflex/pkg/commands/internal/runner"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/feature"
	"github.com/dotflex/dotflex/pkg/logging"
	"github.com/dotflex/dotflex/pkg/operations"
	"github.com/dotflex/dotflex/pkg/paths"
)

// Binding ties a file on the target machine to a location in a feature
type Binding struct {
	// Target is the file on this machine, relative to the target root
	// unless absolute or marked
	Target string
	// Repo is where the file goes. Marked or absolute paths are used as
	// they are, anything else is relative to the feature directory. Empty
	// means the Target path relative to the target root, which requires
	// Target to lie under the target root.
	Repo string
}

// BindOptions defines the options for the Bind command
type BindOptions struct {
	Feature  string
	Bindings []Binding
}

// BindResult is the output of the Bind command
type BindResult struct {
	Feature string
	// Created is set when the feature did not exist before
	Created bool
	Steps   []runner.Step
}

// Bind copies target files into a feature and records a CopyFile
// operation for each, so installing the feature puts them back.
// Either every binding is viable or nothing is touched.
func Bind(ctx context.Context, a *app.App, opts BindOptions) (*BindResult, error) {
	log := logging.GetLogger("commands.bind")
	log.Debug().Str("command", "Bind").Str("feature", opts.Feature).Msg("Executing command")

	if opts.Feature == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no feature name given")
	}
	if err := feature.ValidateName(opts.Feature); err != nil {
		return nil, err
	}

	result := &BindResult{Feature: opts.Feature}
	featDir := a.Store.FeatureDir(opts.Feature)
	if !a.DryRun {
		if err := a.FS.MkdirAll(featDir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "error resolving feature directory %s", featDir).
				WithDetail("path", featDir)
		}
	}

	if len(opts.Bindings) == 0 {
		return result, nil
	}

	// concrete copies from target into the repository
	var copies []operations.CopyFile
	for _, b := range opts.Bindings {
		target := a.Roots.Resolve(paths.Target, b.Target)

		var repo string
		switch {
		case b.Repo != "":
			if resolved, ok := a.Roots.ResolveMarked(b.Repo); ok {
				repo = resolved
			} else {
				repo = filepath.Join(featDir, b.Repo)
			}
		default:
			rel, ok := a.Roots.RelativeTo(paths.Target, target)
			if !ok {
				return nil, errors.Newf(errors.ErrInvalidInput,
					"binding out-of-target file must be fully specified: %s", target).
					WithDetail("path", target)
			}
			repo = filepath.Join(featDir, rel)
		}
		copies = append(copies, operations.CopyFile{From: target, To: repo})
	}

	for _, cp := range copies {
		if !operations.Viable(a.FS, cp) {
			return nil, errors.Newf(errors.ErrNotViable, "not viable: %s", operations.Describe(a.Roots, cp)).
				WithDetail("path", cp.From)
		}
	}

	run := runner.New(a)
	for _, cp := range copies {
		if err := run.Execute(ctx, cp); err != nil {
			result.Steps = run.Steps()
			return result, err
		}
	}
	result.Steps = run.Steps()

	merged, err := a.Reconciler().Reconcile()
	if err != nil {
		return result, err
	}
	reg := merged.Registry

	// stored the other way round: install copies repo onto target
	stored := make([]operations.Operation, 0, len(copies))
	for _, cp := range copies {
		stored = append(stored, operations.Virtualize(a.Roots, operations.CopyFile{From: cp.To, To: cp.From}))
	}

	f, ok := reg.Get(opts.Feature)
	if ok {
		f.AppendInstall(stored...)
	} else {
		f = feature.New(opts.Feature, true, feature.NewSchema(stored...))
		reg.Put(f)
		result.Created = true
		log.Info().Str("feature", opts.Feature).Msg("Creating new feature")
	}

	if a.DryRun {
		return result, nil
	}
	if err := a.Store.DumpManifest(opts.Feature, f.Schema()); err != nil {
		return result, err
	}
	if err := a.Store.SaveRegistry(reg); err != nil {
		return result, err
	}
	return result, nil
}
