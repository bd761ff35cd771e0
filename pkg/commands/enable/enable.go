package enable

import (
	"context"

	"github.com/dotflex/dotflex/pkg/app"
	"github.com/dotflex/dotflex/pkg/commands/internal/runner"
	"github.com/dotflex/dotflex/pkg/logging"
)

// EnableOptions defines the options for the Enable command
type EnableOptions struct {
	Features []string
}

// FeatureInstall is the installation outcome of one feature
type FeatureInstall struct {
	Name  string
	Steps []runner.Step
	Err   error
}

// EnableResult is the output of the Enable command
type EnableResult struct {
	Installed     []FeatureInstall
	AlreadyActive []string
	Unknown       []string
}

// Failed reports whether any feature failed to install
func (r *EnableResult) Failed() bool {
	for _, fi := range r.Installed {
		if fi.Err != nil {
			return true
		}
	}
	return false
}

// Enable installs each named inactive feature and marks it active when
// its installation succeeds. Unknown and already active names are
// reported, not treated as errors.
func Enable(ctx context.Context, a *app.App, opts EnableOptions) (*EnableResult, error) {
	log := logging.GetLogger("commands.enable")
	log.Debug().Str("command", "Enable").Strs("features", opts.Features).Msg("Executing command")

	merged, err := a.Reconciler().Reconcile()
	if err != nil {
		return nil, err
	}
	reg := merged.Registry

	result := &EnableResult{}
	run := runner.New(a)

	for _, name := range opts.Features {
		f, ok := reg.Get(name)
		switch {
		case !ok:
			result.Unknown = append(result.Unknown, name)
			continue
		case f.Active():
			result.AlreadyActive = append(result.AlreadyActive, name)
			continue
		}

		run.Reset()
		err := f.Schema().InstallFeature(ctx, run)
		result.Installed = append(result.Installed, FeatureInstall{
			Name:  name,
			Steps: run.Steps(),
			Err:   err,
		})
		if err != nil {
			log.Warn().Err(err).Str("feature", name).Msg("Feature installation failed")
			continue
		}
		if !a.DryRun {
			f.MarkActive()
		}
	}

	if !a.DryRun {
		if err := a.Store.SaveRegistry(reg); err != nil {
			return result, err
		}
	}
	return result, nil
}
