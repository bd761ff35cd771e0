package show

import (
	"github.com/dotflex/dotflex/pkg/app"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/logging"
	"github.com/dotflex/dotflex/pkg/operations"
)

// ShowOptions defines the options for the Show command
type ShowOptions struct {
	Feature string
}

// ShowResult is the output of the Show command
type ShowResult struct {
	Feature string
	Active  bool
	// Markdown summarizes the install operations and their effects
	Markdown string
}

// Show summarizes what installing a feature would do, without doing it
func Show(a *app.App, opts ShowOptions) (*ShowResult, error) {
	log := logging.GetLogger("commands.show")
	log.Debug().Str("command", "Show").Str("feature", opts.Feature).Msg("Executing command")

	merged, err := a.Reconciler().Reconcile()
	if err != nil {
		return nil, err
	}

	f, ok := merged.Registry.Get(opts.Feature)
	if !ok {
		return nil, errors.Newf(errors.ErrFeatureNotFound, "no such feature: %s", opts.Feature).
			WithDetail("feature", opts.Feature)
	}

	return &ShowResult{
		Feature:  f.Name(),
		Active:   f.Active(),
		Markdown: operations.Markdown(a.Roots, f.Name(), f.Schema().Install),
	}, nil
}
