package disable

import (
	"github.com/dotflex/dotflex/pkg/app"
	"github.com/dotflex/dotflex/pkg/logging"
)

// DisableOptions defines the options for the Disable command
type DisableOptions struct {
	Features []string
}

// DisableResult is the output of the Disable command
type DisableResult struct {
	Disabled []string
	Unknown  []string
}

// Disable marks the named features inactive. Installed files stay where
// they are: features cannot be uninstalled.
func Disable(a *app.App, opts DisableOptions) (*DisableResult, error) {
	log := logging.GetLogger("commands.disable")
	log.Debug().Str("command", "Disable").Strs("features", opts.Features).Msg("Executing command")

	merged, err := a.Reconciler().Reconcile()
	if err != nil {
		return nil, err
	}

	result := &DisableResult{}
	for _, name := range opts.Features {
		if merged.Registry.MarkInactive(name) {
			result.Disabled = append(result.Disabled, name)
		} else {
			result.Unknown = append(result.Unknown, name)
		}
	}

	if !a.DryRun {
		if err := a.Store.SaveRegistry(merged.Registry); err != nil {
			return nil, err
		}
	}
	return result, nil
}
