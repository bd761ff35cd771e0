package status

import (
	"github.com/dotflex/dotflex/pkg/app"
	"github.com/dotflex/dotflex/pkg/logging"
	"github.com/dotflex/dotflex/pkg/paths"
)

// NoTargetPath is shown for installed files without a known target
const NoTargetPath = "<no target path>"

// StatusOptions defines the options for the Status command
type StatusOptions struct{}

// FileStatus is one installed file of a feature
type FileStatus struct {
	// Path is the target path as written in the manifest
	Path string
	// Resolved is Path on this machine
	Resolved string
}

// FeatureStatus describes one tracked feature
type FeatureStatus struct {
	Name   string
	Active bool
	Files  []FileStatus
}

// StatusResult is the output of the Status command
type StatusResult struct {
	TargetDir string
	ConfigDir string
	Features  []FeatureStatus
	// Added lists features discovered in the repository during this run
	Added []string
}

// Status reconciles the registry with the repository, reports every
// feature and saves the merged registry.
func Status(a *app.App, opts StatusOptions) (*StatusResult, error) {
	log := logging.GetLogger("commands.status")
	log.Debug().Str("command", "Status").Msg("Executing command")

	merged, err := a.Reconciler().Reconcile()
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		TargetDir: a.Roots.Dir(paths.Target),
		ConfigDir: a.Roots.ConfigDir(),
		Added:     merged.Added,
	}

	for _, f := range merged.Registry.Features() {
		fs := FeatureStatus{Name: f.Name(), Active: f.Active()}
		for _, file := range f.Files() {
			if !file.HasLocalPath() {
				fs.Files = append(fs.Files, FileStatus{Path: NoTargetPath, Resolved: NoTargetPath})
				continue
			}
			fs.Files = append(fs.Files, FileStatus{
				Path:     file.LocalPath,
				Resolved: a.Roots.Resolve(paths.Target, file.LocalPath),
			})
		}
		result.Features = append(result.Features, fs)
	}

	if !a.DryRun {
		if err := a.Store.SaveRegistry(merged.Registry); err != nil {
			return nil, err
		}
	}

	log.Info().Int("features", len(result.Features)).Msg("Status complete")
	return result, nil
}
