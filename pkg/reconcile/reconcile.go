// Package reconcile merges the machine-local registry with the feature
// manifests found in the repository.
package reconcile

import (
	"github.com/dotflex/dotflex/pkg/datastore"
	"github.com/dotflex/dotflex/pkg/feature"
	"github.com/dotflex/dotflex/pkg/logging"
	"github.com/rs/zerolog"
)

// Result is the merged registry plus what changed while merging
type Result struct {
	Registry *feature.Registry
	// Added lists features discovered in the repository that were not
	// in the registry. They start inactive.
	Added []string
	// Updated lists registry features whose schema was reloaded
	Updated []string
}

// Options configures a Reconciler
type Options struct {
	// DryRun leaves newly discovered manifests as they are on disk
	DryRun bool
}

// Reconciler merges registry and manifests
type Reconciler struct {
	store  datastore.DataStore
	dryRun bool
	logger zerolog.Logger
}

// New creates a reconciler over store
func New(store datastore.DataStore, opts Options) *Reconciler {
	return &Reconciler{
		store:  store,
		dryRun: opts.DryRun,
		logger: logging.GetLogger("reconcile"),
	}
}

// Reconcile loads the registry and overlays every feature manifest found
// in the repository:
//
//   - known features get the fresh schema and keep their active flag
//   - new features are added inactive and their manifest is rewritten
//     right away, normalizing its formatting (skipped in dry-run mode)
//   - features only in the registry are left untouched
//
// The registry is not saved; callers persist it when they are done.
func (r *Reconciler) Reconcile() (*Result, error) {
	reg, err := r.store.LoadRegistry()
	if err != nil {
		return nil, err
	}

	names, err := r.store.ListFeatureCandidates()
	if err != nil {
		return nil, err
	}

	result := &Result{Registry: reg}
	for _, name := range names {
		schema, err := r.store.LoadManifest(name)
		if err != nil {
			return nil, err
		}

		if existing, ok := reg.Get(name); ok {
			existing.InsertSchema(schema)
			result.Updated = append(result.Updated, name)
			r.logger.Debug().
				Str("feature", name).
				Bool("active", existing.Active()).
				Int("operations", len(schema.Install)).
				Msg("Refreshed feature schema")
			continue
		}

		if r.dryRun {
			r.logger.Debug().Str("feature", name).Msg("Dry run, manifest not rewritten")
		} else if err := r.store.DumpManifest(name, schema); err != nil {
			return nil, err
		}
		reg.Put(feature.New(name, false, schema))
		result.Added = append(result.Added, name)
		r.logger.Info().
			Str("feature", name).
			Int("operations", len(schema.Install)).
			Msg("Discovered new feature")
	}

	return result, nil
}
