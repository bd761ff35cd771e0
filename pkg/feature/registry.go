package feature

import (
	"context"
	"sort"

	"github.com/dotflex/dotflex/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Registry holds every tracked feature by name
type Registry struct {
	features map[string]*TrackedFeature
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{features: make(map[string]*TrackedFeature)}
}

// Get returns the named feature
func (r *Registry) Get(name string) (*TrackedFeature, bool) {
	f, ok := r.features[name]
	return f, ok
}

// Put adds or replaces a feature
func (r *Registry) Put(f *TrackedFeature) {
	r.features[f.Name()] = f
}

// Len returns the number of features
func (r *Registry) Len() int {
	return len(r.features)
}

// Names returns the feature names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.features))
	for name := range r.features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Features returns the features sorted by name
func (r *Registry) Features() []*TrackedFeature {
	out := make([]*TrackedFeature, 0, len(r.features))
	for _, name := range r.Names() {
		out = append(out, r.features[name])
	}
	return out
}

// Active returns the active features sorted by name
func (r *Registry) Active() []*TrackedFeature {
	var out []*TrackedFeature
	for _, f := range r.Features() {
		if f.Active() {
			out = append(out, f)
		}
	}
	return out
}

// IsActive reports whether the named feature exists and is active
func (r *Registry) IsActive(name string) bool {
	f, ok := r.features[name]
	return ok && f.Active()
}

// MarkActive flips the named feature to active. It reports false when the
// feature is unknown.
func (r *Registry) MarkActive(name string) bool {
	f, ok := r.features[name]
	if !ok {
		return false
	}
	f.MarkActive()
	return true
}

// MarkInactive flips the named feature to inactive. It reports false when
// the feature is unknown.
func (r *Registry) MarkInactive(name string) bool {
	f, ok := r.features[name]
	if !ok {
		return false
	}
	f.MarkInactive()
	return true
}

// InstallAll installs each of the given features, or every active feature
// when features is nil. It stops at the first feature that fails.
func (r *Registry) InstallAll(ctx context.Context, run Runner, features []*TrackedFeature) error {
	if features == nil {
		features = r.Active()
	}
	for _, f := range features {
		if err := f.Schema().InstallFeature(ctx, run); err != nil {
			return errors.Wrapf(err, errors.ErrInstallFailed, "failed to install feature %s", f.Name()).
				WithDetail("feature", f.Name())
		}
	}
	return nil
}

// registryYAML is the persisted form: only the active flags are stored,
// schemas live in the repository manifests
type registryYAML struct {
	Features map[string]flagYAML `yaml:"features"`
}

type flagYAML struct {
	Active bool `yaml:"active"`
}

// MarshalYAML implements yaml.Marshaler
func (r *Registry) MarshalYAML() (interface{}, error) {
	out := registryYAML{Features: make(map[string]flagYAML, len(r.features))}
	for name, f := range r.features {
		out.Features[name] = flagYAML{Active: f.Active()}
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Loaded features have empty
// schemas until the reconciler fills them in.
func (r *Registry) UnmarshalYAML(value *yaml.Node) error {
	var raw registryYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	r.features = make(map[string]*TrackedFeature, len(raw.Features))
	for name, flag := range raw.Features {
		r.features[name] = New(name, flag.Active, Schema{})
	}
	return nil
}
