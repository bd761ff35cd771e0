package datastore

import (
	"github.com/dotflex/dotflex/pkg/feature"
)

// DataStore reads and writes the registry and feature manifests
type DataStore interface {
	// LoadRegistry reads the registry. A missing file yields an empty one.
	LoadRegistry() (*feature.Registry, error)

	// SaveRegistry writes the registry, replacing any previous content.
	SaveRegistry(reg *feature.Registry) error

	// LoadManifest reads the schema of the named feature.
	LoadManifest(name string) (feature.Schema, error)

	// DumpManifest writes the schema of the named feature.
	DumpManifest(name string, schema feature.Schema) error

	// ListFeatureCandidates returns the names of the directories under the
	// features directory that contain a manifest, sorted.
	ListFeatureCandidates() ([]string, error)

	// FeatureDir returns the repository directory of the named feature.
	FeatureDir(name string) string

	// ManifestPath returns the manifest file of the named feature.
	ManifestPath(name string) string

	// FeaturesDir returns the directory holding all features.
	FeaturesDir() string

	// RegistryPath returns the registry file.
	RegistryPath() string
}
