package datastore

import (
	"os"
	"path/filepath"

	"github.com/dotflex/dotflex/pkg/config"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/feature"
	"github.com/dotflex/dotflex/pkg/filesystem"
	"github.com/dotflex/dotflex/pkg/logging"
	"github.com/dotflex/dotflex/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type filesystemDataStore struct {
	fs     afero.Fs
	roots  *paths.Roots
	layout config.Layout
	logger zerolog.Logger
}

// New creates a DataStore backed by fs. Empty layout fields use the
// default names.
func New(fs afero.Fs, roots *paths.Roots, layout config.Layout) DataStore {
	defaults := config.Default().Layout
	if layout.FeaturesDir == "" {
		layout.FeaturesDir = defaults.FeaturesDir
	}
	if layout.ManifestFile == "" {
		layout.ManifestFile = defaults.ManifestFile
	}
	if layout.RegistryFile == "" {
		layout.RegistryFile = defaults.RegistryFile
	}

	return &filesystemDataStore{
		fs:     fs,
		roots:  roots,
		layout: layout,
		logger: logging.GetLogger("datastore"),
	}
}

func (s *filesystemDataStore) FeaturesDir() string {
	return s.roots.RepoPath(s.layout.FeaturesDir)
}

func (s *filesystemDataStore) FeatureDir(name string) string {
	return filepath.Join(s.FeaturesDir(), name)
}

func (s *filesystemDataStore) ManifestPath(name string) string {
	return filepath.Join(s.FeatureDir(name), s.layout.ManifestFile)
}

func (s *filesystemDataStore) RegistryPath() string {
	return s.roots.LocalPath(s.layout.RegistryFile)
}

func (s *filesystemDataStore) LoadRegistry() (*feature.Registry, error) {
	path := s.RegistryPath()

	data, err := afero.ReadFile(s.fs, path)
	if os.IsNotExist(err) {
		s.logger.Debug().Str("path", path).Msg("No registry yet, starting empty")
		return feature.NewRegistry(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "couldn't open features manifest %s for reading", path).
			WithDetail("path", path)
	}

	reg := feature.NewRegistry()
	if err := yaml.Unmarshal(data, reg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "couldn't parse features manifest %s", path).
			WithDetail("path", path)
	}

	s.logger.Debug().Str("path", path).Int("features", reg.Len()).Msg("Loaded registry")
	return reg, nil
}

func (s *filesystemDataStore) SaveRegistry(reg *feature.Registry) error {
	path := s.RegistryPath()
	data, err := yaml.Marshal(reg)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "couldn't encode features manifest %s", path).
			WithDetail("path", path)
	}
	if err := s.write(path, data); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "couldn't write to features manifest %s", path).
			WithDetail("path", path)
	}
	s.logger.Debug().Str("path", path).Int("features", reg.Len()).Msg("Saved registry")
	return nil
}

func (s *filesystemDataStore) LoadManifest(name string) (feature.Schema, error) {
	path := s.ManifestPath(name)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return feature.Schema{}, errors.Wrapf(err, errors.ErrManifestRead, "couldn't open manifest %s for reading", path).
			WithDetail("path", path).
			WithDetail("feature", name)
	}

	var schema feature.Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return feature.Schema{}, errors.Wrapf(err, errors.ErrManifestParse, "couldn't parse manifest %s", path).
			WithDetail("path", path).
			WithDetail("feature", name)
	}
	return schema, nil
}

func (s *filesystemDataStore) DumpManifest(name string, schema feature.Schema) error {
	path := s.ManifestPath(name)
	data, err := yaml.Marshal(schema)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "couldn't encode manifest %s", path).
			WithDetail("path", path).
			WithDetail("feature", name)
	}
	if err := s.write(path, data); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "couldn't write manifest %s", path).
			WithDetail("path", path).
			WithDetail("feature", name)
	}
	s.logger.Debug().Str("path", path).Str("feature", name).Msg("Dumped manifest")
	return nil
}

func (s *filesystemDataStore) ListFeatureCandidates() ([]string, error) {
	dir := s.FeaturesDir()
	if !filesystem.IsDir(s.fs, dir) {
		return nil, nil
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "couldn't read features directory at %s", dir).
			WithDetail("path", dir)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !filesystem.Exists(s.fs, s.ManifestPath(entry.Name())) {
			s.logger.Trace().Str("feature", entry.Name()).Msg("Skipping directory without manifest")
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// write replaces path with data, creating parent directories
func (s *filesystemDataStore) write(path string, data []byte) error {
	return filesystem.WriteFile(s.fs, path, data)
}
