package config

import (
	"bytes"

	gotoml "github.com/pelletier/go-toml/v2"
)

// Config is the effective dotflex configuration
type Config struct {
	Paths  Paths  `koanf:"paths" toml:"paths"`
	Layout Layout `koanf:"layout" toml:"layout"`
	Shell  Shell  `koanf:"shell" toml:"shell"`
	Sync   Sync   `koanf:"sync" toml:"sync"`
}

// Paths holds the root overrides. Empty values fall back to the defaults
// computed by pkg/paths.
type Paths struct {
	Config string `koanf:"config" toml:"config"`
	Target string `koanf:"target" toml:"target"`
}

// Layout names the directories and files dotflex keeps under its roots
type Layout struct {
	LocalDir     string `koanf:"local_dir" toml:"local_dir"`
	RepoDir      string `koanf:"repo_dir" toml:"repo_dir"`
	FeaturesDir  string `koanf:"features_dir" toml:"features_dir"`
	ManifestFile string `koanf:"manifest_file" toml:"manifest_file"`
	RegistryFile string `koanf:"registry_file" toml:"registry_file"`
}

// Shell configures how inline shell operations are run
type Shell struct {
	Interpreter string `koanf:"interpreter" toml:"interpreter"`
	Flag        string `koanf:"flag" toml:"flag"`
}

// Sync configures the git synchronization of the repository root
type Sync struct {
	Remote        string `koanf:"remote" toml:"remote"`
	Branch        string `koanf:"branch" toml:"branch"`
	CommitMessage string `koanf:"commit_message" toml:"commit_message"`
	AuthorName    string `koanf:"author_name" toml:"author_name"`
	AuthorEmail   string `koanf:"author_email" toml:"author_email"`
}

// TOML renders the configuration as a TOML document
func (c *Config) TOML() (string, error) {
	var buf bytes.Buffer
	enc := gotoml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
}
