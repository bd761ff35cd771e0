// Package config builds the effective dotflex settings with koanf.
//
// Sources, lowest priority first: the embedded defaults.toml, the user's
// settings file (TOML, or YAML by extension), DOTFLEX_* environment
// variables, and values passed in from command-line flags. The result
// decides where the roots live, how the config root is laid out, which
// interpreter runs inline shell operations and how the repository syncs.
package config
