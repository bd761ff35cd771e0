package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Environment variable names
const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "DOTFLEX_"

	// EnvConfigPath overrides the config root (paths.config)
	EnvConfigPath = "DOTFLEX_CONFIG_PATH"

	// EnvTargetPath overrides the target root (paths.target)
	EnvTargetPath = "DOTFLEX_TARGET_PATH"

	// EnvConfigFile points at an alternative settings file
	EnvConfigFile = "DOTFLEX_CONFIG_FILE"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// File is the settings file. Empty means DOTFLEX_CONFIG_FILE, then
	// $XDG_CONFIG_HOME/dotflex/config.toml. A missing file is not an error.
	// Files ending in .yaml or .yml are parsed as YAML, anything else as TOML.
	File string

	// Overrides are applied last, keyed by dotted path ("paths.target").
	// Empty string values are ignored.
	Overrides map[string]interface{}
}

// Load builds the effective configuration: embedded defaults, then the
// settings file, then environment variables, then explicit overrides.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	settingsPath := SettingsPath(opts.File)
	if _, err := os.Stat(settingsPath); err == nil {
		if err := k.Load(file.Provider(settingsPath), parserFor(settingsPath)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", settingsPath).
				WithDetail("path", settingsPath)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if overrides := nonEmpty(opts.Overrides); len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return unmarshal(k)
}

// Default returns the configuration made of the embedded defaults only
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		panic(err)
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic(err)
	}
	return cfg
}

// parserFor picks the koanf parser matching a settings file extension
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SettingsPath returns the settings file to read, honouring an explicit
// path and DOTFLEX_CONFIG_FILE before the XDG location.
func SettingsPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if fromEnv := os.Getenv(EnvConfigFile); fromEnv != "" {
		return fromEnv
	}
	return filepath.Join(xdg.ConfigHome, "dotflex", "config.toml")
}

// envKey maps an environment variable to a koanf key. The two historical
// root overrides are kept; everything else uses DOTFLEX_SECTION__KEY.
func envKey(s string) string {
	switch s {
	case EnvConfigPath:
		return "paths.config"
	case EnvTargetPath:
		return "paths.target"
	case EnvConfigFile:
		return ""
	}
	key := strings.TrimPrefix(s, EnvPrefix)
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(key, "__", "."))
}

func nonEmpty(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func validate(cfg *Config) error {
	required := map[string]string{
		"layout.local_dir":     cfg.Layout.LocalDir,
		"layout.repo_dir":      cfg.Layout.RepoDir,
		"layout.features_dir":  cfg.Layout.FeaturesDir,
		"layout.manifest_file": cfg.Layout.ManifestFile,
		"layout.registry_file": cfg.Layout.RegistryFile,
		"shell.interpreter":    cfg.Shell.Interpreter,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return errors.Newf(errors.ErrConfigParse, "configuration key %s must not be empty", key).
				WithDetail("key", key)
		}
	}
	if cfg.Layout.LocalDir == cfg.Layout.RepoDir {
		return errors.New(errors.ErrConfigParse, "layout.local_dir and layout.repo_dir must differ")
	}
	return nil
}
