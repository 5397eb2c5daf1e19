package main

import (
	"os"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/ytimocin/dapr-sdk-go/pkg/secrets"
	"gopkg.in/yaml.v3"
)

// envPrefix is prepended to every settings environment variable, e.g.
// DAPRPROPS_FILES or DAPRPROPS_SECRETS_VAULT_TOKEN.
const envPrefix = "DAPRPROPS_"

// Settings configures a daprprops run. Values come from the environment,
// an optional YAML settings file and command line flags, in that order of
// increasing precedence.
type Settings struct {
	// ConfigFile is the YAML settings file. It cannot name itself.
	ConfigFile string `yaml:"-" env:"CONFIG"`

	// Files are YAML or TOML property files loaded into the process store.
	Files []string `yaml:"property_files" env:"FILES" envSeparator:","`

	// Defines are "name=value" process properties applied after Files.
	Defines []string `yaml:"defines" env:"DEFINES" envSeparator:","`

	// Overrides are "name=value" overrides handed to the properties holder.
	Overrides []string `yaml:"overrides" env:"OVERRIDES" envSeparator:","`

	Debug bool `yaml:"debug" env:"DEBUG"`
	JSON  bool `yaml:"json" env:"JSON"`

	// LogJSON writes logs as JSON lines; NoColor disables console colors.
	LogJSON bool `yaml:"log_json" env:"LOG_JSON"`
	NoColor bool `yaml:"no_color" env:"NO_COLOR"`

	Secrets secrets.Config `yaml:"secrets" envPrefix:"SECRETS_"`
}

func settingsFromEnv() (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Prefix: envPrefix}); err != nil {
		return Settings{}, errors.Wrap(err, "error reading settings from environment")
	}
	return s, nil
}

func settingsFromFile(path string) (Settings, error) {
	var s Settings
	if path == "" {
		return s, nil
	}

	// #nosec G304 -- the settings file is chosen by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "error reading settings file %q", path)
	}
	if err = yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, errors.Wrapf(err, "error decoding settings file %q", path)
	}
	return s, nil
}

// mergeSettings merges layers in order; non-zero fields of later layers win.
func mergeSettings(layers ...Settings) (Settings, error) {
	var merged Settings
	for i := range layers {
		if err := mergo.Merge(&merged, layers[i], mergo.WithOverride); err != nil {
			return Settings{}, errors.Wrap(err, "error merging settings")
		}
	}
	return merged, nil
}

// boolFlags maps boolean flags to their settings field. Merging skips zero
// values, so a flag set to false on the command line is applied afterwards.
var boolFlags = map[string]func(*Settings) *bool{
	"debug":    func(s *Settings) *bool { return &s.Debug },
	"json":     func(s *Settings) *bool { return &s.JSON },
	"log-json": func(s *Settings) *bool { return &s.LogJSON },
	"no-color": func(s *Settings) *bool { return &s.NoColor },
}

// loadSettings builds the effective settings from env, the settings file
// and flags. changed reports whether a flag was given on the command line.
func loadSettings(flags Settings, changed func(name string) bool) (Settings, error) {
	fromEnv, err := settingsFromEnv()
	if err != nil {
		return Settings{}, err
	}

	path := flags.ConfigFile
	if path == "" {
		path = fromEnv.ConfigFile
	}
	fromFile, err := settingsFromFile(path)
	if err != nil {
		return Settings{}, err
	}

	merged, err := mergeSettings(fromEnv, fromFile, flags)
	if err != nil {
		return Settings{}, err
	}
	for name, field := range boolFlags {
		if changed(name) {
			*field(&merged) = *field(&flags)
		}
	}
	return merged, nil
}
