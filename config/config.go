package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	YAMLFile = ".arctree.yml"
	TOMLFile = ".arctree.toml"
)

// Styles accepted by the renderer.
const (
	StyleTree   = "tree"
	StyleIndent = "indent"
	StylePaths  = "paths"
)

var ErrUnknownStyle = errors.New("config: unknown style")

// Config is the per-project configuration.
type Config struct {
	// Ignore patterns are added to the built-in ones.
	Ignore      []string `yaml:"ignore" toml:"ignore"`
	Gitignore   bool     `yaml:"gitignore" toml:"gitignore"`
	Style       string   `yaml:"style" toml:"style"`
	Compress    bool     `yaml:"compress" toml:"compress"`
	VerifyClean bool     `yaml:"verify_clean" toml:"verify_clean"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Style:    StyleTree,
		Compress: true,
	}
}

// Load reads .arctree.yml, or .arctree.toml, from root. Fields missing
// from the file keep their defaults.
func Load(root string) (Config, error) {
	cfg := Default()

	yamlPath := filepath.Join(root, YAMLFile)
	data, err := os.ReadFile(yamlPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", yamlPath, err)
		}
		return cfg, cfg.Validate()
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, err
	}

	tomlPath := filepath.Join(root, TOMLFile)
	if _, err := os.Stat(tomlPath); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(tomlPath, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", tomlPath, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Style {
	case StyleTree, StyleIndent, StylePaths:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStyle, c.Style)
	}
}
