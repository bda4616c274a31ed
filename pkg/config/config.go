// Package config loads the run configuration: environment variables and the
// project manifest describing which Figma file is canonical.
package config

import (
	"fmt"
	"os"
	"regexp"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Env holds the environment-variable configuration. The presence of Token
// selects the Figma path; its absence selects the CDN fallback.
type Env struct {
	Domain  string `env:"FIGMA_DOMAIN" envDefault:"api.figma.com"`
	Token   string `env:"FIGMA_TOKEN"`
	FileKey string `env:"FIGMA_FILE_KEY"`
}

// Manifest is the project's own configuration record, a YAML file pointing
// at the canonical Figma file and the published fallback package.
type Manifest struct {
	Figma struct {
		URL string `yaml:"url"`
	} `yaml:"figma"`
	Package struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"package"`
	Output string `yaml:"output"`
}

// Config is the fully loaded run configuration.
type Config struct {
	Env      Env
	Manifest Manifest
}

// Load reads .env (best effort), the environment, and the manifest file.
func Load(manifestPath string) (*Config, error) {
	_ = godotenv.Load()

	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	return &Config{Env: e, Manifest: m}, nil
}

// LoadManifest reads and parses the YAML manifest.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}

var fileKeyRe = regexp.MustCompile(`(?:file|design)/([A-Za-z0-9]+)(?:/|$)`)

// FileKey resolves the Figma file key: the FIGMA_FILE_KEY override wins,
// otherwise the key is parsed out of the manifest's Figma URL. Missing both
// is a configuration error, reported before any network call.
func (c *Config) FileKey() (string, error) {
	if c.Env.FileKey != "" {
		return c.Env.FileKey, nil
	}

	m := fileKeyRe.FindStringSubmatch(c.Manifest.Figma.URL)
	if m == nil {
		return "", fmt.Errorf("no file key: FIGMA_FILE_KEY unset and manifest figma.url %q has no file/<key>/ segment",
			c.Manifest.Figma.URL)
	}
	return m[1], nil
}
