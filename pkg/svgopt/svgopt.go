// Package svgopt adapts an external vector-optimization library to the icon
// pipeline, with settings loaded from a YAML file.
package svgopt

import (
	"fmt"
	"os"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
	"gopkg.in/yaml.v3"
)

const mediaType = "image/svg+xml"

// Settings configures the optimizer. The zero value is not useful; start
// from DefaultSettings.
type Settings struct {
	// Precision is the number of significant digits kept in path data.
	// 0 keeps full precision.
	Precision int `yaml:"precision"`
	// KeepComments retains XML comments in the optimized output.
	KeepComments bool `yaml:"keepComments"`
}

// DefaultSettings returns the settings used when no settings file is given.
func DefaultSettings() Settings {
	return Settings{Precision: 3}
}

// LoadSettings reads optimizer settings from a YAML file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read optimizer settings: %w", err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse optimizer settings %s: %w", path, err)
	}
	return s, nil
}

// OptimizeError marks an optimization failure for a single icon. It is fatal
// for the whole run: a malformed icon must never be silently skipped.
type OptimizeError struct {
	Name string
	Err  error
}

func (e *OptimizeError) Error() string {
	return fmt.Sprintf("optimize icon %q: %v", e.Name, e.Err)
}

func (e *OptimizeError) Unwrap() error { return e.Err }

// Optimizer optimizes SVG bodies. Safe for concurrent use.
type Optimizer struct {
	m *minify.M
}

// New builds an Optimizer from settings.
func New(s Settings) *Optimizer {
	m := minify.New()
	m.Add(mediaType, &svg.Minifier{
		Precision:    s.Precision,
		KeepComments: s.KeepComments,
	})
	return &Optimizer{m: m}
}

// Optimize returns the optimized form of an SVG body. The name is carried
// into the error for reporting.
func (o *Optimizer) Optimize(name, body string) (string, error) {
	out, err := o.m.String(mediaType, body)
	if err != nil {
		return "", &OptimizeError{Name: name, Err: err}
	}
	return out, nil
}
