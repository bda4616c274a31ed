// Package writer owns the output directory: one SVG file per icon plus a
// data.json manifest. There is no atomic guarantee; the directory is cleared
// at the start of every run so reruns are self-correcting.
package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hellenic-development/icon-fetch/pkg/extractor"
)

// SVGDir is the subdirectory holding the per-icon SVG files.
const SVGDir = "svg"

// Clean deletes the output directory and recreates it together with the
// svg/ subdirectory.
func Clean(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear output directory %q: %w", dir, err)
	}
	if err := os.MkdirAll(filepath.Join(dir, SVGDir), 0755); err != nil {
		return fmt.Errorf("create output directory %q: %w", dir, err)
	}
	return nil
}

// WriteSVG writes one icon body under dir/svg/ and returns the file name.
func WriteSVG(dir, name, body string) (string, error) {
	fileName := FileName(name) + ".svg"
	path := filepath.Join(dir, SVGDir, fileName)

	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("write %q: %w", path, err)
	}
	return fileName, nil
}

// WriteData serializes the full icon map to dir/data.json.
func WriteData(dir string, icons map[string]extractor.Icon) error {
	data, err := json.MarshalIndent(icons, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal icon data: %w", err)
	}

	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// FileName converts an icon name to a kebab-case file name, falling back to
// "icon" when nothing survives sanitizing.
func FileName(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	if result.Len() == 0 {
		return "icon"
	}
	return result.String()
}
