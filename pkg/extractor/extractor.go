// Package extractor walks a Figma document tree and collects the component
// nodes that represent exportable icons.
package extractor

import (
	"errors"
	"regexp"
	"strings"

	"github.com/hellenic-development/icon-fetch/pkg/figma"
)

// componentType is the node type marking an exportable icon.
const componentType = "COMPONENT"

// ErrNoComponents is returned when a full traversal finds zero component
// nodes. The run treats this as fatal even though the fetch itself succeeded.
var ErrNoComponents = errors.New("no component nodes found in document")

// Icon is one exportable icon together with its metadata. It is created when
// a matching node is found, mutated once to attach the optimized SVG body,
// and immutable afterward.
type Icon struct {
	Name     string   `json:"name"`
	FigmaID  string   `json:"figma_id"`
	FileID   string   `json:"file_id"`
	Keywords []string `json:"keywords"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	SVG      string   `json:"svg,omitempty"`
}

// Components walks the document tree depth-first in pre-order and returns a
// map from icon name to Icon for every component node found. A component
// node is terminal: its children are never visited. On duplicate names the
// later match overwrites the earlier one. Descriptions for keyword extraction
// come from the file's component map, keyed by node ID.
//
// Returns ErrNoComponents when the traversal finds nothing.
func Components(root *figma.Node, fileKey string, components map[string]figma.Component) (map[string]Icon, error) {
	icons := collect(root, fileKey, components, make(map[string]Icon))
	if len(icons) == 0 {
		return nil, ErrNoComponents
	}
	return icons, nil
}

// collect threads the accumulator explicitly through the recursion so the
// walk stays a pure function of its inputs.
func collect(node *figma.Node, fileKey string, components map[string]figma.Component, acc map[string]Icon) map[string]Icon {
	if node.Type == componentType {
		icon := Icon{
			Name:     node.Name,
			FigmaID:  node.ID,
			FileID:   fileKey,
			Keywords: Keywords(components[node.ID].Description),
		}
		if bb := node.AbsoluteBoundingBox; bb != nil {
			icon.Width = bb.Width
			icon.Height = bb.Height
		}
		acc[node.Name] = icon
		return acc
	}

	for i := range node.Children {
		acc = collect(&node.Children[i], fileKey, components, acc)
	}
	return acc
}

var keywordsRe = regexp.MustCompile(`(?i)keywords:[ \t]*(.+)`)

// Keywords extracts a comma-separated keyword list from a free-text
// description via the case-insensitive single-line pattern "keywords: a, b".
// A description without the pattern yields an empty list. This is a
// best-effort heuristic; individual keywords are not validated.
func Keywords(description string) []string {
	keywords := []string{}

	m := keywordsRe.FindStringSubmatch(description)
	if m == nil {
		return keywords
	}

	for _, part := range strings.Split(m[1], ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
