package figma

// FileResponse represents the response from the Figma file API endpoint.
// It contains the file metadata, the document tree, and a flat map of
// component definitions keyed by node ID.
type FileResponse struct {
	Name          string               `json:"name"`
	LastModified  string               `json:"lastModified"`
	Version       string               `json:"version"`
	Document      Node                 `json:"document"`
	Components    map[string]Component `json:"components"`
	SchemaVersion int                  `json:"schemaVersion"`
}

// ImagesResponse represents the response from the Figma image render endpoint.
// On success Images maps each requested node ID to a short-lived download URL;
// on failure Err carries the API error message.
type ImagesResponse struct {
	Err    string            `json:"err"`
	Images map[string]string `json:"images"`
}

// Component represents a Figma component definition with its metadata.
// The free-text Description may carry keyword annotations for the icon.
type Component struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Node represents a single element in the Figma document tree hierarchy.
// Only the fields read by the component walk are mapped; the API returns
// far more, which is ignored on decode.
type Node struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	Children            []Node     `json:"children,omitempty"`
	AbsoluteBoundingBox *Rectangle `json:"absoluteBoundingBox,omitempty"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions (Width, Height).
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
