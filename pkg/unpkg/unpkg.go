// Package unpkg fetches a previously published icon set from the unpkg CDN.
// It is the fallback source when no Figma token is available, guarded by a
// source-URL equality check so an incompatible icon set is never fetched
// silently.
package unpkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hellenic-development/icon-fetch/pkg/extractor"
)

// ErrVersionMismatch is returned when the published package points at a
// different Figma file than the local manifest.
var ErrVersionMismatch = errors.New("published package targets a different source file")

// Client fetches the published package contents from a versioned base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for https://unpkg.com/<name>@<version>/.
// An empty baseURL override uses the public unpkg host.
func NewClient(name, version, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://unpkg.com"
	}
	return &Client{
		baseURL: fmt.Sprintf("%s/%s@%s", baseURL, name, version),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// packageManifest is the slice of package.json this check reads.
type packageManifest struct {
	Figma struct {
		URL string `json:"url"`
	} `json:"figma"`
}

// VerifySource fetches the published package.json and compares its Figma
// source URL with the local manifest's. A mismatch returns
// ErrVersionMismatch before any icon data is fetched.
func (c *Client) VerifySource(localFigmaURL string) error {
	body, err := c.get("package.json")
	if err != nil {
		return err
	}

	var pkg packageManifest
	if err := json.Unmarshal(body, &pkg); err != nil {
		return fmt.Errorf("parse package.json: %w", err)
	}

	if pkg.Figma.URL != localFigmaURL {
		return fmt.Errorf("%w: local %q, published %q",
			ErrVersionMismatch, localFigmaURL, pkg.Figma.URL)
	}
	return nil
}

// Data fetches the published data.json icon map.
func (c *Client) Data() (map[string]extractor.Icon, error) {
	body, err := c.get("data.json")
	if err != nil {
		return nil, err
	}

	var icons map[string]extractor.Icon
	if err := json.Unmarshal(body, &icons); err != nil {
		return nil, fmt.Errorf("parse data.json: %w", err)
	}
	return icons, nil
}

// SVG fetches a single published icon body.
func (c *Client) SVG(name string) (string, error) {
	body, err := c.get(fmt.Sprintf("svg/%s.svg", name))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(path string) ([]byte, error) {
	url := c.baseURL + "/" + path

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch %s: status %d: %s", url, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
