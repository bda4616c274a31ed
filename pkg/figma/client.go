package figma

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Version is the figma API client version, also reported by the CLI.
const Version = "1.0.0"

// DefaultDomain is the Figma API host used when FIGMA_DOMAIN is not set.
const DefaultDomain = "api.figma.com"

// Client represents a Figma API client with configured HTTP settings for
// reliable communication with the Figma API. The API host is configurable so
// that runs behind corporate proxies or API mirrors keep working.
type Client struct {
	accessToken string
	baseURL     string // e.g. https://api.figma.com/v1
	httpClient  *http.Client
}

// NewClient creates a new Figma API client with the provided personal access
// token and API domain (empty = DefaultDomain). A domain without a scheme is
// reached over https; a full URL is used as-is. The client is configured with
// connection pooling, disabled HTTP/2 (for large file stability), and a long
// timeout for very large files.
func NewClient(accessToken, domain string) *Client {
	if domain == "" {
		domain = DefaultDomain
	}
	base := domain
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large files
		ForceAttemptHTTP2: false,
	}

	return &Client{
		accessToken: accessToken,
		baseURL:     base + "/v1",
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
	}
}

// GetFile retrieves complete file data from the Figma API including the
// document tree and the component map.
func (c *Client) GetFile(fileKey string) (*FileResponse, error) {
	body, err := c.get(fmt.Sprintf("%s/files/%s", c.baseURL, fileKey), true)
	if err != nil {
		return nil, fmt.Errorf("fetch file %s: %w", fileKey, err)
	}

	var fileResp FileResponse
	if err := json.Unmarshal(body, &fileResp); err != nil {
		return nil, fmt.Errorf("parse file response: %w", err)
	}

	return &fileResp, nil
}

// GetImages asks the Figma render endpoint for export URLs of the given node
// IDs in the given format ("svg", "png", ...). The returned map holds one
// short-lived download URL per node ID. An error field in the response body
// is surfaced as an error.
func (c *Client) GetImages(fileKey string, nodeIDs []string, format string) (map[string]string, error) {
	u := fmt.Sprintf("%s/images/%s?ids=%s&format=%s",
		c.baseURL, fileKey, url.QueryEscape(strings.Join(nodeIDs, ",")), format)

	body, err := c.get(u, true)
	if err != nil {
		return nil, fmt.Errorf("fetch image URLs: %w", err)
	}

	var imgResp ImagesResponse
	if err := json.Unmarshal(body, &imgResp); err != nil {
		return nil, fmt.Errorf("parse images response: %w", err)
	}
	if imgResp.Err != "" {
		return nil, fmt.Errorf("images API error: %s", imgResp.Err)
	}

	return imgResp.Images, nil
}

// Fetch performs a plain GET against an absolute URL, such as the short-lived
// S3 URLs returned by GetImages. No auth header is sent.
func (c *Client) Fetch(rawURL string) ([]byte, error) {
	return c.get(rawURL, false)
}

// get issues a GET request with the standard headers. On a TLS certificate
// verification failure (stale local trust store) the request is retried
// exactly once through a verification-skipping transport; every other
// failure propagates immediately.
func (c *Client) get(url string, auth bool) ([]byte, error) {
	body, err := c.doGet(c.httpClient, url, auth)
	if err != nil && isCertVerifyError(err) {
		return c.doGet(insecureClient(c.httpClient), url, auth)
	}
	return body, err
}

func (c *Client) doGet(client *http.Client, url string, auth bool) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("X-Figma-Token", c.accessToken)
		// Disable HTTP/2 to avoid stream errors with large files
		req.Header.Set("Connection", "close")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

// isCertVerifyError reports whether err stems from certificate chain
// verification rather than any other transport failure.
func isCertVerifyError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var authErr x509.UnknownAuthorityError
	return errors.As(err, &authErr)
}

// insecureClient clones the client with a transport that skips chain
// verification, keeping the original timeout.
func insecureClient(base *http.Client) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   false,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
	}
	return &http.Client{
		Timeout:   base.Timeout,
		Transport: transport,
	}
}
