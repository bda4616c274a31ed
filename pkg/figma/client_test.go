package figma

import (
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestGetFile(t *testing.T) {
	var gotToken, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Figma-Token")
		gotPath = r.URL.Path
		fmt.Fprint(w, `{
			"name": "Icons",
			"version": "42",
			"document": {"id": "0:0", "type": "DOCUMENT", "children": [
				{"id": "1:1", "name": "alert", "type": "COMPONENT",
				 "absoluteBoundingBox": {"x": 0, "y": 0, "width": 16, "height": 16}}
			]},
			"components": {"1:1": {"key": "k", "name": "alert", "description": "keywords: warn"}}
		}`)
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL)
	file, err := c.GetFile("ABC123")
	if err != nil {
		t.Fatalf("GetFile() unexpected error: %v", err)
	}

	if gotToken != "secret" {
		t.Errorf("auth header = %q, want %q", gotToken, "secret")
	}
	if gotPath != "/v1/files/ABC123" {
		t.Errorf("request path = %q, want /v1/files/ABC123", gotPath)
	}
	if file.Name != "Icons" {
		t.Errorf("file name = %q, want Icons", file.Name)
	}
	if len(file.Document.Children) != 1 || file.Document.Children[0].Type != "COMPONENT" {
		t.Errorf("document tree not decoded: %+v", file.Document)
	}
	if file.Components["1:1"].Description != "keywords: warn" {
		t.Errorf("components map not decoded: %+v", file.Components)
	}
	bb := file.Document.Children[0].AbsoluteBoundingBox
	if bb == nil || bb.Width != 16 || bb.Height != 16 {
		t.Errorf("bounding box not decoded: %+v", bb)
	}
}

func TestGetFileNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"err": "not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL)
	if _, err := c.GetFile("MISSING"); err == nil {
		t.Fatal("GetFile() expected error for 404 response")
	}
}

func TestGetImages(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  bool
		wantURLs map[string]string
	}{
		{
			name:     "success",
			response: `{"err": "", "images": {"1:1": "https://cdn.example/a.svg", "1:2": "https://cdn.example/b.svg"}}`,
			wantURLs: map[string]string{"1:1": "https://cdn.example/a.svg", "1:2": "https://cdn.example/b.svg"},
		},
		{
			name:     "API error field",
			response: `{"err": "rate limited", "images": {}}`,
			wantErr:  true,
		},
		{
			name:     "malformed body",
			response: `{"images": `,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery url.Values
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				fmt.Fprint(w, tt.response)
			}))
			defer srv.Close()

			c := NewClient("secret", srv.URL)
			got, err := c.GetImages("ABC123", []string{"1:1", "1:2"}, "svg")
			if tt.wantErr {
				if err == nil {
					t.Fatal("GetImages() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("GetImages() unexpected error: %v", err)
			}

			if gotQuery.Get("ids") != "1:1,1:2" {
				t.Errorf("ids query = %q, want %q", gotQuery.Get("ids"), "1:1,1:2")
			}
			if gotQuery.Get("format") != "svg" {
				t.Errorf("format query = %q, want svg", gotQuery.Get("format"))
			}
			if len(got) != len(tt.wantURLs) {
				t.Fatalf("GetImages() = %v, want %v", got, tt.wantURLs)
			}
			for id, u := range tt.wantURLs {
				if got[id] != u {
					t.Errorf("GetImages()[%s] = %q, want %q", id, got[id], u)
				}
			}
		})
	}
}

func TestFetchPlainURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Figma-Token") != "" {
			t.Error("auth header must not be sent to image URLs")
		}
		fmt.Fprint(w, `<svg><path d="M1 2"/></svg>`)
	}))
	defer srv.Close()

	c := NewClient("secret", "")
	body, err := c.Fetch(srv.URL + "/img/a.svg")
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if string(body) != `<svg><path d="M1 2"/></svg>` {
		t.Errorf("Fetch() body = %q", body)
	}
}

func TestIsCertVerifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown authority",
			err:  fmt.Errorf("get: %w", x509.UnknownAuthorityError{}),
			want: true,
		},
		{
			name: "plain transport error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil-ish wrapped error",
			err:  fmt.Errorf("get: %w", errors.New("timeout")),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCertVerifyError(tt.err); got != tt.want {
				t.Errorf("isCertVerifyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCertFallbackRetriesUntrustedServer(t *testing.T) {
	// A TLS server with a self-signed certificate the default trust store
	// rejects: the first attempt fails verification and the one-shot
	// fallback succeeds.
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "Icons", "document": {"id": "0:0", "type": "DOCUMENT"}}`)
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL)
	file, err := c.GetFile("ABC123")
	if err != nil {
		t.Fatalf("GetFile() should recover from certificate verification failure, got: %v", err)
	}
	if file.Name != "Icons" {
		t.Errorf("file name = %q, want Icons", file.Name)
	}
}
