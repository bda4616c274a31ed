// Package iconfetch pulls icon definitions from the Figma API, or from the
// published package on the unpkg CDN when no API token is available,
// optimizes each SVG, and writes the icons plus a data.json manifest to a
// local output directory for consumption by a downstream icon library.
//
// The CLI lives in cmd/icon-fetch; this root package exposes the same
// pipeline as a Go API so that callers can embed the fetch in their own
// build tooling without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named iconfetch:
//
//	import "github.com/hellenic-development/icon-fetch" // package iconfetch
//
// # Quick start
//
//	result, err := iconfetch.Run(iconfetch.Options{
//	    Token:     os.Getenv("FIGMA_TOKEN"),
//	    FileKey:   "ABC123",
//	    OutputDir: "icons",
//	    Optimizer: svgopt.DefaultSettings(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %d icons from %s\n", result.Written, result.Source)
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
// # Source selection
//
// A non-empty [Options.Token] selects the Figma path: the document tree is
// fetched, component nodes are collected, and their SVG exports are
// downloaded with bounded concurrency. An empty token selects the CDN
// fallback: the published package is verified against the local manifest's
// Figma URL, then data.json and the per-icon SVG files are fetched from the
// versioned unpkg base URL.
//
// # Failure policy
//
// The run is a one-shot batch job: it completes or fails. An SVG that fails
// optimization aborts the whole run rather than being skipped. The output
// directory is cleared at the start of every run, so reruns are
// self-correcting rather than resumable.
package iconfetch
