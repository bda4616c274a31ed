package iconfetch

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/hellenic-development/icon-fetch/pkg/extractor"
	"github.com/hellenic-development/icon-fetch/pkg/figma"
	"github.com/hellenic-development/icon-fetch/pkg/svgopt"
	"github.com/hellenic-development/icon-fetch/pkg/taskq"
	"github.com/hellenic-development/icon-fetch/pkg/unpkg"
	"github.com/hellenic-development/icon-fetch/pkg/writer"
)

// Options configures one fetch run.
type Options struct {
	Token   string // Figma personal access token; empty selects the CDN fallback
	Domain  string // Figma API domain, empty = figma.DefaultDomain
	FileKey string // Figma file key (resolved by the caller)

	FigmaURL       string // canonical file URL from the manifest, checked by the fallback
	PackageName    string // published package for the fallback
	PackageVersion string
	UnpkgBase      string // unpkg host override, empty = the public CDN

	OutputDir   string // destination directory, default "icons"
	Concurrency int    // max parallel downloads, default 5

	Optimizer svgopt.Settings
	Logger    Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the fetch output.
type Result struct {
	Icons     map[string]extractor.Icon
	Source    string // "figma" or "unpkg"
	OutputDir string
	Written   int
}

const (
	defaultOutputDir   = "icons"
	defaultConcurrency = 5

	sourceFigma = "figma"
	sourceUnpkg = "unpkg"
)

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Progress tracks download counts for one run. It belongs to the run rather
// than the package: counters are updated from queue goroutines, hence the
// atomics.
type Progress struct {
	total int64
	done  atomic.Int64
}

func newProgress(total int) *Progress {
	return &Progress{total: int64(total)}
}

// Tick records one settled download and returns the counts for display.
func (p *Progress) Tick() (done, total int64) {
	return p.done.Add(1), p.total
}

// Run executes the fetch pipeline and returns the result.
func Run(opts Options) (*Result, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = defaultOutputDir
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	opts.logInfo("Clearing output directory %s...", opts.OutputDir)
	if err := writer.Clean(opts.OutputDir); err != nil {
		return nil, err
	}

	optimizer := svgopt.New(opts.Optimizer)

	var (
		icons  map[string]extractor.Icon
		source string
		err    error
	)
	if opts.Token != "" {
		source = sourceFigma
		icons, err = opts.fetchFigma(optimizer)
	} else {
		source = sourceUnpkg
		opts.logWarn("FIGMA_TOKEN not set, falling back to the published package")
		icons, err = opts.fetchUnpkg(optimizer)
	}
	if err != nil {
		return nil, err
	}

	opts.logInfo("Writing %d icon(s) to %s...", len(icons), opts.OutputDir)
	for name, icon := range icons {
		if _, err := writer.WriteSVG(opts.OutputDir, name, icon.SVG); err != nil {
			return nil, err
		}
	}
	if err := writer.WriteData(opts.OutputDir, icons); err != nil {
		return nil, err
	}

	return &Result{
		Icons:     icons,
		Source:    source,
		OutputDir: opts.OutputDir,
		Written:   len(icons),
	}, nil
}

// fetchFigma pulls the document tree, collects component nodes, and downloads
// each icon's SVG export with bounded concurrency.
func (o *Options) fetchFigma(optimizer *svgopt.Optimizer) (map[string]extractor.Icon, error) {
	if o.FileKey == "" {
		return nil, fmt.Errorf("no Figma file key configured")
	}

	client := figma.NewClient(o.Token, o.Domain)

	o.logInfo("Fetching file %s from Figma...", o.FileKey)
	file, err := client.GetFile(o.FileKey)
	if err != nil {
		return nil, err
	}
	o.logInfo("File: %s", file.Name)

	icons, err := extractor.Components(&file.Document, o.FileKey, file.Components)
	if err != nil {
		return nil, err
	}
	o.logInfo("Found %d component(s)", len(icons))

	names := sortedNames(icons)
	ids := make([]string, len(names))
	for i, name := range names {
		ids[i] = icons[name].FigmaID
	}

	o.logInfo("Requesting SVG export URLs...")
	images, err := client.GetImages(o.FileKey, ids, "svg")
	if err != nil {
		return nil, err
	}

	progress := newProgress(len(names))
	bodies := make([]string, len(names))
	tasks := make([]taskq.Task, len(names))
	for i, name := range names {
		icon := icons[name]
		tasks[i] = func() error {
			url := images[icon.FigmaID]
			if url == "" {
				return fmt.Errorf("no export URL returned for icon %q (node %s)", name, icon.FigmaID)
			}

			raw, err := client.Fetch(url)
			if err != nil {
				return fmt.Errorf("download icon %q: %w", name, err)
			}

			body, err := optimizer.Optimize(name, string(raw))
			if err != nil {
				return err
			}

			bodies[i] = body
			done, total := progress.Tick()
			o.logInfo("Downloaded %d/%d: %s", done, total, name)
			return nil
		}
	}

	if err := taskq.Run(o.Concurrency, tasks); err != nil {
		return nil, err
	}

	for i, name := range names {
		icon := icons[name]
		icon.SVG = bodies[i]
		icons[name] = icon
	}
	return icons, nil
}

// fetchUnpkg pulls the published icon set from the CDN after verifying it
// corresponds to the same source file as the local manifest.
func (o *Options) fetchUnpkg(optimizer *svgopt.Optimizer) (map[string]extractor.Icon, error) {
	if o.PackageName == "" || o.PackageVersion == "" {
		return nil, fmt.Errorf("no published package configured for the fallback")
	}

	client := unpkg.NewClient(o.PackageName, o.PackageVersion, o.UnpkgBase)

	o.logInfo("Verifying published package %s@%s...", o.PackageName, o.PackageVersion)
	if err := client.VerifySource(o.FigmaURL); err != nil {
		return nil, err
	}

	o.logInfo("Fetching published data.json...")
	icons, err := client.Data()
	if err != nil {
		return nil, err
	}
	if len(icons) == 0 {
		return nil, extractor.ErrNoComponents
	}
	o.logInfo("Found %d published icon(s)", len(icons))

	names := sortedNames(icons)
	progress := newProgress(len(names))
	bodies := make([]string, len(names))
	tasks := make([]taskq.Task, len(names))
	for i, name := range names {
		tasks[i] = func() error {
			raw, err := client.SVG(name)
			if err != nil {
				return err
			}

			body, err := optimizer.Optimize(name, raw)
			if err != nil {
				return err
			}

			bodies[i] = body
			done, total := progress.Tick()
			o.logInfo("Downloaded %d/%d: %s", done, total, name)
			return nil
		}
	}

	if err := taskq.Run(o.Concurrency, tasks); err != nil {
		return nil, err
	}

	for i, name := range names {
		icon := icons[name]
		icon.SVG = bodies[i]
		icons[name] = icon
	}
	return icons, nil
}

func sortedNames(icons map[string]extractor.Icon) []string {
	names := make([]string, 0, len(icons))
	for name := range icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
