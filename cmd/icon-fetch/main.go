package main

import (
	"errors"
	"fmt"
	"os"

	iconfetch "github.com/hellenic-development/icon-fetch"
	"github.com/hellenic-development/icon-fetch/pkg/config"
	"github.com/hellenic-development/icon-fetch/pkg/figma"
	"github.com/hellenic-development/icon-fetch/pkg/svgopt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = figma.Version

var (
	manifestPath string
	outputDir    string
	concurrency  int
	settingsPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "icon-fetch",
		Short: "Fetch and optimize icons from Figma",
		Long:  "A build-time tool that pulls icon components from a Figma file (or the published package on unpkg when no token is set), optimizes the SVGs, and writes them with a data.json manifest",
		Run:   run,
	}

	rootCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "icons.yml", "Manifest file describing the canonical Figma file")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from manifest, else \"icons\")")
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 5, "Max parallel icon downloads")
	rootCmd.Flags().StringVar(&settingsPath, "svgopt", "", "Optimizer settings YAML file (optional)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("icon-fetch version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🎨 Icon Fetch")
	cyan.Println("=============")
	cyan.Println()

	cfg, err := config.Load(manifestPath)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	settings := svgopt.DefaultSettings()
	if settingsPath != "" {
		settings, err = svgopt.LoadSettings(settingsPath)
		if err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	opts := iconfetch.Options{
		Token:          cfg.Env.Token,
		Domain:         cfg.Env.Domain,
		FigmaURL:       cfg.Manifest.Figma.URL,
		PackageName:    cfg.Manifest.Package.Name,
		PackageVersion: cfg.Manifest.Package.Version,
		OutputDir:      outputDir,
		Concurrency:    concurrency,
		Optimizer:      settings,
		Logger:         &cliLogger{},
	}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.Manifest.Output
	}

	// The file key is only required on the Figma path; the fallback works
	// from the manifest URL alone.
	if opts.Token != "" {
		opts.FileKey, err = cfg.FileKey()
		if err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	result, err := iconfetch.Run(opts)
	if err != nil {
		var optErr *svgopt.OptimizeError
		if errors.As(err, &optErr) {
			// A malformed icon must never be silently skipped.
			red.Printf("Fatal: %v\n", optErr)
			os.Exit(1)
		}
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cyan.Println("\n📊 Fetch Summary:")
	fmt.Printf("  • Source: %s\n", result.Source)
	fmt.Printf("  • Icons: %d\n", result.Written)
	fmt.Printf("  • Output: %s\n", result.OutputDir)

	green.Printf("\n✨ Successfully wrote %d icon(s) to %s\n\n", result.Written, result.OutputDir)
}

// cliLogger implements iconfetch.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
