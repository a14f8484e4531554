// Package main implements a CLI tool that turns extracted merge-commit
// lines into a grouped Markdown release document enriched with Jira data.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/webdev-tools/relnotes/pkg/app"
	"github.com/webdev-tools/relnotes/pkg/config"
)

var (
	releaseVersion = flag.String("release-version", "", "Release version for the document header")
	developVersion = flag.String("develop-version", "", "Develop version for the document header")
	releaseDate    = flag.String("release-date", "", "Release date in DD.MM.YYYY form (default: today)")
	prefix         = flag.String("prefix", "", "Issue prefix, e.g. WEBDEV")
	configPath     = flag.String("config", "", "YAML config file (default: "+config.DefaultConfigPath+" when present)")
	inputPath      = flag.String("input", "merges.txt", "File with extracted merge-commit lines")
	outputPath     = flag.String("output", "release_notes.md", "Output Markdown file")
	verbose        = flag.Bool("v", false, "Verbose output with detailed diagnostics")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Builds release_notes.md from extracted merge commits and Jira metadata.\n\n")
		fmt.Fprintf(os.Stderr, "Required environment: JIRA_URL, JIRA_API_TOKEN.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Resolve(config.FlagValues{
		ReleaseVersion: *releaseVersion,
		DevelopVersion: *developVersion,
		ReleaseDate:    *releaseDate,
		Prefix:         *prefix,
		ConfigPath:     *configPath,
		InputPath:      *inputPath,
		OutputPath:     *outputPath,
	}, os.Stdin, os.Stderr)
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), cfg, os.Stdout, os.Stderr); err != nil {
		slog.Error("Release notes build failed", "error", err)
		os.Exit(1)
	}
}
