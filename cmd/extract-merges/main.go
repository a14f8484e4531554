// Package main implements a CLI tool that extracts issue-related merge
// commits from a git history into a flat text file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/webdev-tools/relnotes/pkg/extract"
	"github.com/webdev-tools/relnotes/pkg/gitlog"
)

var (
	sinceRef = flag.String("since", "", "Start from the given tag or commit, exclusive (e.g. 1.2.3 or develop)")
	maxCount = flag.Int("max", 500, "Maximum number of merge commits to scan")
	prefix   = flag.String("prefix", "WEBDEV", "Issue prefix to match; empty keeps every merge-branch line")
	fromFile = flag.String("from-file", "", "Read git log lines from a file instead of running git")
	output   = flag.String("output", "merges.txt", "Output file for matched lines; written unless explicitly set to '' to only report the count")
	verbose  = flag.Bool("v", false, "Verbose output with detailed diagnostics")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Extracts merge commits related to tracked issues.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --since 1.2.5\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --since 1.2.5 --output merges.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --since 1.2.5 --prefix ''\n", os.Args[0])
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

	ctx := context.Background()

	var lines []string
	var err error
	if *fromFile != "" {
		lines, err = gitlog.LinesFromFile(*fromFile)
		if err != nil {
			slog.Error("Failed to read log file", "path", *fromFile, "error", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintln(os.Stderr, "🔍 Извлекаю merge-коммиты из git...")
		source := gitlog.Source{}
		lines, err = source.MergeCommits(ctx, *sinceRef, *maxCount)
		if err != nil {
			slog.Error("Failed to run git log", "error", err)
			os.Exit(1)
		}
	}

	filter, err := extract.NewFilter(*prefix)
	if err != nil {
		slog.Error("Invalid prefix", "prefix", *prefix, "error", err)
		os.Exit(1)
	}
	matched := filter.Lines(lines)

	if *output == "" {
		fmt.Fprintf(os.Stderr, "ℹ️  Найдено %d merge-коммитов.\n", len(matched))
		return
	}

	text := strings.Join(matched, "\n")
	if err := os.WriteFile(*output, []byte(text), 0o644); err != nil {
		slog.Error("Failed to write output file", "path", *output, "error", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "✅ Найдено %d merge-коммитов. Сохранено в %s\n", len(matched), *output)
}
