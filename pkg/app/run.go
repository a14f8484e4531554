// Package app orchestrates the release-notes build: input file, parse,
// tracker lookup, rendered document.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/webdev-tools/relnotes/pkg/config"
	"github.com/webdev-tools/relnotes/pkg/jira"
	"github.com/webdev-tools/relnotes/pkg/notes"
)

// Run executes the builder workflow with a resolved configuration. The
// finished document is echoed to out; progress messages go to status. When
// no valid issue keys are parsed, Run reports that on status and returns
// without touching the output file.
func Run(ctx context.Context, cfg config.Config, out, status io.Writer) error {
	lines, err := notes.ReadLines(cfg.InputPath)
	if err != nil {
		return err
	}

	parser, err := notes.NewParser(cfg.Prefix)
	if err != nil {
		return err
	}
	tasks := parser.Parse(lines)

	if len(tasks) == 0 {
		fmt.Fprintf(status, "Нет корректных задач %s для обработки.\n", cfg.Prefix)
		return nil
	}

	fmt.Fprintf(status, "Запрашиваю %d задач из Jira...\n", len(tasks))

	client, err := jira.New(jira.Config{
		BaseURL:      cfg.JiraURL,
		Token:        cfg.JiraToken,
		ConnectKey:   cfg.ConnectKey,
		SharedSecret: cfg.SharedSecret,
		HTTPTimeout:  30 * time.Second,
	})
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(tasks))
	for key := range tasks {
		keys = append(keys, key)
	}
	issues, err := client.SearchIssues(ctx, keys)
	if err != nil {
		return err
	}

	records := make(map[string]notes.Record, len(issues))
	for key, issue := range issues {
		records[key] = notes.Record{Summary: issue.Summary, Status: issue.Status}
	}

	document := notes.Render(notes.Meta{
		ReleaseVersion: cfg.ReleaseVersion,
		DevelopVersion: cfg.DevelopVersion,
		ReleaseDate:    cfg.ReleaseDate,
	}, cfg.Prefix, tasks, records)

	if err := os.WriteFile(cfg.OutputPath, []byte(document), 0o644); err != nil {
		return fmt.Errorf("write release notes: %w", err)
	}

	fmt.Fprintln(out, document)
	return nil
}
