package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/webdev-tools/relnotes/pkg/config"
)

func writeInput(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, "merges.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write input file: %v", err)
	}
	return path
}

func TestRunZeroParsedKeysWritesNoFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir,
		"a1 Merge branch 'feature/OTHER-1' into develop",
		"b2 Regular commit without a merge pattern",
	)
	output := filepath.Join(dir, "release_notes.md")

	// Tracker settings deliberately absent: with nothing parsed, no tracker
	// connection may be attempted.
	cfg := config.Config{
		ReleaseVersion: "1.0",
		DevelopVersion: "2.0",
		ReleaseDate:    "01.01.2026",
		Prefix:         "WEBDEV",
		InputPath:      input,
		OutputPath:     output,
	}

	var out, status bytes.Buffer
	if err := Run(context.Background(), cfg, &out, &status); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(status.String(), "Нет корректных задач WEBDEV") {
		t.Errorf("missing informational message, status output: %q", status.String())
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("no output file may be written when nothing was parsed (stat err: %v)", err)
	}
	if out.Len() != 0 {
		t.Errorf("no document may be echoed, got %q", out.String())
	}
}

func TestRunBuildsDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"issues":[
			{"key":"WEBDEV-7","fields":{"summary":"Новый логин","status":{"name":"Done"}}}
		]}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	input := writeInput(t, dir,
		"a1 Merge branch 'feature/WEBDEV-7-login' into develop",
		"b2 Merge branch 'bugfix/WEBDEV-2' into develop",
	)
	output := filepath.Join(dir, "release_notes.md")

	cfg := config.Config{
		ReleaseVersion: "1.4.0",
		DevelopVersion: "1.5.0-dev",
		ReleaseDate:    "21.08.2026",
		Prefix:         "WEBDEV",
		JiraURL:        server.URL,
		JiraToken:      "secret-token",
		InputPath:      input,
		OutputPath:     output,
	}

	var out, status bytes.Buffer
	if err := Run(context.Background(), cfg, &out, &status); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(status.String(), "Запрашиваю 2 задач из Jira") {
		t.Errorf("missing progress message, status output: %q", status.String())
	}

	written, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	document := string(written)

	if !strings.Contains(document, "  + Новый логин (задача WEBDEV-7)[Done]") {
		t.Errorf("tracker data missing from document:\n%s", document)
	}
	if !strings.Contains(document, "  + [Название не найдено] (задача WEBDEV-2)[Todo]") {
		t.Errorf("placeholder line missing from document:\n%s", document)
	}
	if out.String() != document+"\n" {
		t.Errorf("echoed document differs from the written file")
	}
}

func TestRunMissingInputFile(t *testing.T) {
	cfg := config.Config{
		ReleaseVersion: "1.0",
		DevelopVersion: "2.0",
		Prefix:         "WEBDEV",
		InputPath:      filepath.Join(t.TempDir(), "absent.txt"),
		OutputPath:     filepath.Join(t.TempDir(), "release_notes.md"),
	}

	var out, status bytes.Buffer
	if err := Run(context.Background(), cfg, &out, &status); err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}

func TestRunTrackerFailureLeavesNoOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorMessages":["bad jql"]}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	input := writeInput(t, dir, "a1 Merge branch 'feature/WEBDEV-7' into develop")
	output := filepath.Join(dir, "release_notes.md")

	cfg := config.Config{
		ReleaseVersion: "1.0",
		DevelopVersion: "2.0",
		ReleaseDate:    "01.01.2026",
		Prefix:         "WEBDEV",
		JiraURL:        server.URL,
		JiraToken:      "t",
		InputPath:      input,
		OutputPath:     output,
	}

	var out, status bytes.Buffer
	if err := Run(context.Background(), cfg, &out, &status); err == nil {
		t.Fatal("expected an error when the tracker query fails")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("a failed run may not produce an output file (stat err: %v)", err)
	}
}
