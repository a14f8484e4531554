// Package gitlog reads merge-commit summary lines from a git repository or
// from a previously captured log file.
package gitlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Source produces merge-commit log lines.
type Source struct {
	RepoPath string
}

// MergeCommits runs `git log --merges --oneline` and returns one line per
// merge commit, newest first. sinceRef, when set, is an exclusive lower
// bound (the range sinceRef..HEAD).
func (s Source) MergeCommits(ctx context.Context, sinceRef string, maxCount int) ([]string, error) {
	args := []string{"log", "--merges", "--oneline", fmt.Sprintf("--max-count=%d", maxCount)}
	if sinceRef != "" {
		args = append(args, sinceRef+"..HEAD")
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if s.RepoPath != "" {
		cmd.Dir = s.RepoPath
	}

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("git log failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("run git: %w", err)
	}

	return splitLines(string(out)), nil
}

// LinesFromFile reads captured log lines from a file, one merge commit per line.
func LinesFromFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return splitLines(string(raw)), nil
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
