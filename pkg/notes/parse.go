// Package notes turns captured merge-commit lines into a grouped,
// Jira-enriched release document.
package notes

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

var branchPattern = regexp.MustCompile(`Merge branch '([^']+)'`)

// Parser extracts issue keys from merge-commit summary lines and classifies
// them by branch type.
type Parser struct {
	prefix      string
	basePattern *regexp.Regexp
}

// NewParser builds a parser for the given issue prefix (e.g. "WEBDEV").
// The prefix must be non-empty: an empty prefix would make the base-key
// pattern match unintended substrings.
func NewParser(prefix string) (*Parser, error) {
	if prefix == "" {
		return nil, fmt.Errorf("issue prefix must not be empty")
	}

	basePattern, err := regexp.Compile(`^(` + regexp.QuoteMeta(prefix) + `-\d+)`)
	if err != nil {
		return nil, fmt.Errorf("compile base key pattern for prefix %q: %w", prefix, err)
	}

	return &Parser{prefix: prefix, basePattern: basePattern}, nil
}

// Parse walks the merge lines and returns a mapping of base issue key to
// branch type. Malformed lines are skipped, not reported: release histories
// are messy and a lossy pass is the design intent. When the same key shows
// up under several branch types, the first classification wins.
func (p *Parser) Parse(lines []string) map[string]BranchType {
	tasks := make(map[string]BranchType)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "refs/heads/develop") || strings.Contains(line, "remote-tracking") {
			continue
		}

		m := branchPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		branch := m[1]

		typeToken, taskKey, ok := strings.Cut(branch, "/")
		if !ok {
			continue
		}

		if !strings.HasPrefix(taskKey, p.prefix+"-") {
			continue
		}

		// Typo guard: a second occurrence of the prefix inside the key
		// usually means a mangled branch name (WEBDEV-1-webdev-copy).
		if strings.Count(strings.ToLower(taskKey), strings.ToLower(p.prefix)) > 1 {
			slog.Debug("skipping suspicious task key", "branch", branch)
			continue
		}

		base := p.basePattern.FindStringSubmatch(taskKey)
		if base == nil {
			continue
		}
		baseKey := base[1]

		if _, seen := tasks[baseKey]; !seen {
			tasks[baseKey] = Classify(typeToken)
		}
	}

	return tasks
}
