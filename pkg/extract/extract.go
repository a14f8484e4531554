// Package extract filters version-control log lines down to the merge
// commits that reference tracked issues.
package extract

import (
	"fmt"
	"regexp"
)

// Filter matches merge-commit summary lines against an issue-prefix pattern.
type Filter struct {
	pattern *regexp.Regexp
}

// NewFilter builds a filter for the given issue prefix. An empty prefix
// keeps every merge-branch line regardless of the branch name.
func NewFilter(prefix string) (*Filter, error) {
	var expr string
	if prefix != "" {
		expr = fmt.Sprintf(`(?i)Merge branch '[^']*/%s-[^']*'`, regexp.QuoteMeta(prefix))
	} else {
		expr = `(?i)Merge branch `
	}

	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile merge pattern for prefix %q: %w", prefix, err)
	}
	return &Filter{pattern: pattern}, nil
}

// Lines returns the ordered subsequence of lines matching the merge pattern.
func (f *Filter) Lines(lines []string) []string {
	var matched []string
	for _, line := range lines {
		if f.pattern.MatchString(line) {
			matched = append(matched, line)
		}
	}
	return matched
}
