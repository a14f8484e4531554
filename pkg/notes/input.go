package notes

import (
	"fmt"
	"os"
	"strings"
)

// ReadLines reads the extractor's output file, one merge-commit line per
// entry. Blank lines are dropped; everything else is left for Parse to judge.
func ReadLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read merge lines: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
