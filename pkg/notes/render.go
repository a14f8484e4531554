package notes

import (
	"sort"
	"strconv"
	"strings"
)

// Placeholders used when the tracker has no record for an issue key.
const (
	placeholderTitle  = "[Название не найдено]"
	placeholderStatus = "[Todo]"
)

// Meta carries the release header fields.
type Meta struct {
	ReleaseVersion string
	DevelopVersion string
	ReleaseDate    string
}

// Record is the tracker metadata attached to one issue key.
type Record struct {
	Summary string
	Status  string
}

// Render produces the full Markdown release document. Groups appear in
// definition order, empty groups are omitted, and keys inside a group sort
// ascending by their numeric suffix.
func Render(meta Meta, prefix string, tasks map[string]BranchType, records map[string]Record) string {
	groups := make(map[BranchType][]string)
	for key, bt := range tasks {
		groups[bt] = append(groups[bt], key)
	}

	var lines []string
	lines = append(lines,
		"### Release Notes",
		"",
		"Release Version: "+meta.ReleaseVersion,
		"Develop Version: "+meta.DevelopVersion,
		"Дата релиза: "+meta.ReleaseDate,
		"",
		"### Основные изменения:",
		"",
	)

	for _, bt := range groupOrder {
		keys := groups[bt]
		if len(keys) == 0 {
			continue
		}
		sortByNumericSuffix(keys, prefix)

		lines = append(lines, "- **"+bt.Header()+":**")
		for _, key := range keys {
			title, status := placeholderTitle, placeholderStatus
			if rec, ok := records[key]; ok {
				title = strings.TrimSpace(rec.Summary)
				status = rec.Status
			}
			lines = append(lines, "  + "+title+" (задача "+key+")["+status+"]")
		}
		lines = append(lines, "")
	}

	lines = append(lines, "#release #backend #patch")
	return strings.Join(lines, "\n")
}

// sortByNumericSuffix orders issue keys by the integer after the prefix
// dash, so WEBDEV-2 comes before WEBDEV-30 and WEBDEV-100. The parse phase
// guarantees the <prefix>-<digits> shape.
func sortByNumericSuffix(keys []string, prefix string) {
	sort.Slice(keys, func(i, j int) bool {
		return keyNumber(keys[i], prefix) < keyNumber(keys[j], prefix)
	})
}

func keyNumber(key, prefix string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(key, prefix+"-"))
	return n
}
