package notes

import "strings"

// BranchType classifies a merge by the naming convention of its source branch.
type BranchType int

// Branch classifications in the order they appear in the rendered document.
const (
	Feature BranchType = iota
	Mod
	Bugfix
	Other
)

// aliases maps each branch type to the lowercase tokens that select it.
// Other has no aliases; it is the catch-all for unrecognized tokens.
var aliases = map[BranchType][]string{
	Feature: {"feature"},
	Mod:     {"mod", "modification", "refactor"},
	Bugfix:  {"bugfix", "bugfixes", "bug", "fix", "hotfix"},
	Other:   {},
}

// groupOrder fixes the section order of the rendered document.
var groupOrder = []BranchType{Feature, Mod, Bugfix, Other}

// Classify maps a branch-name type token to its BranchType. The lookup is
// case-insensitive; unknown tokens classify as Other.
func Classify(token string) BranchType {
	token = strings.ToLower(token)
	for _, bt := range groupOrder {
		for _, alias := range aliases[bt] {
			if token == alias {
				return bt
			}
		}
	}
	return Other
}

// Aliases returns the tokens recognized for this branch type.
func (bt BranchType) Aliases() []string {
	return aliases[bt]
}

// Header returns the human-readable group header, with the recognized
// aliases listed for operator clarity.
func (bt BranchType) Header() string {
	var label string
	switch bt {
	case Feature:
		label = "Функциональность"
	case Mod:
		label = "Доработки / Модификации"
	case Bugfix:
		label = "Багфиксы"
	default:
		label = "Прочее"
	}

	quoted := make([]string, 0, len(aliases[bt]))
	for _, alias := range aliases[bt] {
		quoted = append(quoted, "`"+alias+"`")
	}
	return label + " (" + strings.Join(quoted, ",") + ")"
}

func (bt BranchType) String() string {
	switch bt {
	case Feature:
		return "FEATURE"
	case Mod:
		return "MOD"
	case Bugfix:
		return "BUGFIX"
	default:
		return "OTHER"
	}
}
