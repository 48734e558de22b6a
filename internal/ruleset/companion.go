package ruleset

import (
	"fmt"
	"strings"
)

// ParseCompanionRule parses one --delete-companions rule of shape
// TYPE:MATCH:COMPANIONS (§4.6), where TYPE is "prefix" or "suffix",
// MATCH is a possibly-empty literal, and COMPANIONS is a
// comma-separated list of literal replacements.
func ParseCompanionRule(s string) (CompanionRule, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return CompanionRule{}, fmt.Errorf("invalid companion rule %q: want TYPE:MATCH:COMPANIONS", s)
	}

	var suffix bool
	switch parts[0] {
	case "prefix":
		suffix = false
	case "suffix":
		suffix = true
	default:
		return CompanionRule{}, fmt.Errorf("invalid companion rule %q: TYPE must be prefix or suffix", s)
	}

	companions := strings.Split(parts[2], ",")
	if len(companions) == 0 || (len(companions) == 1 && companions[0] == "") {
		return CompanionRule{}, fmt.Errorf("invalid companion rule %q: COMPANIONS must not be empty", s)
	}

	return CompanionRule{Suffix: suffix, Match: parts[1], Companions: companions}, nil
}

// Matches reports whether name matches this rule's TYPE/MATCH.
func (r CompanionRule) Matches(name string) bool {
	if r.Suffix {
		return strings.HasSuffix(name, r.Match)
	}
	return strings.HasPrefix(name, r.Match)
}

// Candidates returns the sibling basenames produced by substituting
// Match with each companion literal in name.
func (r CompanionRule) Candidates(name string) []string {
	var out []string
	for _, companion := range r.Companions {
		var candidate string
		if r.Suffix {
			candidate = strings.TrimSuffix(name, r.Match) + companion
		} else {
			candidate = companion + strings.TrimPrefix(name, r.Match)
		}
		out = append(out, candidate)
	}
	return out
}
