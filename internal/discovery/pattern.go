package discovery

import (
	"path/filepath"
	"regexp"

	"github.com/raoulx24/retentions/internal/ruleset"
)

// matcher decides whether a basename matches the configured pattern.
//
// RegexMode has three states (§3): glob, regex-casesensitive,
// regex-ignorecase. The CLI surface (§6) only exposes
// --regex-mode {casesensitive|ignorecase}; its absence selects glob
// mode, always case-sensitive. There is currently no flag requesting
// a case-insensitive glob even though §4.1 says "ignorecase affects
// both" — see DESIGN.md for this Open Question's resolution.
type matcher struct {
	mode ruleset.RegexMode
	glob string
	re   *regexp.Regexp
}

func newMatcher(rs *ruleset.RuleSet) (*matcher, error) {
	m := &matcher{mode: rs.Regex}
	switch rs.Regex {
	case ruleset.Glob:
		m.glob = rs.Pattern
	case ruleset.RegexCaseSensitive:
		re, err := regexp.Compile(rs.Pattern)
		if err != nil {
			return nil, err
		}
		m.re = re
	case ruleset.RegexIgnoreCase:
		re, err := regexp.Compile("(?i)" + rs.Pattern)
		if err != nil {
			return nil, err
		}
		m.re = re
	}
	return m, nil
}

// match reports whether name (a basename) matches the pattern, glob
// matching anchored to the full basename (§4.1).
func (m *matcher) match(name string) bool {
	if m.mode == ruleset.Glob {
		ok, err := filepath.Match(m.glob, name)
		return err == nil && ok
	}
	return m.re.MatchString(name)
}
