package main

import (
	"strings"

	"github.com/raoulx24/retentions/internal/apperr"
)

// repeatableFlags may legitimately appear more than once on the
// command line; every other long flag is rejected on a second
// occurrence (spec.md §6 "Rejections: duplicate flags").
var repeatableFlags = map[string]bool{
	"--delete-companions": true,
}

// preflightDuplicateFlags scans the raw argument list for a
// non-repeatable long flag supplied more than once. It runs before
// cobra's own parsing, which otherwise lets the last occurrence
// silently win.
func preflightDuplicateFlags(args []string) error {
	seen := map[string]bool{}
	for _, a := range args {
		if !strings.HasPrefix(a, "--") {
			continue
		}
		name := a
		if i := strings.IndexByte(a, '='); i >= 0 {
			name = a[:i]
		}
		if repeatableFlags[name] {
			continue
		}
		if seen[name] {
			return apperr.Configf(name, "flag specified more than once")
		}
		seen[name] = true
	}
	return nil
}
