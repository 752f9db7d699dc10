// Package filter selects pacman log events by package name and date.
package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPattern is returned when a glob cannot be compiled.
var ErrInvalidPattern = errors.New("invalid package pattern")

// Pattern is a compiled package-name glob. '*' matches any sequence of
// characters; every other character matches itself. The whole name must match.
type Pattern struct {
	glob string
	re   *regexp.Regexp
}

// Compile turns a glob into a Pattern.
func Compile(glob string) (*Pattern, error) {
	expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(glob), `\*`, ".*") + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, glob, err)
	}
	return &Pattern{glob: glob, re: re}, nil
}

// Match reports whether name matches the pattern in full.
func (p *Pattern) Match(name string) bool {
	return p.re.MatchString(name)
}

func (p *Pattern) String() string { return p.glob }

// Patterns is a set of name patterns. An empty set matches every name.
type Patterns []*Pattern

// CompileAll compiles every glob, stopping at the first one that fails.
func CompileAll(globs []string) (Patterns, error) {
	patterns := make(Patterns, 0, len(globs))
	for _, glob := range globs {
		p, err := Compile(glob)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Match reports whether name matches any pattern in the set.
func (ps Patterns) Match(name string) bool {
	return MatchesAny(name, ps)
}

// MatchesAny returns true if patterns is empty or at least one pattern
// matches name.
func MatchesAny(name string, patterns []*Pattern) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if p.Match(name) {
			return true
		}
	}
	return false
}
