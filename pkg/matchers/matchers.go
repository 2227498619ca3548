// Package matchers implements the path pattern semantics used for
// built-in exclusions, per-item ignore rules and the global only filter.
//
// A Set is either all-glob or all-regex. Glob patterns follow doublestar
// semantics ("**" crosses directories, "*" does not); a glob pattern with
// no separator is also tried against the final path segment, so "*.out"
// excludes "deep/test.out". Regex patterns are unanchored.
package matchers

import (
	"path"
	"regexp"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// Syntax selects the pattern semantics of a Set
type Syntax string

const (
	SyntaxGlob  Syntax = "glob"
	SyntaxRegex Syntax = "regex"
)

// ParseSyntax converts a configuration value into a Syntax
func ParseSyntax(s string) (Syntax, error) {
	switch Syntax(strings.ToLower(strings.TrimSpace(s))) {
	case "", SyntaxGlob:
		return SyntaxGlob, nil
	case SyntaxRegex:
		return SyntaxRegex, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown pattern syntax: %s", s)
	}
}

// Matcher reports whether a relative path matches a pattern
type Matcher interface {
	Match(relPath string) bool
	String() string
}

type globMatcher struct {
	pattern  string
	basename bool
}

// NewGlob compiles a glob pattern
func NewGlob(pattern string) (Matcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Newf(errors.ErrPatternInvalid, "invalid glob pattern: %s", pattern).
			WithDetail("pattern", pattern)
	}
	return &globMatcher{
		pattern:  pattern,
		basename: !strings.Contains(pattern, "/"),
	}, nil
}

func (g *globMatcher) Match(relPath string) bool {
	// the pattern was validated on construction, so Match cannot fail
	if ok, _ := doublestar.Match(g.pattern, relPath); ok {
		return true
	}
	if g.basename {
		ok, _ := doublestar.Match(g.pattern, path.Base(relPath))
		return ok
	}
	return false
}

func (g *globMatcher) String() string { return g.pattern }

type regexMatcher struct {
	re *regexp.Regexp
}

// NewRegex compiles a regular expression pattern
func NewRegex(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid regex pattern: %s", pattern).
			WithDetail("pattern", pattern)
	}
	return &regexMatcher{re: re}, nil
}

func (r *regexMatcher) Match(relPath string) bool {
	return r.re.MatchString(relPath)
}

func (r *regexMatcher) String() string { return r.re.String() }

// Set is an ordered list of matchers sharing one syntax
type Set struct {
	syntax   Syntax
	matchers []Matcher
}

// NewSet compiles every pattern with the given syntax. The first malformed
// pattern aborts construction.
func NewSet(patterns []string, syntax Syntax) (*Set, error) {
	compile := NewGlob
	if syntax == SyntaxRegex {
		compile = NewRegex
	}

	set := &Set{syntax: syntax, matchers: make([]Matcher, 0, len(patterns))}
	for _, p := range patterns {
		m, err := compile(p)
		if err != nil {
			return nil, err
		}
		set.matchers = append(set.matchers, m)
	}
	return set, nil
}

// Match reports whether any pattern matches. A nil or empty set never matches.
func (s *Set) Match(relPath string) bool {
	if s == nil {
		return false
	}
	for _, m := range s.matchers {
		if m.Match(relPath) {
			return true
		}
	}
	return false
}

// Len returns the number of patterns
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.matchers)
}

// Syntax returns the set's pattern syntax
func (s *Set) Syntax() Syntax { return s.syntax }

// Patterns returns the source patterns
func (s *Set) Patterns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.matchers))
	for i, m := range s.matchers {
		out[i] = m.String()
	}
	return out
}
