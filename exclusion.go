package morph

import (
	"fmt"
	"github.com/gobwas/glob"
	"regexp"
	"strings"
)

type (
	// Exclusion decides whether a property is skipped
	Exclusion interface {
		Excludes(name string) bool
	}

	// Name excludes a property with exactly the same name
	Name string

	// Pattern excludes properties matching regular expression
	Pattern struct {
		*regexp.Regexp
	}

	// Glob excludes properties matching glob expression i.e. tmp_*
	Glob struct {
		glob.Glob
		Expr string
	}

	// Predicate excludes properties for which it returns true
	Predicate func(name string) bool

	// Exclusions represents exclusion list
	Exclusions []Exclusion
)

// Excludes returns true for the same name
func (n Name) Excludes(name string) bool {
	return string(n) == name
}

// Excludes returns true if name matches
func (p Pattern) Excludes(name string) bool {
	return p.Regexp != nil && p.MatchString(name)
}

// Excludes returns true if name matches
func (g Glob) Excludes(name string) bool {
	return g.Glob != nil && g.Match(name)
}

// Excludes calls predicate
func (p Predicate) Excludes(name string) bool {
	return p != nil && p(name)
}

// Match returns true if any exclusion excludes name
func (e Exclusions) Match(name string) bool {
	for _, candidate := range e {
		if candidate != nil && candidate.Excludes(name) {
			return true
		}
	}
	return false
}

// NewPattern creates a regexp exclusion
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid exclusion pattern %q: %w", expr, err)
	}
	return Pattern{Regexp: re}, nil
}

// NewGlob creates a glob exclusion
func NewGlob(expr string) (Glob, error) {
	compiled, err := glob.Compile(expr)
	if err != nil {
		return Glob{}, fmt.Errorf("invalid exclusion glob %q: %w", expr, err)
	}
	return Glob{Glob: compiled, Expr: expr}, nil
}

// ParseExclusion parses exclusion text: /expr/ is a regular expression,
// text with any of *?[{ is a glob, anything else is a name
func ParseExclusion(text string) (Exclusion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty exclusion")
	}
	if len(text) > 1 && text[0] == '/' && text[len(text)-1] == '/' {
		return NewPattern(text[1 : len(text)-1])
	}
	if strings.ContainsAny(text, "*?[{") {
		return NewGlob(text)
	}
	return Name(text), nil
}

// ParseExclusions parses exclusion texts
func ParseExclusions(texts ...string) (Exclusions, error) {
	var ret = make(Exclusions, 0, len(texts))
	for _, text := range texts {
		exclusion, err := ParseExclusion(text)
		if err != nil {
			return nil, err
		}
		ret = append(ret, exclusion)
	}
	return ret, nil
}
