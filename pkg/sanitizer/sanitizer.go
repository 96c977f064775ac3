package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// Rule rewrites every whole-token match of Pattern to Canonical.
type Rule struct {
	Pattern   *regexp.Regexp
	Canonical string
}

func (r Rule) Apply(s string) string {
	return r.Pattern.ReplaceAllLiteralString(s, r.Canonical)
}

// Rules applies each rule in order, each seeing the previous rule's output.
func Rules(rules ...Rule) Strategy {
	return func(s string) string {
		for _, r := range rules {
			s = r.Apply(s)
		}
		return s
	}
}

// Dictionary replaces the whole value when it is an exact key.
func Dictionary(entries map[string]string) Strategy {
	return func(s string) string {
		if canonical, ok := entries[s]; ok {
			return canonical
		}
		return s
	}
}

func trimAndLower(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return s
}
