// Package heuristic provides deterministic keyword-based document
// classification, used as a fallback when the model gateway is unavailable
// or returns an unusable answer.
package heuristic

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule pairs a regex with the category key it implies. Rules are evaluated
// in order; the first match wins.
type Rule struct {
	Name     string
	Pattern  string
	Category string
}

type compiledRule struct {
	regex *regexp.Regexp
	Rule
}

// Matcher evaluates an ordered rule list against document text.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher compiles the given rules. Patterns are made case-insensitive
// unless they already carry an inline flag.
func NewMatcher(rules []Rule) (*Matcher, error) {
	compiled := make([]compiledRule, 0, len(rules))

	for _, r := range rules {
		pattern := r.Pattern
		if !strings.HasPrefix(pattern, "(?i)") {
			pattern = "(?i)" + pattern
		}

		regex, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.Name, err)
		}

		compiled = append(compiled, compiledRule{
			Rule:  r,
			regex: regex,
		})
	}

	return &Matcher{rules: compiled}, nil
}

// Match returns the category key of the first rule matching text, or
// ("", false) when no rule matches.
func (m *Matcher) Match(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	for _, rule := range m.rules {
		if rule.regex.MatchString(text) {
			return rule.Category, true
		}
	}
	return "", false
}

// Rules returns the rule list in evaluation order.
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	for i, r := range m.rules {
		out[i] = r.Rule
	}
	return out
}
