// Package classify maps issue labels to outcome categories.
package classify

import "strings"

// CategoryOther is the fallback category for issues whose labels match no rule.
const CategoryOther = "other"

// Rule maps a set of issue labels to a category. Rules are evaluated in
// order; the first rule whose label set intersects the issue labels wins.
type Rule struct {
	Category string
	Labels   []string
}

// DefaultRules returns the built-in label-to-category mapping. The returned
// slice is a fresh copy; callers may reorder or extend it.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "bug", Labels: []string{"bug", "bugfix", "fix"}},
		{Category: "feature", Labels: []string{"feature", "enhancement"}},
		{Category: "documentation", Labels: []string{"documentation", "docs"}},
		{Category: "test", Labels: []string{"test", "tests", "testing"}},
		{Category: "refactor", Labels: []string{"refactor", "refactoring", "cleanup"}},
		{Category: "performance", Labels: []string{"performance", "perf", "optimization"}},
		{Category: "security", Labels: []string{"security"}},
	}
}

// Categorize returns the category for the given issue labels using the
// default rules. Matching is case-insensitive; unmatched labels resolve to
// CategoryOther.
func Categorize(labels []string) string {
	return CategorizeWith(DefaultRules(), labels)
}

// CategorizeWith returns the category for the given issue labels using a
// custom rule list. The result is never empty.
func CategorizeWith(rules []Rule, labels []string) string {
	normalized := make(map[string]bool, len(labels))
	for _, l := range labels {
		normalized[strings.ToLower(strings.TrimSpace(l))] = true
	}

	for _, rule := range rules {
		for _, l := range rule.Labels {
			if normalized[l] {
				return rule.Category
			}
		}
	}
	return CategoryOther
}
