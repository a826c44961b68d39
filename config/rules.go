package config

import (
	"sort"
	"strings"
)

// RouteRule is a build-time directive attached to a URL pattern.
type RouteRule struct {
	Prerender bool `yaml:"prerender" json:"prerender"`
}

// RouteRules maps URL patterns to rules. A pattern is either an exact path ("/about")
// or a prefix ending in "/**" ("/post/**"), which also matches the bare prefix.
type RouteRules map[string]RouteRule

// Lookup returns the rule of the most specific pattern matching p.
func (r RouteRules) Lookup(p string) (RouteRule, bool) {
	if p == "" {
		p = "/"
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}

	best := -1
	var rule RouteRule
	for pattern, rr := range r {
		if !matchPattern(pattern, p) {
			continue
		}
		// longer prefixes win; an exact pattern beats the wildcard of the same prefix
		prefix, wildcard := strings.CutSuffix(pattern, "/**")
		score := len(prefix) * 2
		if !wildcard {
			score++
		}
		if score > best {
			best = score
			rule = rr
		}
	}
	return rule, best >= 0
}

// Patterns returns the declared patterns in lexical order.
func (r RouteRules) Patterns() []string {
	patterns := make([]string, 0, len(r))
	for p := range r {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

func matchPattern(pattern, p string) bool {
	prefix, ok := strings.CutSuffix(pattern, "/**")
	if !ok {
		return pattern == p
	}
	if prefix == "" {
		return true
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}
