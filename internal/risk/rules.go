package risk

import (
	"net/url"
	"strings"
)

// Category names a family of heuristic rules.
type Category string

const (
	CategorySuspiciousTLD Category = "suspicious_tld"
	CategoryPhishing      Category = "phishing"
	CategoryPiracy        Category = "piracy"
	CategoryAdult         Category = "adult"
)

// Matcher reports whether a lowercased URL triggers a rule.
type Matcher func(lowerURL string) bool

// Rule is one weighted heuristic. A record that matches a rule adds Weight
// to the score once, however many of the rule's words it contains.
type Rule struct {
	Category Category
	Match    Matcher
	Weight   int
}

// HasSuffix matches URLs whose full text or host ends in any of the given
// suffixes. Suffixes are raw strings: "top" also matches "laptop".
func HasSuffix(suffixes ...string) Matcher {
	return func(s string) bool {
		host := hostOf(s)
		for _, suf := range suffixes {
			if strings.HasSuffix(s, suf) || (host != "" && strings.HasSuffix(host, suf)) {
				return true
			}
		}
		return false
	}
}

func hostOf(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// ContainsAny matches URLs containing any of the given words anywhere,
// including the path and query.
func ContainsAny(words ...string) Matcher {
	return func(s string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}
}

// DefaultRules returns the built-in rule set.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: CategorySuspiciousTLD,
			Match:    HasSuffix("xyz", "top", "click", "monster", "cyou", "shop", "fit"),
			Weight:   2,
		},
		{
			Category: CategoryPhishing,
			Match:    ContainsAny("login", "verify", "secure", "reset", "bank", "account"),
			Weight:   5,
		},
		{
			Category: CategoryPiracy,
			Match:    ContainsAny("crack", "torrent", "keygen", "serial"),
			Weight:   3,
		},
		{
			Category: CategoryAdult,
			Match:    ContainsAny("porn", "xxx", "adult"),
			Weight:   3,
		},
	}
}
