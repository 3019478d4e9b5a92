// Package categorize assigns category labels to transaction descriptions
// using the configured category → keyword mapping.
package categorize

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/insightdelivered/statement-insights/internal/config"
)

// Other is the label returned when no configured keyword matches.
const Other = "other"

// Classifier matches descriptions against all configured keywords in a
// single pass using an Aho-Corasick matcher. When keywords from several
// categories match, the category declared first wins.
type Classifier struct {
	matcher  *ahocorasick.Matcher
	patterns []string
	// hits[i] holds every (rule order, category) that pattern i belongs to;
	// the same keyword may appear under more than one category
	hits [][]ruleRef
}

type ruleRef struct {
	order    int
	category string
}

// New builds a Classifier from ordered category rules.
func New(rules []config.CategoryRule) *Classifier {
	c := &Classifier{}

	index := make(map[string]int)
	for order, rule := range rules {
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			i, ok := index[kw]
			if !ok {
				i = len(c.patterns)
				index[kw] = i
				c.patterns = append(c.patterns, kw)
				c.hits = append(c.hits, nil)
			}
			c.hits[i] = append(c.hits[i], ruleRef{order: order, category: rule.Name})
		}
	}

	if len(c.patterns) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.patterns)
	}
	return c
}

// Category returns the label for a description: the first category (in
// declaration order) owning a keyword that occurs in the description,
// case-insensitively, or "other".
func (c *Classifier) Category(description string) string {
	if cat, ok := c.FirstMatch(description); ok {
		return cat
	}
	return Other
}

// FirstMatch reports the winning category for arbitrary text, or false when
// no keyword occurs. The query engine reuses this for category inference
// over question text.
func (c *Classifier) FirstMatch(text string) (string, bool) {
	if c.matcher == nil || text == "" {
		return "", false
	}

	matches := c.matcher.Match([]byte(strings.ToLower(text)))
	if len(matches) == 0 {
		return "", false
	}

	best := ruleRef{order: -1}
	for _, idx := range matches {
		if idx < 0 || idx >= len(c.hits) {
			continue
		}
		for _, ref := range c.hits[idx] {
			if best.order == -1 || ref.order < best.order {
				best = ref
			}
		}
	}
	if best.order == -1 {
		return "", false
	}
	return best.category, true
}

// PatternCount returns how many distinct keywords are loaded.
func (c *Classifier) PatternCount() int {
	return len(c.patterns)
}
