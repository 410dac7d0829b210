// Package scan matches curated keyword tables against a text corpus and
// ranks the categories by hit count.
//
// A keyword matches case-insensitively at word starts and is treated as a
// prefix, so "magic" also counts "Magical". A '*' inside a keyword stands
// for exactly one word-constituent character; every other character is
// literal. Matches are counted globally and non-overlapping.
package scan

import (
	"regexp"
	"strings"
)

// Category is one named entry of a keyword table.
type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Table is an ordered list of categories. The order is part of the contract:
// categories with equal scores keep their table order in ranked output.
// A Table is loaded once and never mutated.
type Table []Category

// Categories returns the category names in table order.
func (t Table) Categories() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

// keywordPattern compiles the matcher for one keyword: case-insensitive,
// anchored at a word start, prefix semantics. Each '*' becomes a single
// word-character wildcard; the remaining text is quoted literally, so the
// pattern always compiles.
func keywordPattern(keyword string) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString(`(?i)\b`)
	for i, seg := range strings.Split(keyword, "*") {
		if i > 0 {
			sb.WriteString(`\w`)
		}
		sb.WriteString(regexp.QuoteMeta(seg))
	}
	return regexp.MustCompile(sb.String())
}
