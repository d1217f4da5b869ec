// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package term

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/infobox-engine/pkg/types"
)

// Strategy selects how candidate terms are read from a value. Each target
// class maps to exactly one strategy; supporting a new kind of class
// means adding a Strategy value and its case in Extractor.Extract.
type Strategy int

const (
	EntityStrategy Strategy = iota
	ClassStrategy
	DateStrategy
	NumberStrategy
	StringStrategy
	URLStrategy
)

var strategyNames = [...]string{
	EntityStrategy: "entity",
	ClassStrategy:  "class",
	DateStrategy:   "date",
	NumberStrategy: "number",
	StringStrategy: "string",
	URLStrategy:    "url",
}

// String returns the strategy name.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return "unknown"
	}
	return strategyNames[s]
}

// Hierarchy answers subclass queries. Implementations must treat every
// class as a subclass of itself.
type Hierarchy interface {
	IsSubClassOf(sub, super string) bool
}

// StrategyFor picks the strategy for objects of the given class.
func StrategyFor(class string, h Hierarchy) Strategy {
	switch {
	case class == types.RDFSClass:
		return ClassStrategy
	case h.IsSubClassOf(class, types.XSDDate):
		return DateStrategy
	case h.IsSubClassOf(class, types.XSDDecimal), h.IsSubClassOf(class, types.XSDDouble):
		return NumberStrategy
	case h.IsSubClassOf(class, types.XSDAnyURI):
		return URLStrategy
	case h.IsSubClassOf(class, types.XSDString):
		return StringStrategy
	}
	return EntityStrategy
}

// Meanings maps words to the class they preferably denote.
type Meanings map[string]string

// Lookup finds the class for word, trying the word as written, lower
// case, and lower case without a plural s.
func (m Meanings) Lookup(word string) (string, bool) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", false
	}
	if c, ok := m[word]; ok {
		return c, true
	}
	lower := strings.ToLower(word)
	if c, ok := m[lower]; ok {
		return c, true
	}
	if singular, ok := strings.CutSuffix(lower, "s"); ok && singular != "" {
		if c, ok := m[singular]; ok {
			return c, true
		}
	}
	return "", false
}

// Extractor runs one strategy. Meanings is only consulted by ClassStrategy.
type Extractor struct {
	Strategy Strategy
	Meanings Meanings
}

// Extract returns the candidate terms of s in order of appearance,
// without duplicates.
func (x Extractor) Extract(s string) []Term {
	var terms []Term
	switch x.Strategy {
	case ClassStrategy:
		terms = classes(s, x.Meanings)
	case DateStrategy:
		terms = dates(s)
	case NumberStrategy:
		terms = numbers(s)
	case StringStrategy:
		terms = strs(s)
	case URLStrategy:
		terms = urls(s)
	default:
		terms = entities(s)
	}
	return dedupe(terms)
}

func dedupe(terms []Term) []Term {
	seen := make(map[string]bool, len(terms))
	out := terms[:0]
	for _, t := range terms {
		key := t.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// entities returns one entity per article link. A value without links is
// read as one entity name per line.
func entities(s string) []Term {
	var out []Term
	for _, l := range articleLinks(s) {
		if id := ForName(l.target); id != "" {
			out = append(out, Entity(id))
		}
	}
	if len(out) > 0 || strings.Contains(s, "[[") {
		return out
	}
	for _, line := range textLines(s) {
		if !strings.ContainsFunc(line, unicode.IsLetter) {
			continue
		}
		if id := ForName(line); id != "" {
			out = append(out, Entity(id))
		}
	}
	return out
}

var wordSplitRe = regexp.MustCompile(`(?i)[,;/\n]|\band\b|\bor\b`)

// classes maps each word or link of s to its preferred class.
func classes(s string, meanings Meanings) []Term {
	var out []Term
	add := func(word string) bool {
		if c, ok := meanings.Lookup(word); ok {
			out = append(out, Entity(c))
			return true
		}
		return false
	}
	for _, l := range articleLinks(s) {
		if !add(l.label) {
			add(l.target)
		}
	}
	for _, w := range wordSplitRe.Split(plainText(s), -1) {
		add(w)
	}
	return out
}

// strs returns each line of flattened text as an untyped literal.
func strs(s string) []Term {
	var out []Term
	for _, line := range textLines(s) {
		out = append(out, Literal(line, ""))
	}
	return out
}

var (
	urlRe         = regexp.MustCompile(`https?://[^\s\[\]|{}<>"']+`)
	urlTemplateRe = regexp.MustCompile(`(?i)\{\{\s*url\s*\|\s*([^|}]+)`)
)

// urls returns the web addresses in s, including {{URL|…}} arguments.
func urls(s string) []Term {
	s = stripNoise(s)
	var out []Term
	for _, m := range urlTemplateRe.FindAllStringSubmatch(s, -1) {
		u := strings.TrimSpace(m[1])
		if !strings.Contains(u, "://") {
			u = "http://" + u
		}
		out = append(out, Literal(u, types.XSDAnyURI))
	}
	for _, u := range urlRe.FindAllString(s, -1) {
		out = append(out, Literal(strings.TrimRight(u, ".,;:)"), types.XSDAnyURI))
	}
	return out
}
