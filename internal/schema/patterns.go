// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"regexp"
	"slices"

	"go.uber.org/zap"

	"github.com/pdiddy/infobox-engine/internal/term"
	"github.com/pdiddy/infobox-engine/internal/wikitext"
	"github.com/pdiddy/infobox-engine/pkg/types"
)

// Patterns maps a normalized attribute name to the sorted relations it
// populates.
type Patterns map[string][]string

// Relations returns the relations for a normalized attribute name.
func (p Patterns) Relations(attribute string) []string {
	return p[attribute]
}

// CompilePatterns scans the _infoboxPattern facts once. An attribute that
// appears in several facts maps to the union of their relations.
func CompilePatterns(s *Snapshot, logger *zap.Logger) Patterns {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := make(Patterns)
	for _, f := range s.Facts(types.InfoboxPattern) {
		attr := wikitext.NormalizeAttribute(term.Parse(f.Subject).Text())
		if attr == "" {
			continue
		}
		rels := p[attr]
		if i, found := slices.BinarySearch(rels, f.Object); !found {
			p[attr] = slices.Insert(rels, i, f.Object)
		}
	}
	if len(p) == 0 {
		logger.Warn("no infobox patterns found")
	}
	logger.Debug("compiled infobox patterns", zap.Int("attributes", len(p)))
	return p
}

// Combinations returns the _infoboxCombine rules in load order.
func Combinations(s *Snapshot) []wikitext.CombinationRule {
	var rules []wikitext.CombinationRule
	for _, f := range s.Facts(types.InfoboxCombine) {
		rules = append(rules, wikitext.CombinationRule{
			Template: term.Parse(f.Subject).Text(),
			Target:   term.Parse(f.Object).Text(),
		})
	}
	return rules
}

// PreferredMeanings maps each word to the class it preferably denotes.
// The first fact for a word wins.
func PreferredMeanings(s *Snapshot) term.Meanings {
	m := make(term.Meanings)
	for _, f := range s.Facts(types.PreferredMeaningOf) {
		word := term.Parse(f.Object).Text()
		if _, ok := m[word]; !ok {
			m[word] = f.Subject
		}
	}
	return m
}

type replacement struct {
	re   *regexp.Regexp
	with string
}

// PatternList is an ordered list of regexp replacements.
type PatternList struct {
	rules []replacement
}

var groupRefRe = regexp.MustCompile(`\$(\d+)`)

// NewPatternList compiles the facts "regexp" <relation> "replacement" in
// load order. Replacements refer to groups as $1; patterns that do not
// compile are logged and skipped.
func NewPatternList(s *Snapshot, relation string, logger *zap.Logger) PatternList {
	if logger == nil {
		logger = zap.NewNop()
	}
	var pl PatternList
	for _, f := range s.Facts(relation) {
		pattern := term.Parse(f.Subject).Text()
		re, err := regexp.Compile(pattern)
		if err != nil {
			logger.Warn("ignoring replacement pattern",
				zap.String("relation", relation),
				zap.String("pattern", pattern),
				zap.Error(err))
			continue
		}
		with := groupRefRe.ReplaceAllString(term.Parse(f.Object).Text(), `$${$1}`)
		pl.rules = append(pl.rules, replacement{re: re, with: with})
	}
	return pl
}

// Replacements compiles the _infoboxReplace rules applied to raw values.
func Replacements(s *Snapshot, logger *zap.Logger) PatternList {
	return NewPatternList(s, types.InfoboxReplace, logger)
}

// TitlePatterns compiles the _titleReplace rules applied to page titles.
func TitlePatterns(s *Snapshot, logger *zap.Logger) PatternList {
	return NewPatternList(s, types.TitleReplace, logger)
}

// Len returns the number of rules.
func (pl PatternList) Len() int { return len(pl.rules) }

// Transform applies every rule to s in order.
func (pl PatternList) Transform(s string) string {
	for _, r := range pl.rules {
		s = r.re.ReplaceAllString(s, r.with)
	}
	return s
}
