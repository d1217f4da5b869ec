// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema holds the schema facts that drive infobox extraction:
// relation domains and ranges, the class hierarchy, type-check patterns,
// and the infobox patterns compiled from them. A Snapshot is immutable
// once built and is shared by the whole run.
package schema

import (
	"fmt"
	"os"
	"regexp"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/infobox-engine/internal/term"
	"github.com/pdiddy/infobox-engine/pkg/types"
)

// builtinSuperclasses are datatype subclass edges every snapshot knows.
// Decimals are accepted where a double is expected.
var builtinSuperclasses = map[string][]string{
	types.XSDNonNegativeInteger: {types.XSDInteger},
	types.XSDInteger:            {types.XSDDecimal},
	types.XSDDecimal:            {types.XSDDouble},
}

type pair struct {
	subject, relation string
}

// Snapshot is a read-only, indexed view of schema facts.
type Snapshot struct {
	facts      []types.Fact
	byRelation map[string][]types.Fact
	objects    map[pair][]string
	triples    map[types.Fact]bool
	super      map[string][]string
	typeChecks map[string]*regexp.Regexp
}

// File is the on-disk layout of a schema file.
type File struct {
	Facts []types.Fact `yaml:"facts"`
}

// Load reads a YAML schema file. Fact IDs in the file are ignored and
// recomputed.
func Load(path string, logger *zap.Logger) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing schema %s: %w", path, err)
	}
	return FromFacts(f.Facts, logger), nil
}

// FromFacts indexes facts into a Snapshot. Type-check patterns that do not
// compile are logged and ignored.
func FromFacts(facts []types.Fact, logger *zap.Logger) *Snapshot {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Snapshot{
		byRelation: make(map[string][]types.Fact),
		objects:    make(map[pair][]string),
		triples:    make(map[types.Fact]bool),
		super:      make(map[string][]string),
		typeChecks: make(map[string]*regexp.Regexp),
	}
	for _, f := range facts {
		f = types.NewFact(f.Subject, f.Relation, f.Object)
		if s.triples[f] {
			continue
		}
		s.triples[f] = true
		s.facts = append(s.facts, f)
		s.byRelation[f.Relation] = append(s.byRelation[f.Relation], f)
		p := pair{f.Subject, f.Relation}
		s.objects[p] = append(s.objects[p], f.Object)

		switch f.Relation {
		case types.RDFSSubClassOf:
			s.super[f.Subject] = append(s.super[f.Subject], f.Object)
		case types.TypeCheckPattern:
			if _, ok := s.typeChecks[f.Subject]; ok {
				continue
			}
			pattern := term.Parse(f.Object).Text()
			re, err := regexp.Compile(`^(?:` + pattern + `)$`)
			if err != nil {
				logger.Warn("ignoring type check pattern",
					zap.String("class", f.Subject),
					zap.String("pattern", pattern),
					zap.Error(err))
				continue
			}
			s.typeChecks[f.Subject] = re
		}
	}
	return s
}

// Len returns the number of distinct facts.
func (s *Snapshot) Len() int { return len(s.facts) }

// All returns every fact in load order.
func (s *Snapshot) All() []types.Fact { return s.facts }

// Facts returns the facts with the given relation in load order.
func (s *Snapshot) Facts(relation string) []types.Fact {
	return s.byRelation[relation]
}

// Arg2 returns the first object of (subject, relation).
func (s *Snapshot) Arg2(subject, relation string) (string, bool) {
	objs := s.objects[pair{subject, relation}]
	if len(objs) == 0 {
		return "", false
	}
	return objs[0], true
}

// Contains reports whether the triple is present.
func (s *Snapshot) Contains(subject, relation, object string) bool {
	return s.triples[types.NewFact(subject, relation, object)]
}

// IsFunctional reports whether relation has at most one object per subject.
func (s *Snapshot) IsFunctional(relation string) bool {
	return s.Contains(relation, types.RDFType, types.FunctionalRelation)
}

// IsSubClassOf reports whether sub equals super or reaches it through
// rdfs:subClassOf edges, including the built-in datatype hierarchy.
func (s *Snapshot) IsSubClassOf(sub, super string) bool {
	if sub == "" || super == "" {
		return false
	}
	seen := map[string]bool{sub: true}
	queue := []string{sub}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == super {
			return true
		}
		for _, parents := range [][]string{s.super[c], builtinSuperclasses[c]} {
			for _, p := range parents {
				if !seen[p] {
					seen[p] = true
					queue = append(queue, p)
				}
			}
		}
	}
	return false
}

// TypeCheck returns the anchored syntax pattern declared for class.
func (s *Snapshot) TypeCheck(class string) (*regexp.Regexp, bool) {
	re, ok := s.typeChecks[class]
	return re, ok
}
