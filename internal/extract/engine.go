// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/pdiddy/infobox-engine/internal/schema"
	"github.com/pdiddy/infobox-engine/internal/term"
	"github.com/pdiddy/infobox-engine/pkg/types"
)

// Engine turns one raw attribute value into type-checked facts for one
// pattern relation.
type Engine struct {
	snap         *schema.Snapshot
	relations    *schema.Resolver
	replacements schema.PatternList
	meanings     term.Meanings
	sink         Sink
	logger       *zap.Logger
}

// NewEngine compiles the replacements and preferred meanings of snap.
func NewEngine(snap *schema.Snapshot, sink Sink, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		snap:         snap,
		relations:    schema.NewResolver(snap, logger),
		replacements: schema.Replacements(snap, logger),
		meanings:     schema.PreferredMeanings(snap),
		sink:         sink,
		logger:       logger,
	}
}

// Meanings returns the preferred meanings compiled from the schema.
func (e *Engine) Meanings() term.Meanings { return e.meanings }

// ExtractFacts extracts the objects of relation from raw, checks each
// against the relation's class, and emits the accepted facts. Candidates
// that fail a check are skipped without affecting the others. A
// functional relation yields at most one fact. Only sink errors are
// returned.
func (e *Engine) ExtractFacts(subject, raw, relation string) ([]types.Fact, error) {
	s := e.replacements.Transform(html.UnescapeString(raw))
	s = strings.ReplaceAll(s, "$0", term.StripBrackets(subject))
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	rel := e.relations.Relation(relation)
	x := term.Extractor{
		Strategy: term.StrategyFor(rel.Class, e.snap),
		Meanings: e.meanings,
	}

	var facts []types.Fact
	for _, c := range x.Extract(s) {
		if rel.TypeCheck != nil && !rel.TypeCheck.MatchString(c.Text()) {
			e.logger.Debug("candidate does not match syntax check",
				zap.String("candidate", c.String()),
				zap.String("subject", subject),
				zap.String("relation", rel.ID),
				zap.String("pattern", rel.TypeCheck.String()))
			continue
		}
		if c.IsLiteral() {
			if !e.acceptsLiteral(c, rel.Class) {
				e.logger.Debug("candidate does not match type check",
					zap.String("candidate", c.String()),
					zap.String("subject", subject),
					zap.String("relation", rel.ID),
					zap.String("class", rel.Class))
				continue
			}
			c = c.WithDatatype(rel.Class)
		}

		f := types.NewFact(subject, rel.ID, c.String())
		if rel.Inverse {
			f = types.NewFact(c.String(), rel.ID, subject)
		}
		if err := Emit(e.sink, types.DirtyInfoboxFacts, f, subject, "InfoboxExtractor: from "+s); err != nil {
			return facts, err
		}
		facts = append(facts, f)

		if rel.Functional {
			break
		}
	}
	return facts, nil
}

// acceptsLiteral reports whether a literal may be an object of class: its
// datatype is class or a subclass of it, or it is untyped and class is
// xsd:string.
func (e *Engine) acceptsLiteral(c term.Term, class string) bool {
	if c.Datatype == "" {
		return class == types.XSDString
	}
	return e.snap.IsSubClassOf(c.Datatype, class)
}
