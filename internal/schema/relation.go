// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"regexp"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/pdiddy/infobox-engine/pkg/types"
)

// InverseSuffix marks a pattern relation whose facts are written with
// subject and object swapped, as in <hasCapital->.
const InverseSuffix = "->"

// Relation is everything the extractor needs to know about one pattern
// relation.
type Relation struct {
	// ID is the relation without the inverse marker.
	ID string

	// Inverse is true when facts are written (object, ID, subject).
	Inverse bool

	// Class is the domain of inverse relations and the range otherwise,
	// or owl:Thing when the schema does not declare it.
	Class string

	Functional bool

	// Known is false when the schema lacks the domain or range.
	Known bool

	// TypeCheck is the anchored syntax pattern of Class, if any.
	TypeCheck *regexp.Regexp
}

// Resolver resolves pattern relations against a snapshot and caches the
// result for the lifetime of the run.
type Resolver struct {
	snap   *Snapshot
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewResolver returns a resolver over s.
func NewResolver(s *Snapshot, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		snap:   s,
		cache:  gocache.New(gocache.NoExpiration, 0),
		logger: logger,
	}
}

// Snapshot returns the underlying schema.
func (r *Resolver) Snapshot() *Snapshot { return r.snap }

// Relation resolves a pattern relation such as <wasBornIn> or
// <hasCapital->. An undeclared relation is logged once and treated as
// having class owl:Thing.
func (r *Resolver) Relation(pattern string) Relation {
	if v, ok := r.cache.Get(pattern); ok {
		return v.(Relation)
	}

	rel := Relation{ID: pattern}
	bound := types.RDFSRange
	if base, ok := strings.CutSuffix(pattern, InverseSuffix); ok {
		rel.ID = base + ">"
		rel.Inverse = true
		bound = types.RDFSDomain
	}

	rel.Class, rel.Known = r.snap.Arg2(rel.ID, bound)
	if !rel.Known {
		r.logger.Warn("unknown relation to extract", zap.String("relation", rel.ID))
		rel.Class = types.OWLThing
	}
	rel.Functional = r.snap.IsFunctional(rel.ID)
	rel.TypeCheck, _ = r.snap.TypeCheck(rel.Class)

	r.cache.Set(pattern, rel, gocache.NoExpiration)
	return rel
}

// Len returns the number of cached relations.
func (r *Resolver) Len() int { return r.cache.ItemCount() }
