// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package title turns the <title> element of a dump page into the entity
// the page describes.
package title

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/infobox-engine/internal/schema"
	"github.com/pdiddy/infobox-engine/internal/term"
	"github.com/pdiddy/infobox-engine/internal/wikitext"
)

// Resolver maps page titles to entities. Title patterns rewrite the
// title first; a title rewritten to nothing marks a page to skip.
type Resolver struct {
	patterns schema.PatternList
	logger   *zap.Logger
}

// NewResolver returns a resolver applying the given title patterns.
func NewResolver(patterns schema.PatternList, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{patterns: patterns, logger: logger}
}

// Resolve reads the title text that follows a <title> marker and returns
// its entity, or "" when the page should not be attributed. The stream is
// left after the '<' of the closing tag.
func (r *Resolver) Resolve(rr io.RuneReader) (string, error) {
	raw, _, err := wikitext.ReadTo(rr, '<')
	if err != nil {
		return "", fmt.Errorf("reading title: %w", err)
	}
	return r.Entity(raw), nil
}

// Entity maps raw title text to an entity identifier.
func (r *Resolver) Entity(raw string) string {
	t := norm.NFC.String(html.UnescapeString(strings.TrimSpace(raw)))
	t = strings.TrimSpace(r.patterns.Transform(t))
	if t == "" {
		r.logger.Debug("skipping page", zap.String("title", raw))
		return ""
	}
	return term.ForName(t)
}

// URL returns the article address of an entity produced by Entity.
func URL(entity string) string {
	return "http://en.wikipedia.org/wiki/" + term.StripBrackets(entity)
}
