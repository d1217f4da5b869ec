// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract scans a markup dump for infoboxes and turns their
// attributes into type-checked facts. Facts go to a Sink under the
// infobox themes, each with provenance records in the sources theme.
package extract

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/infobox-engine/internal/schema"
	"github.com/pdiddy/infobox-engine/internal/title"
	"github.com/pdiddy/infobox-engine/internal/wikitext"
	"github.com/pdiddy/infobox-engine/pkg/types"
)

// Markers the scanner looks for, matched without regard to case. Index 0
// starts a page; the others start an infobox.
var markers = []string{"<title>", "{{Infobox", "{{ Infobox"}

// Summary holds counts from an extraction run.
type Summary struct {
	Pages     int
	Templates int
	// Skipped counts infoboxes seen before any attributable title.
	Skipped int
	Facts   int
	Types   int
}

// String renders the summary as a one-line report.
func (s Summary) String() string {
	return fmt.Sprintf("%d pages, %d infoboxes (%d skipped), %d facts, %d types",
		s.Pages, s.Templates, s.Skipped, s.Facts, s.Types)
}

// Options tune an Extractor.
type Options struct {
	Logger *zap.Logger

	// Progress receives a line every ProgressEvery pages. Nil discards.
	Progress      io.Writer
	ProgressEvery int
}

// Extractor runs the infobox stage over one dump.
type Extractor struct {
	engine   *Engine
	titles   *title.Resolver
	patterns schema.Patterns
	rules    []wikitext.CombinationRule
	sink     Sink
	logger   *zap.Logger
	progress io.Writer
	every    int
}

// New compiles everything the stage needs from snap.
func New(snap *schema.Snapshot, sink Sink, opts Options) *Extractor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	return &Extractor{
		engine:   NewEngine(snap, sink, logger),
		titles:   title.NewResolver(schema.TitlePatterns(snap, logger), logger),
		patterns: schema.CompilePatterns(snap, logger),
		rules:    schema.Combinations(snap),
		sink:     sink,
		logger:   logger,
		progress: progress,
		every:    opts.ProgressEvery,
	}
}

// Run scans r once, front to back. Each <title> sets the subject for the
// infoboxes that follow it. Stream and sink errors abort the run; so
// does cancelling ctx.
func (x *Extractor) Run(ctx context.Context, r io.RuneReader) (Summary, error) {
	var (
		summary Summary
		subject string
	)
	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		idx, err := wikitext.FindIgnoreCase(r, markers...)
		if err != nil {
			return summary, fmt.Errorf("scanning input: %w", err)
		}

		switch idx {
		case -1:
			x.logger.Info("extraction finished",
				zap.Int("pages", summary.Pages),
				zap.Int("facts", summary.Facts))
			return summary, nil

		case 0:
			summary.Pages++
			subject, err = x.titles.Resolve(r)
			if err != nil {
				return summary, fmt.Errorf("scanning input: %w", err)
			}
			if x.every > 0 && summary.Pages%x.every == 0 {
				fmt.Fprintf(x.progress, "extracting page %d %s\n", summary.Pages, subject)
			}

		default:
			if subject == "" {
				summary.Skipped++
				continue
			}
			summary.Templates++
			if err := x.processInfobox(r, subject, &summary); err != nil {
				return summary, err
			}
		}
	}
}

// processInfobox reads one infobox of subject's page, positioned just
// after the opening marker.
func (x *Extractor) processInfobox(r io.RuneReader, subject string, summary *Summary) error {
	cls, _, err := wikitext.ReadTo(r, '}', '|')
	if err != nil {
		return fmt.Errorf("scanning input: %w", err)
	}
	cls = strings.TrimSpace(cls)
	if typ, ok := x.engine.Meanings().Lookup(cls); ok {
		f := types.NewFact(subject, types.RDFType, typ)
		note := "InfoboxExtractor: Preferred meaning of infobox type " + cls
		if err := Emit(x.sink, types.InfoboxTypes, f, subject, note); err != nil {
			return err
		}
		summary.Types++
	}

	attrs, err := wikitext.ReadInfobox(r, x.rules)
	if err != nil {
		return fmt.Errorf("scanning input: %w", err)
	}
	for _, name := range attrs.Names() {
		for _, relation := range x.patterns.Relations(name) {
			for _, value := range attrs.Values(name) {
				facts, err := x.engine.ExtractFacts(subject, value, relation)
				summary.Facts += len(facts)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}
