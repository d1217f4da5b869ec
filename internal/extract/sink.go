// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"github.com/pdiddy/infobox-engine/internal/term"
	"github.com/pdiddy/infobox-engine/internal/title"
	"github.com/pdiddy/infobox-engine/pkg/types"
)

// Sink receives extracted facts. Writes are append-only; a write error
// aborts the run.
type Sink interface {
	Write(theme types.Theme, f types.Fact) error
}

// Emit writes f to theme and records its provenance in the sources
// theme: the article it came from and a note on how it was found.
func Emit(sink Sink, theme types.Theme, f types.Fact, subject, note string) error {
	if err := sink.Write(theme, f); err != nil {
		return fmt.Errorf("writing %s fact: %w", theme.Name, err)
	}
	sources := []types.Fact{
		types.NewFact(f.ID, types.ExtractionSource, "<"+title.URL(subject)+">"),
		types.NewFact(f.ID, types.ExtractionTechnique, term.Literal(note, "").String()),
	}
	for _, src := range sources {
		if err := sink.Write(types.InfoboxSources, src); err != nil {
			return fmt.Errorf("writing source fact: %w", err)
		}
	}
	return nil
}
