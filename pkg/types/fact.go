// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the infobox
// extraction pipeline: facts, output themes, vocabulary and configuration.
package types

import (
	"crypto/sha256"
	"fmt"
)

// Fact is a subject-relation-object triple. Components are written in
// fact component form: entities as <Name>, literals as "value" or
// "value"^^datatype. Facts are never modified after creation.
type Fact struct {
	// ID is a stable identifier derived from the triple.
	ID string `json:"id" yaml:"id"`

	Subject  string `json:"subject" yaml:"subject"`
	Relation string `json:"relation" yaml:"relation"`
	Object   string `json:"object" yaml:"object"`
}

// NewFact builds a Fact and assigns its ID.
func NewFact(subject, relation, object string) Fact {
	return Fact{
		ID:       FactID(subject, relation, object),
		Subject:  subject,
		Relation: relation,
		Object:   object,
	}
}

// FactID returns "<id_" + the first 12 hex characters of
// SHA-256(subject, relation, object) + ">". Equal triples get equal IDs.
func FactID(subject, relation, object string) string {
	h := sha256.New()
	h.Write([]byte(subject))
	h.Write([]byte{0})
	h.Write([]byte(relation))
	h.Write([]byte{0})
	h.Write([]byte(object))
	return fmt.Sprintf("<id_%x>", h.Sum(nil))[:16] + ">"
}

// String renders the fact as one tab-separated line without the ID.
func (f Fact) String() string {
	return f.Subject + "\t" + f.Relation + "\t" + f.Object
}

// Theme is a named category of output facts consumed by a later stage.
type Theme struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Themes written by the infobox stage.
var (
	DirtyInfoboxFacts = Theme{
		Name:        "infoboxFactsVeryDirty",
		Description: "Facts extracted from the Wikipedia infoboxes - still to be redirect-checked and type-checked",
	}
	InfoboxTypes = Theme{
		Name:        "infoboxTypes",
		Description: "Types extracted from Wikipedia infoboxes",
	}
	InfoboxSources = Theme{
		Name:        "infoboxSources",
		Description: "Source information for the facts extracted from the Wikipedia infoboxes",
	}
)

// Themes produced from DirtyInfoboxFacts by the redirect and type-check
// stages.
var (
	RedirectedInfoboxFacts = Theme{
		Name:        "infoboxFactsDirty",
		Description: "Facts extracted from the Wikipedia infoboxes with redirects resolved - still to be type-checked",
	}
	InfoboxFacts = Theme{
		Name:        "infoboxFacts",
		Description: "Facts extracted from the Wikipedia infoboxes, type-checked and with redirects resolved",
	}
)

// OutputThemes lists the themes the infobox stage writes.
func OutputThemes() []Theme {
	return []Theme{DirtyInfoboxFacts, InfoboxTypes, InfoboxSources}
}

// FollowUpThemes lists the themes later stages derive from this stage's output.
func FollowUpThemes() []Theme {
	return []Theme{RedirectedInfoboxFacts, InfoboxFacts}
}

// ThemeByName returns the known theme with the given name.
func ThemeByName(name string) (Theme, bool) {
	for _, th := range append(OutputThemes(), FollowUpThemes()...) {
		if th.Name == name {
			return th, true
		}
	}
	return Theme{}, false
}
