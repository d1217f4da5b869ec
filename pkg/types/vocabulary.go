// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Standard relations and classes.
const (
	RDFType        = "rdf:type"
	RDFSDomain     = "rdfs:domain"
	RDFSRange      = "rdfs:range"
	RDFSSubClassOf = "rdfs:subClassOf"

	// RDFSClass is the class of all classes. Relations with this range
	// take class names as objects.
	RDFSClass = "rdfs:Class"

	// OWLThing is the top-level entity class, used when a relation is
	// missing from the schema.
	OWLThing = "owl:Thing"

	// FunctionalRelation marks relations with at most one object per subject.
	FunctionalRelation = "owl:FunctionalProperty"
)

// Literal datatypes.
const (
	XSDString             = "xsd:string"
	XSDDate               = "xsd:date"
	XSDDecimal            = "xsd:decimal"
	XSDInteger            = "xsd:integer"
	XSDNonNegativeInteger = "xsd:nonNegativeInteger"
	XSDDouble             = "xsd:double"
	XSDAnyURI             = "xsd:anyURI"
)

// Schema relations that configure the infobox stage.
const (
	// InfoboxPattern: "attribute" <_infoboxPattern> <relation>
	InfoboxPattern = "<_infoboxPattern>"
	// InfoboxCombine: "template" <_infoboxCombine> "target attribute"
	InfoboxCombine = "<_infoboxCombine>"
	// InfoboxReplace: "regexp" <_infoboxReplace> "replacement"
	InfoboxReplace = "<_infoboxReplace>"
	// TitleReplace: "regexp" <_titleReplace> "replacement"
	TitleReplace = "<_titleReplace>"
	// TypeCheckPattern: class <_hasTypeCheckPattern> "regexp"
	TypeCheckPattern = "<_hasTypeCheckPattern>"
	// PreferredMeaningOf: class <isPreferredMeaningOf> "word"
	PreferredMeaningOf = "<isPreferredMeaningOf>"
)

// Provenance relations written to the sources theme.
const (
	ExtractionSource    = "<extractionSource>"
	ExtractionTechnique = "<extractionTechnique>"
)
