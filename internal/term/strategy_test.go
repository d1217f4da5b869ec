// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package term

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/infobox-engine/pkg/types"
)

// fakeHierarchy maps each class to its direct superclass.
type fakeHierarchy map[string]string

func (h fakeHierarchy) IsSubClassOf(sub, super string) bool {
	for c := sub; c != ""; c = h[c] {
		if c == super {
			return true
		}
	}
	return false
}

func TestStrategyFor(t *testing.T) {
	h := fakeHierarchy{
		types.XSDNonNegativeInteger: types.XSDInteger,
		types.XSDInteger:            types.XSDDecimal,
		"<yearDate>":                types.XSDDate,
		"<wikicat_City>":            types.OWLThing,
	}
	tests := []struct {
		class string
		want  Strategy
	}{
		{types.RDFSClass, ClassStrategy},
		{types.XSDDate, DateStrategy},
		{"<yearDate>", DateStrategy},
		{types.XSDNonNegativeInteger, NumberStrategy},
		{types.XSDDecimal, NumberStrategy},
		{types.XSDDouble, NumberStrategy},
		{types.XSDAnyURI, URLStrategy},
		{types.XSDString, StringStrategy},
		{"<wikicat_City>", EntityStrategy},
		{types.OWLThing, EntityStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			assert.Equal(t, tt.want, StrategyFor(tt.class, h))
		})
	}
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "date", DateStrategy.String())
	assert.Equal(t, "unknown", Strategy(42).String())
}

func TestMeaningsLookup(t *testing.T) {
	m := Meanings{"city": "<wikicat_City>", "Town": "<wikicat_Town>"}

	c, ok := m.Lookup("City")
	assert.True(t, ok)
	assert.Equal(t, "<wikicat_City>", c)

	c, ok = m.Lookup(" cities ")
	assert.False(t, ok, "only a trailing s is removed")
	assert.Empty(t, c)

	c, ok = m.Lookup("Citys")
	assert.True(t, ok)
	assert.Equal(t, "<wikicat_City>", c)

	_, ok = m.Lookup("Town")
	assert.True(t, ok)
	_, ok = m.Lookup("")
	assert.False(t, ok)
}

func TestExtractEntities(t *testing.T) {
	x := Extractor{Strategy: EntityStrategy}
	tests := []struct {
		name string
		in   string
		want []Term
	}{
		{
			name: "links",
			in:   "[[Paris]], [[Île-de-France|IDF]]",
			want: []Term{Entity("<Paris>"), Entity("<Île-de-France>")},
		},
		{
			name: "section link",
			in:   "[[London#History|old London]]",
			want: []Term{Entity("<London>")},
		},
		{
			name: "duplicate links",
			in:   "[[Paris]] and [[Paris|the capital]]",
			want: []Term{Entity("<Paris>")},
		},
		{
			name: "file links are not entities",
			in:   "[[File:Flag.svg|20px]]",
			want: nil,
		},
		{
			name: "plain names",
			in:   "London<br/>Paris",
			want: []Term{Entity("<London>"), Entity("<Paris>")},
		},
		{
			name: "comments and references",
			in:   "[[Rome]]<!-- [[Milan]] --><ref>[[Naples]]</ref>",
			want: []Term{Entity("<Rome>")},
		},
		{
			name: "numbers are not names",
			in:   "1815",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.Extract(tt.in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractClasses(t *testing.T) {
	x := Extractor{
		Strategy: ClassStrategy,
		Meanings: Meanings{"city": "<wikicat_City>", "town": "<wikicat_Town>"},
	}
	assert.Equal(t, []Term{Entity("<wikicat_City>")}, x.Extract("[[City]] or village"))
	assert.Equal(t,
		[]Term{Entity("<wikicat_City>"), Entity("<wikicat_Town>")},
		x.Extract("city, towns"))
	assert.Empty(t, x.Extract("hamlet"))
}

func TestExtractDates(t *testing.T) {
	x := Extractor{Strategy: DateStrategy}
	tests := []struct {
		in   string
		want []string
	}{
		{"1815", []string{"1815"}},
		{"{{birth date and age|1815|12|10}}", []string{"1815-12-10"}},
		{"{{birth date|df=yes|1815|12|10}}", []string{"1815-12-10"}},
		{"{{start date|1990|3}}", []string{"1990-03"}},
		{"10 December 1815", []string{"1815-12-10"}},
		{"December 10, 1815", []string{"1815-12-10"}},
		{"Sept. 3, 1939", []string{"1939-09-03"}},
		{"March 1990", []string{"1990-03"}},
		{"1815-12-10", []string{"1815-12-10"}},
		{"1990 – 1995", []string{"1990", "1995"}},
		{"1815-13-40", []string{"1815"}},
		{"aged 36", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got []string
			for _, d := range x.Extract(tt.in) {
				assert.Equal(t, types.XSDDate, d.Datatype)
				got = append(got, d.Value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractNumbers(t *testing.T) {
	x := Extractor{Strategy: NumberStrategy}
	tests := []struct {
		in   string
		want []Term
	}{
		{"1,234,567", []Term{Literal("1234567", types.XSDNonNegativeInteger)}},
		{"3.14", []Term{Literal("3.14", types.XSDDecimal)}},
		{"−5", []Term{Literal("-5", types.XSDInteger)}},
		{"{{convert|8848|m|ft}}", []Term{Literal("8848", types.XSDNonNegativeInteger)}},
		{"1990-1995", []Term{
			Literal("1990", types.XSDNonNegativeInteger),
			Literal("1995", types.XSDNonNegativeInteger),
		}},
		{"105.4 km2", []Term{Literal("105.4", types.XSDDecimal)}},
		{"none", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := x.Extract(tt.in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractStrings(t *testing.T) {
	x := Extractor{Strategy: StringStrategy}
	assert.Equal(t,
		[]Term{Literal("Hello", ""), Literal("big world", "")},
		x.Extract("'''Hello'''<br/>[[World|big world]]"))
	assert.Equal(t,
		[]Term{Literal("Ada", "")},
		x.Extract("{{nowrap|Ada}}{{citation needed}}"))
}

func TestExtractURLs(t *testing.T) {
	x := Extractor{Strategy: URLStrategy}
	assert.Equal(t,
		[]Term{Literal("http://example.org", types.XSDAnyURI)},
		x.Extract("{{URL|example.org}}"))
	assert.Equal(t,
		[]Term{Literal("https://example.org/a", types.XSDAnyURI)},
		x.Extract("[https://example.org/a Example]"))
}
