// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/infobox-engine/internal/schema"
	"github.com/pdiddy/infobox-engine/pkg/types"
)

// Run is single-goroutine; nothing it starts may outlive a test.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- test sink ---

type collector struct {
	facts map[string][]types.Fact
	err   error
}

func newCollector() *collector {
	return &collector{facts: make(map[string][]types.Fact)}
}

func (c *collector) Write(theme types.Theme, f types.Fact) error {
	if c.err != nil {
		return c.err
	}
	c.facts[theme.Name] = append(c.facts[theme.Name], f)
	return nil
}

func (c *collector) triples(theme types.Theme) [][3]string {
	var out [][3]string
	for _, f := range c.facts[theme.Name] {
		out = append(out, [3]string{f.Subject, f.Relation, f.Object})
	}
	return out
}

func fact(s, r, o string) types.Fact {
	return types.Fact{Subject: s, Relation: r, Object: o}
}

func testSchema() *schema.Snapshot {
	return schema.FromFacts([]types.Fact{
		fact(`"born"`, types.InfoboxPattern, "<wasBornOnDate>"),
		fact(`"birthplace"`, types.InfoboxPattern, "<wasBornIn>"),
		fact(`"population"`, types.InfoboxPattern, "<hasPopulation>"),
		fact(`"country"`, types.InfoboxPattern, "<hasCapital->"),
		fact(`"motto"`, types.InfoboxPattern, "<hasMotto>"),
		fact(`"area"`, types.InfoboxPattern, "<hasArea>"),
		fact(`"occupation"`, types.InfoboxPattern, "<hasOccupation>"),
		fact(`"<firstname> <lastname>"`, types.InfoboxCombine, `"fullname"`),
		fact(`"fullname"`, types.InfoboxPattern, "<hasFullName>"),
		fact(`"( ?)BC"`, types.InfoboxReplace, `" B.C."`),
		fact("<wordnet_person>", types.PreferredMeaningOf, `"person"`),
		fact("<wordnet_mathematician>", types.PreferredMeaningOf, `"mathematician"`),
		fact(`"^(Talk|Category):.*"`, types.TitleReplace, `""`),
		fact("<wasBornOnDate>", types.RDFSRange, types.XSDDate),
		fact("<wasBornOnDate>", types.RDFType, types.FunctionalRelation),
		fact("<wasBornIn>", types.RDFSRange, "<wordnet_city>"),
		fact("<wasBornIn>", types.RDFType, types.FunctionalRelation),
		fact("<hasPopulation>", types.RDFSRange, types.XSDNonNegativeInteger),
		fact("<hasCapital>", types.RDFSDomain, "<wordnet_country>"),
		fact("<hasCapital>", types.RDFSRange, "<wordnet_city>"),
		fact("<hasMotto>", types.RDFSRange, types.XSDString),
		fact("<hasFullName>", types.RDFSRange, types.XSDString),
		fact("<hasArea>", types.RDFSRange, types.XSDDouble),
		fact("<hasOccupation>", types.RDFSRange, types.RDFSClass),
		fact(types.XSDDate, types.TypeCheckPattern, `"\d{4}"`),
	}, nil)
}

// --- Engine.ExtractFacts ---

func TestExtractFactsFunctionalRelation(t *testing.T) {
	sink := newCollector()
	e := NewEngine(testSchema(), sink, nil)

	facts, err := e.ExtractFacts("<Ada_Lovelace>", "[[London]], [[Paris]] or [[Rome]]", "<wasBornIn>")
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, [][3]string{{"<Ada_Lovelace>", "<wasBornIn>", "<London>"}},
		sink.triples(types.DirtyInfoboxFacts))
}

func TestExtractFactsDiscardsMismatchedLiteral(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := newCollector()
	e := NewEngine(testSchema(), sink, zap.New(core))

	facts, err := e.ExtractFacts("<Springfield>", "−5 or 30,720", "<hasPopulation>")
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, `"30720"^^xsd:nonNegativeInteger`, facts[0].Object)
	assert.Equal(t, 1, logs.FilterMessage("candidate does not match type check").Len())
}

func TestExtractFactsSyntaxCheck(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := newCollector()
	e := NewEngine(testSchema(), sink, zap.New(core))

	facts, err := e.ExtractFacts("<Ada_Lovelace>", "10 December 1815", "<wasBornOnDate>")
	require.NoError(t, err)
	assert.Empty(t, facts, "full dates fail the year-only pattern")
	assert.Equal(t, 1, logs.FilterMessage("candidate does not match syntax check").Len())

	facts, err = e.ExtractFacts("<Ada_Lovelace>", "1815", "<wasBornOnDate>")
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, `"1815"^^xsd:date`, facts[0].Object)
}

func TestExtractFactsInverse(t *testing.T) {
	sink := newCollector()
	e := NewEngine(testSchema(), sink, nil)

	_, err := e.ExtractFacts("<Paris>", "[[France]]", "<hasCapital->")
	require.NoError(t, err)
	assert.Equal(t, [][3]string{{"<France>", "<hasCapital>", "<Paris>"}},
		sink.triples(types.DirtyInfoboxFacts))
}

func TestExtractFactsUnknownInverse(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := newCollector()
	e := NewEngine(testSchema(), sink, zap.New(core))

	facts, err := e.ExtractFacts("<Paris>", "[[France]]", "<isCapitalOf->")
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, [][3]string{{"<France>", "<isCapitalOf>", "<Paris>"}},
		sink.triples(types.DirtyInfoboxFacts))
	entries := logs.FilterMessage("unknown relation to extract").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "<isCapitalOf>", entries[0].ContextMap()["relation"])
}

func TestExtractFactsDoubleRange(t *testing.T) {
	sink := newCollector()
	e := NewEngine(testSchema(), sink, nil)

	facts, err := e.ExtractFacts("<Paris>", "105.4 km2 (40.7 sq mi)", "<hasArea>")
	require.NoError(t, err)
	assert.Equal(t, [][3]string{
		{"<Paris>", "<hasArea>", `"105.4"^^xsd:double`},
		{"<Paris>", "<hasArea>", `"40.7"^^xsd:double`},
	}, sink.triples(types.DirtyInfoboxFacts))
	assert.Len(t, facts, 2)
}

func TestExtractFactsClassRange(t *testing.T) {
	sink := newCollector()
	e := NewEngine(testSchema(), sink, nil)

	facts, err := e.ExtractFacts("<Ada_Lovelace>", "[[Mathematician]], writer", "<hasOccupation>")
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, [][3]string{{"<Ada_Lovelace>", "<hasOccupation>", "<wordnet_mathematician>"}},
		sink.triples(types.DirtyInfoboxFacts))
}

func TestExtractFactsStringsAreStamped(t *testing.T) {
	sink := newCollector()
	e := NewEngine(testSchema(), sink, nil)

	_, err := e.ExtractFacts("<Paris>", "Fluctuat nec mergitur &amp; more", "<hasMotto>")
	require.NoError(t, err)
	assert.Equal(t, [][3]string{{"<Paris>", "<hasMotto>", `"Fluctuat nec mergitur & more"^^xsd:string`}},
		sink.triples(types.DirtyInfoboxFacts))
}

func TestExtractFactsReplacementsAndSubject(t *testing.T) {
	sink := newCollector()
	e := NewEngine(testSchema(), sink, nil)

	_, err := e.ExtractFacts("<Caesar>", "$0 100BC", "<hasMotto>")
	require.NoError(t, err)
	assert.Equal(t, [][3]string{{"<Caesar>", "<hasMotto>", `"Caesar 100 B.C."^^xsd:string`}},
		sink.triples(types.DirtyInfoboxFacts))
}

func TestExtractFactsUnknownRelation(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := newCollector()
	e := NewEngine(testSchema(), sink, zap.New(core))

	facts, err := e.ExtractFacts("<Ada_Lovelace>", "[[Analytical Engine]]", "<isKnownFor>")
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "<Analytical_Engine>", facts[0].Object)
	assert.Equal(t, 1, logs.FilterMessage("unknown relation to extract").Len())
}

func TestExtractFactsEmptyValue(t *testing.T) {
	sink := newCollector()
	e := NewEngine(testSchema(), sink, nil)

	facts, err := e.ExtractFacts("<Ada_Lovelace>", "  <!-- -->  ", "<isKnownFor>")
	require.NoError(t, err)
	assert.Empty(t, facts)
	assert.Empty(t, sink.facts)
}

func TestExtractFactsWritesSources(t *testing.T) {
	sink := newCollector()
	e := NewEngine(testSchema(), sink, nil)

	facts, err := e.ExtractFacts("<Ada_Lovelace>", "1815", "<wasBornOnDate>")
	require.NoError(t, err)
	require.Len(t, facts, 1)

	id := facts[0].ID
	want := [][3]string{
		{id, types.ExtractionSource, "<http://en.wikipedia.org/wiki/Ada_Lovelace>"},
		{id, types.ExtractionTechnique, `"InfoboxExtractor: from 1815"`},
	}
	if diff := cmp.Diff(want, sink.triples(types.InfoboxSources)); diff != "" {
		t.Errorf("source facts mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFactsSinkError(t *testing.T) {
	sink := newCollector()
	sink.err = errors.New("disk full")
	e := NewEngine(testSchema(), sink, nil)

	_, err := e.ExtractFacts("<Ada_Lovelace>", "1815", "<wasBornOnDate>")
	assert.ErrorContains(t, err, "disk full")
}

// --- Extractor.Run ---

const dump = `<mediawiki>
{{Infobox person | born = 1700 }}
<page>
<title>Ada Lovelace</title>
<text>{{Infobox person
| name = Ada Lovelace
| born = 1815
}}
'''Ada''' was a mathematician.</text>
</page>
<page>
<title>Talk:Ada Lovelace</title>
<text>{{Infobox person | born = 1900 }}</text>
</page>
</mediawiki>
`

func run(t *testing.T, ctx context.Context, input string, sink Sink, opts Options) (Summary, error) {
	t.Helper()
	x := New(testSchema(), sink, opts)
	return x.Run(ctx, bufio.NewReader(strings.NewReader(input)))
}

func TestRunEndToEnd(t *testing.T) {
	sink := newCollector()
	summary, err := run(t, context.Background(), dump, sink, Options{})
	require.NoError(t, err)

	want := [][3]string{{"<Ada_Lovelace>", "<wasBornOnDate>", `"1815"^^xsd:date`}}
	if diff := cmp.Diff(want, sink.triples(types.DirtyInfoboxFacts)); diff != "" {
		t.Errorf("facts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, [][3]string{{"<Ada_Lovelace>", types.RDFType, "<wordnet_person>"}},
		sink.triples(types.InfoboxTypes))
	assert.Len(t, sink.facts[types.InfoboxSources.Name], 4)

	assert.Equal(t, Summary{Pages: 2, Templates: 1, Skipped: 2, Facts: 1, Types: 1}, summary)
}

func TestRunCombinationRules(t *testing.T) {
	sink := newCollector()
	input := "<title>Ada Lovelace</title>{{Infobox scientist\n| firstname = Ada\n| lastname = Lovelace\n}}"
	_, err := run(t, context.Background(), input, sink, Options{})
	require.NoError(t, err)

	assert.Equal(t, [][3]string{{"<Ada_Lovelace>", "<hasFullName>", `"Ada Lovelace"^^xsd:string`}},
		sink.triples(types.DirtyInfoboxFacts))
	assert.Empty(t, sink.triples(types.InfoboxTypes))
}

func TestRunProgress(t *testing.T) {
	var out strings.Builder
	input := strings.Repeat("<title>Page</title>\n", 5)
	summary, err := run(t, context.Background(), input, newCollector(), Options{Progress: &out, ProgressEvery: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Pages)
	assert.Equal(t, "extracting page 2 <Page>\nextracting page 4 <Page>\n", out.String())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := run(t, ctx, dump, newCollector(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSinkError(t *testing.T) {
	sink := newCollector()
	sink.err = errors.New("disk full")
	_, err := run(t, context.Background(), dump, sink, Options{})
	assert.ErrorContains(t, err, "disk full")
}

type failingReader struct{}

func (failingReader) ReadRune() (rune, int, error) {
	return 0, 0, errors.New("connection reset")
}

func TestRunReadError(t *testing.T) {
	x := New(testSchema(), newCollector(), Options{})
	_, err := x.Run(context.Background(), failingReader{})
	assert.ErrorContains(t, err, "scanning input")
	assert.ErrorContains(t, err, "connection reset")
}

func TestSummaryString(t *testing.T) {
	s := Summary{Pages: 3, Templates: 2, Skipped: 1, Facts: 7, Types: 2}
	assert.Equal(t, "3 pages, 2 infoboxes (1 skipped), 7 facts, 2 types", s.String())
}
