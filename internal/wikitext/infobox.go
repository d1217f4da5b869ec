// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikitext

import (
	"io"
	"slices"
	"sort"
	"strings"
)

// NormalizeAttribute maps an infobox attribute name to its canonical key:
// trimmed, lowercased, with underscores, spaces and ASCII digits removed.
func NormalizeAttribute(a string) string {
	a = strings.ToLower(strings.TrimSpace(a))
	return strings.Map(func(c rune) rune {
		if c == '_' || c == ' ' || (c >= '0' && c <= '9') {
			return -1
		}
		return c
	}, a)
}

// AttributeMap holds the values of one infobox, keyed by normalized
// attribute name. Values under a key are deduplicated and kept sorted.
type AttributeMap map[string][]string

// Add inserts value under name unless it is already present.
func (m AttributeMap) Add(name, value string) {
	vals := m[name]
	i, found := slices.BinarySearch(vals, value)
	if found {
		return
	}
	m[name] = slices.Insert(vals, i, value)
}

// Values returns the sorted values stored under name.
func (m AttributeMap) Values(name string) []string {
	return m[name]
}

// First returns the lexicographically smallest value under name.
func (m AttributeMap) First(name string) (string, bool) {
	vals := m[name]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Names returns the attribute names in sorted order.
func (m AttributeMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CombinationRule derives a new attribute from attributes already read
// from the same infobox. Template mixes literal text with <attr>
// references; each reference takes the first value of that attribute.
type CombinationRule struct {
	Template string `json:"template" yaml:"template"`
	Target   string `json:"target" yaml:"target"`
}

// Apply builds the derived value. It reports false, and builds nothing,
// if any referenced attribute is missing from m.
func (c CombinationRule) Apply(m AttributeMap) (string, bool) {
	var sb strings.Builder
	for _, seg := range strings.Split(c.Template, ">") {
		i := strings.IndexByte(seg, '<')
		if i < 0 {
			sb.WriteString(seg)
			continue
		}
		sb.WriteString(seg[:i])
		v, ok := m.First(NormalizeAttribute(seg[i+1:]))
		if !ok {
			return "", false
		}
		sb.WriteString(v)
	}
	return sb.String(), true
}

// ReadInfobox reads the body of one infobox from r, which must be
// positioned after the template name. Each "name = value" field is stored
// under its normalized name. An empty name ends the body and the map is
// returned as read. Otherwise reading stops at the template's closing
// brace, at the end of the stream, or when a value overflows
// MaxEnvironment, and the rules are then applied in order.
func ReadInfobox(r io.RuneReader, rules []CombinationRule) (AttributeMap, error) {
	attrs := make(AttributeMap)
	for {
		raw, _, err := ReadTo(r, '=', '}')
		if err != nil {
			return attrs, err
		}
		name := NormalizeAttribute(raw)
		if name == "" {
			return attrs, nil
		}
		var value Buffer
		t, err := ReadEnvironment(r, &value)
		if err != nil {
			return attrs, err
		}
		attrs.Add(name, strings.TrimSpace(value.String()))
		if t == CloseBrace || t == EndOfStream || t == Overflow {
			break
		}
	}

	for _, rule := range rules {
		if v, ok := rule.Apply(attrs); ok {
			attrs.Add(NormalizeAttribute(rule.Target), v)
		}
	}
	return attrs, nil
}
