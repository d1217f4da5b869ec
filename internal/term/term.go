// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package term turns raw infobox values into candidate fact objects.
// A Term is either an entity reference or a literal with an optional
// datatype; Strategy selects how terms are found for a target class.
package term

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind distinguishes entity references from literals.
type Kind int

const (
	EntityKind Kind = iota
	LiteralKind
)

// Term is one candidate fact object.
type Term struct {
	Kind Kind

	// Value is the identifier as written (<Name> or prefix:name) for
	// entities, and the unquoted text for literals.
	Value string

	// Datatype is the literal's datatype class, or "" if untyped.
	Datatype string
}

// Entity returns an entity term for an identifier in fact component form.
func Entity(id string) Term {
	return Term{Kind: EntityKind, Value: id}
}

// Literal returns a literal term. datatype may be empty.
func Literal(value, datatype string) Term {
	return Term{Kind: LiteralKind, Value: value, Datatype: datatype}
}

// IsLiteral reports whether t is a literal.
func (t Term) IsLiteral() bool { return t.Kind == LiteralKind }

// WithDatatype returns a copy of t with its datatype replaced.
func (t Term) WithDatatype(datatype string) Term {
	t.Datatype = datatype
	return t
}

// Text returns the plain text of t: the literal value, or the entity
// identifier without angle brackets.
func (t Term) Text() string {
	if t.IsLiteral() {
		return t.Value
	}
	return StripBrackets(t.Value)
}

// String renders t in fact component form.
func (t Term) String() string {
	if !t.IsLiteral() {
		return t.Value
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range t.Value {
		switch c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	if t.Datatype != "" {
		sb.WriteString("^^")
		sb.WriteString(t.Datatype)
	}
	return sb.String()
}

// Parse reads a fact component. Quoted text is a literal, with an
// optional ^^datatype suffix; a language tag (@eng) is dropped. Anything
// else is an entity identifier.
func Parse(s string) Term {
	if !strings.HasPrefix(s, `"`) {
		return Entity(s)
	}
	end := strings.LastIndexByte(s, '"')
	if end == 0 {
		return Literal(s[1:], "")
	}
	value := unescape(s[1:end])
	rest := s[end+1:]
	if dt, ok := strings.CutPrefix(rest, "^^"); ok {
		return Literal(value, dt)
	}
	return Literal(value, "")
}

func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	escaped := false
	for _, c := range s {
		if escaped {
			switch c {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"', '\\':
				sb.WriteRune(c)
			default:
				// Regexp escapes such as \d are kept as written.
				sb.WriteByte('\\')
				sb.WriteRune(c)
			}
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// StripBrackets removes one pair of enclosing angle brackets.
func StripBrackets(id string) string {
	if len(id) >= 2 && id[0] == '<' && id[len(id)-1] == '>' {
		return id[1 : len(id)-1]
	}
	return id
}

// ForName builds an entity identifier from a page title: whitespace runs
// become underscores and the first letter is upper-cased, as page titles
// are. It returns "" for blank names.
func ForName(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(name)
	return "<" + string(unicode.ToUpper(first)) + name[size:] + ">"
}
