// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wikitext reads infobox templates out of encyclopedia dump markup.
// scanner.go lexes nested {{…}} and [[…]] environments and field separators
// from a forward-only rune stream.
package wikitext

import (
	"errors"
	"io"
	"strings"
	"unicode"
)

// MaxEnvironment bounds the number of runes a single environment may
// accumulate. Because every nesting level appends its opener before
// recursing, it also bounds the recursion depth.
const MaxEnvironment = 4000

// eof is returned by next when the stream is exhausted.
const eof rune = -1

// Terminator reports why ReadEnvironment stopped.
type Terminator int

const (
	EndOfStream Terminator = iota
	CloseBrace
	CloseBracket
	Pipe
	Overflow
)

// String returns a short name for the terminator.
func (t Terminator) String() string {
	switch t {
	case EndOfStream:
		return "eof"
	case CloseBrace:
		return "}"
	case CloseBracket:
		return "]"
	case Pipe:
		return "|"
	case Overflow:
		return "overflow"
	}
	return "unknown"
}

// char returns the rune that produced the terminator, or eof.
func (t Terminator) char() rune {
	switch t {
	case CloseBrace:
		return '}'
	case CloseBracket:
		return ']'
	case Pipe:
		return '|'
	}
	return eof
}

// Buffer accumulates environment text and counts the runes written to it.
type Buffer struct {
	sb strings.Builder
	n  int
}

// WriteRune appends c.
func (b *Buffer) WriteRune(c rune) {
	b.sb.WriteRune(c)
	b.n++
}

// Len returns the number of runes written.
func (b *Buffer) Len() int { return b.n }

// String returns the accumulated text.
func (b *Buffer) String() string { return b.sb.String() }

// next reads one rune, mapping io.EOF to eof.
func next(r io.RuneReader) (rune, error) {
	c, _, err := r.ReadRune()
	if errors.Is(err, io.EOF) {
		return eof, nil
	}
	if err != nil {
		return eof, err
	}
	return c, nil
}

// ReadEnvironment appends runes from r to b until it meets an unnested '}',
// ']' or '|', the end of the stream, or b grows past MaxEnvironment runes.
// Nested {…} and […] groups are copied into b verbatim, including their
// inner separators and closing bracket, and do not end the call.
//
// Overflow is returned as soon as any nested call sees it. A non-nil error
// is only returned for read failures other than io.EOF.
func ReadEnvironment(r io.RuneReader, b *Buffer) (Terminator, error) {
	for {
		if b.Len() > MaxEnvironment {
			return Overflow, nil
		}
		c, err := next(r)
		if err != nil {
			return EndOfStream, err
		}
		switch c {
		case eof:
			return EndOfStream, nil
		case '}':
			return CloseBrace, nil
		case ']':
			return CloseBracket, nil
		case '|':
			return Pipe, nil
		case '{', '[':
			overflow, err := readGroup(r, b, c)
			if err != nil {
				return EndOfStream, err
			}
			if overflow {
				return Overflow, nil
			}
		default:
			b.WriteRune(c)
		}
	}
}

// readGroup copies one bracketed group opened by open into b. The group
// ends at its matching closer or at the end of the stream; the closer is
// written in both cases.
func readGroup(r io.RuneReader, b *Buffer, open rune) (overflow bool, err error) {
	closer, closeT := '}', CloseBrace
	if open == '[' {
		closer, closeT = ']', CloseBracket
	}
	b.WriteRune(open)
	for {
		t, err := ReadEnvironment(r, b)
		if err != nil {
			return false, err
		}
		switch t {
		case Overflow:
			return true, nil
		case EndOfStream, closeT:
			b.WriteRune(closer)
			return false, nil
		default:
			b.WriteRune(t.char())
		}
	}
}

// ReadTo reads runes up to the first rune in stops, which is consumed but
// not included in the returned text. The stop rune that ended the read is
// returned, or -1 if the stream ended first.
func ReadTo(r io.RuneReader, stops ...rune) (string, rune, error) {
	var sb strings.Builder
	for {
		c, err := next(r)
		if err != nil {
			return sb.String(), eof, err
		}
		if c == eof {
			return sb.String(), eof, nil
		}
		for _, s := range stops {
			if c == s {
				return sb.String(), c, nil
			}
		}
		sb.WriteRune(c)
	}
}

// FindIgnoreCase consumes r up to and including the first occurrence of
// any marker, compared case-insensitively, and returns that marker's index.
// It returns -1 when the stream ends without a match.
func FindIgnoreCase(r io.RuneReader, markers ...string) (int, error) {
	lowered := make([][]rune, len(markers))
	longest := 0
	for i, m := range markers {
		lowered[i] = []rune(strings.ToLower(m))
		longest = max(longest, len(lowered[i]))
	}
	if longest == 0 {
		return -1, nil
	}

	window := make([]rune, 0, 2*longest)
	for {
		c, err := next(r)
		if err != nil {
			return -1, err
		}
		if c == eof {
			return -1, nil
		}
		window = append(window, unicode.ToLower(c))
		if len(window) > longest {
			window = append(window[:0], window[len(window)-longest:]...)
		}
		for i, m := range lowered {
			if hasRuneSuffix(window, m) {
				return i, nil
			}
		}
	}
}

func hasRuneSuffix(s, suffix []rune) bool {
	if len(suffix) == 0 || len(suffix) > len(s) {
		return false
	}
	off := len(s) - len(suffix)
	for i, c := range suffix {
		if s[off+i] != c {
			return false
		}
	}
	return true
}
