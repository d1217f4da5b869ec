// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package term

import (
	"regexp"
	"strings"

	"github.com/pdiddy/infobox-engine/pkg/types"
)

var (
	numberRe = regexp.MustCompile(`[-−]?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?`)

	// convertRe matches {{convert|1234|m|ft}} and keeps the quantity.
	convertRe = regexp.MustCompile(`(?i)\{\{\s*(?:convert|cvt)\s*\|\s*([^|{}]+)[^{}]*\}\}`)
)

// numbers returns the numbers of s in order of appearance. Decimals are
// typed xsd:decimal, negative integers xsd:integer and all other
// integers xsd:nonNegativeInteger.
func numbers(s string) []Term {
	s = convertRe.ReplaceAllString(stripNoise(s), "$1")
	s = plainText(s)
	var out []Term
	for _, loc := range numberRe.FindAllStringIndex(s, -1) {
		n := s[loc[0]:loc[1]]
		n = strings.ReplaceAll(n, "−", "-")
		if !strings.HasPrefix(n, "-") && loc[0] > 0 && isLetterByte(s[loc[0]-1]) {
			// Digits inside a word or unit, as in km2.
			continue
		}
		if strings.HasPrefix(n, "-") && loc[0] > 0 && isWordByte(s[loc[0]-1]) {
			// A hyphen between words or digits, as in 1990-1995.
			n = n[1:]
		}
		n = strings.ReplaceAll(n, ",", "")
		switch {
		case strings.Contains(n, "."):
			out = append(out, Literal(n, types.XSDDecimal))
		case strings.HasPrefix(n, "-"):
			out = append(out, Literal(n, types.XSDInteger))
		default:
			out = append(out, Literal(n, types.XSDNonNegativeInteger))
		}
	}
	return out
}

func isWordByte(b byte) bool {
	return b >= '0' && b <= '9' || isLetterByte(b)
}

func isLetterByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
