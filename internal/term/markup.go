// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package term

import (
	"regexp"
	"strings"
)

var (
	// linkRe matches [[Target]] and [[Target|label]].
	linkRe = regexp.MustCompile(`\[\[([^\[\]|]*)(?:\|([^\[\]]*))?\]\]`)

	// externalLinkRe matches [http://example.org label].
	externalLinkRe = regexp.MustCompile(`\[(https?://[^\s\]]+)(?:\s+([^\]]*))?\]`)

	commentRe  = regexp.MustCompile(`(?s)<!--.*?-->`)
	refRe      = regexp.MustCompile(`(?is)<ref[^>]*/>|<ref[^>]*>.*?</ref>`)
	breakRe    = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe      = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	templateRe = regexp.MustCompile(`\{\{([^{}]*)\}\}`)
	emphasisRe = regexp.MustCompile(`'{2,}`)
	spaceRe    = regexp.MustCompile(`[ \t]+`)
)

// wrapperTemplates only format their last argument, which is kept when
// the template is flattened.
var wrapperTemplates = map[string]bool{
	"nowrap": true,
	"nobr":   true,
	"small":  true,
	"big":    true,
	"lang":   true,
	"nowiki": true,
}

// nonArticleNamespaces are link prefixes that do not name entities.
var nonArticleNamespaces = map[string]bool{
	"file":      true,
	"image":     true,
	"media":     true,
	"category":  true,
	"template":  true,
	"wikipedia": true,
	"wp":        true,
	"help":      true,
	"portal":    true,
}

type link struct {
	target string
	label  string
}

// articleLinks returns the article links of s in order of appearance.
func articleLinks(s string) []link {
	var out []link
	for _, m := range linkRe.FindAllStringSubmatch(stripNoise(s), -1) {
		target := strings.TrimSpace(m[1])
		if i := strings.IndexByte(target, '#'); i >= 0 {
			target = strings.TrimSpace(target[:i])
		}
		if target == "" || strings.HasPrefix(target, ":") {
			continue
		}
		if ns, _, ok := strings.Cut(target, ":"); ok && nonArticleNamespaces[strings.ToLower(strings.TrimSpace(ns))] {
			continue
		}
		label := strings.TrimSpace(m[2])
		if label == "" {
			label = target
		}
		out = append(out, link{target: target, label: label})
	}
	return out
}

// stripNoise removes comments and footnote references.
func stripNoise(s string) string {
	s = commentRe.ReplaceAllString(s, "")
	return refRe.ReplaceAllString(s, "")
}

// plainText flattens markup to text. Line breaks survive as "\n".
func plainText(s string) string {
	s = stripNoise(s)
	s = breakRe.ReplaceAllString(s, "\n")
	s = linkRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		if strings.TrimSpace(sub[2]) != "" {
			return sub[2]
		}
		return sub[1]
	})
	s = externalLinkRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := externalLinkRe.FindStringSubmatch(m)
		if strings.TrimSpace(sub[2]) != "" {
			return sub[2]
		}
		return sub[1]
	})
	for templateRe.MatchString(s) {
		s = templateRe.ReplaceAllStringFunc(s, flattenTemplate)
	}
	s = tagRe.ReplaceAllString(s, "")
	s = emphasisRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// flattenTemplate replaces an innermost {{…}} by its last argument for
// formatting wrappers, and by nothing otherwise.
func flattenTemplate(m string) string {
	parts := strings.Split(m[2:len(m)-2], "|")
	name := strings.ToLower(strings.TrimSpace(parts[0]))
	if wrapperTemplates[name] && len(parts) > 1 {
		return parts[len(parts)-1]
	}
	return ""
}

// textLines splits plain text into trimmed, non-empty lines, treating
// list bullets as line starts.
func textLines(s string) []string {
	var out []string
	for _, line := range strings.Split(plainText(s), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*#"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
