// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package term

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/infobox-engine/pkg/types"
)

const monthNames = `(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept|Sep|Oct|Nov|Dec)\.?`

var months = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7, "aug": 8,
	"sep": 9, "sept": 9, "oct": 10, "nov": 11, "dec": 12,
}

// Date forms, most specific first. Each yields year, month and day
// submatch indexes (0 when absent).
var datePatterns = []struct {
	re             *regexp.Regexp
	year, mon, day int
	monthIsName    bool
}{
	{re: regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`), year: 1, mon: 2, day: 3},
	{re: regexp.MustCompile(`(?i)\b(\d{1,2})\s+` + monthNames + `,?\s+(\d{1,4})\b`), year: 3, mon: 2, day: 1, monthIsName: true},
	{re: regexp.MustCompile(`(?i)\b` + monthNames + `\s+(\d{1,2}),?\s+(\d{1,4})\b`), year: 3, mon: 1, day: 2, monthIsName: true},
	{re: regexp.MustCompile(`(?i)\b` + monthNames + `,?\s+(\d{3,4})\b`), year: 2, mon: 1, monthIsName: true},
	{re: regexp.MustCompile(`\b(\d{3,4})\b`), year: 1},
}

// dateTemplateRe matches innermost templates whose name mentions a date
// or year, such as {{birth date and age|1815|12|10}}.
var dateTemplateRe = regexp.MustCompile(`(?i)\{\{\s*[^{}|]*(?:date|year)[^{}|]*((?:\|[^{}]*)?)\}\}`)

type span struct {
	start, end int
	value      string
}

// dates returns the dates of s as xsd:date literals in order of
// appearance. Values are "YYYY", "YYYY-MM" or "YYYY-MM-DD".
func dates(s string) []Term {
	s = stripNoise(s)
	var found []span
	claimed := func(start, end int) bool {
		for _, f := range found {
			if start < f.end && f.start < end {
				return true
			}
		}
		return false
	}

	for _, loc := range dateTemplateRe.FindAllStringSubmatchIndex(s, -1) {
		if v, ok := templateDate(s[loc[2]:loc[3]]); ok {
			found = append(found, span{loc[0], loc[1], v})
		}
	}

	for _, p := range datePatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(s, -1) {
			if claimed(loc[0], loc[1]) {
				continue
			}
			group := func(i int) string {
				if i == 0 || loc[2*i] < 0 {
					return ""
				}
				return s[loc[2*i]:loc[2*i+1]]
			}
			year, _ := strconv.Atoi(group(p.year))
			var mon, day int
			if p.monthIsName {
				mon = months[strings.ToLower(group(p.mon))]
			} else if p.mon > 0 {
				mon, _ = strconv.Atoi(group(p.mon))
			}
			if p.day > 0 {
				day, _ = strconv.Atoi(group(p.day))
			}
			if v, ok := formatDate(year, mon, day, p.mon > 0, p.day > 0); ok {
				found = append(found, span{loc[0], loc[1], v})
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })
	out := make([]Term, 0, len(found))
	for _, f := range found {
		out = append(out, Literal(f.value, types.XSDDate))
	}
	return out
}

// templateDate reads the leading numeric positional arguments of a date
// template as year, month and day. Named arguments are skipped.
func templateDate(args string) (string, bool) {
	var nums []int
	for _, a := range strings.Split(args, "|") {
		a = strings.TrimSpace(a)
		if a == "" || strings.Contains(a, "=") {
			continue
		}
		n, err := strconv.Atoi(a)
		if err != nil {
			break
		}
		nums = append(nums, n)
		if len(nums) == 3 {
			break
		}
	}
	switch len(nums) {
	case 1:
		return formatDate(nums[0], 0, 0, false, false)
	case 2:
		return formatDate(nums[0], nums[1], 0, true, false)
	case 3:
		return formatDate(nums[0], nums[1], nums[2], true, true)
	}
	return "", false
}

func formatDate(year, mon, day int, hasMon, hasDay bool) (string, bool) {
	if year <= 0 || year > 9999 {
		return "", false
	}
	if !hasMon {
		return fmt.Sprintf("%04d", year), true
	}
	if mon < 1 || mon > 12 {
		return "", false
	}
	if !hasDay {
		return fmt.Sprintf("%04d-%02d", year, mon), true
	}
	if day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, mon, day), true
}
