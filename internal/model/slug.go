package model

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns s into a lowercase, dash-separated URL path segment. Accents
// are dropped, "+" and "#" are spelled out so that "C", "C++" and "C#" stay
// distinct.
func Slugify(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripMarks, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		switch {
		case r == '+':
			b.WriteString("plus")
			dash = false
		case r == '#':
			b.WriteString("sharp")
			dash = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlugs maps each value to a slug that no other value in values maps
// to. Colliding slugs get a numeric suffix in input order.
func UniqueSlugs(values []string) map[string]string {
	out := make(map[string]string, len(values))
	taken := make(map[string]bool, len(values))
	for _, v := range values {
		if _, ok := out[v]; ok {
			continue
		}
		base := Slugify(v)
		if base == "" {
			base = "untitled"
		}
		s := base
		for n := 2; taken[s]; n++ {
			s = base + "-" + strconv.Itoa(n)
		}
		taken[s] = true
		out[v] = s
	}
	return out
}
