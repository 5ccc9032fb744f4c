package codegen

import (
	"strings"
	"unicode"
)

// exportName converts a schema identifier (often already PascalCase, but
// sometimes camelCase or snake_case in hand-written schemas) into an
// exported Go identifier.
func exportName(s string) string {
	if s == "" {
		return s
	}
	parts := splitWords(s)
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	if b.Len() == 0 {
		return s
	}
	out := b.String()
	// keep the first rune capitalized even if splitWords produced one run
	r := []rune(out)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' {
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
			continue
		}
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			words = append(words, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}
