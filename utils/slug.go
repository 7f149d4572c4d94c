package utils

import "strings"

// polishFold maps Polish diacritics to their ASCII base letters. Only these
// are folded; other non-ASCII runes pass through untouched.
var polishFold = map[rune]rune{
	'ą': 'a', 'ć': 'c', 'ę': 'e', 'ł': 'l', 'ń': 'n',
	'ó': 'o', 'ś': 's', 'ź': 'z', 'ż': 'z',
	'Ą': 'a', 'Ć': 'c', 'Ę': 'e', 'Ł': 'l', 'Ń': 'n',
	'Ó': 'o', 'Ś': 's', 'Ź': 'z', 'Ż': 'z',
}

// Slugify derives a URL-safe identifier from a display name: Polish
// diacritics stripped, lowercased, trimmed, internal whitespace runs
// collapsed to single hyphens. Deterministic for any input.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if folded, ok := polishFold[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(strings.ToLower(b.String())), "-")
}
