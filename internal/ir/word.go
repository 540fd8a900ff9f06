package ir

import "strings"

// ParseWord splits a lexicon line on the first GlossMarker.
//
// The gloss keeps its marker and gains a leading space so that output
// templates can place it directly after the transduced word:
//
//	ParseWord("acy ‣ asu") // Word{Text: "acy ", Gloss: " ‣ asu"}
func ParseWord(line string) Word {
	text, rest, found := strings.Cut(line, string(GlossMarker))
	if !found {
		return Word{Text: line}
	}
	return Word{Text: text, Gloss: " " + string(GlossMarker) + rest}
}

// Pad trims surrounding whitespace and adds one Boundary on each side,
// so that boundary-anchored patterns match via ordinary substring rules.
func Pad(s string) string {
	return string(Boundary) + strings.TrimSpace(s) + string(Boundary)
}

// Unpad removes the boundary padding (and any other surrounding whitespace).
func Unpad(s string) string {
	return strings.TrimSpace(s)
}
