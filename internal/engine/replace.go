package engine

import (
	"github.com/schyrsivochter/soundchange/internal/ir"
)

// Resolve computes the text that replaces matched, the target text found
// by rule.
//
//   - A metathesis replacement yields matched reversed.
//   - An empty target (epenthesis) yields the replacement verbatim.
//   - Otherwise the replacement is walked rune by rune. When the target
//     starts with a category, category identifiers in the replacement take
//     the member at the position matched[0] holds in that source category;
//     a destination category too short for that position contributes
//     nothing. The gemination marker repeats the last rune written so far.
func Resolve(matched []rune, rule ir.Rule, reg *ir.Registry) []rune {
	if rule.IsMetathesis() {
		out := make([]rune, len(matched))
		for i, r := range matched {
			out[len(matched)-1-i] = r
		}
		return out
	}
	if rule.IsEpenthesis() {
		return []rune(rule.Replacement)
	}

	index, correspond := -1, false
	if first := []rune(rule.Target)[0]; reg.Has(first) {
		correspond = true
		if len(matched) > 0 {
			index = reg.IndexOf(first, matched[0])
		}
	}

	var out []rune
	for _, r := range rule.Replacement {
		switch {
		case correspond && reg.Has(r):
			members, _ := reg.Lookup(r)
			if index >= 0 && index < len(members) {
				out = append(out, members[index])
			}
		case r == ir.Gemination:
			if len(out) > 0 {
				out = append(out, out[len(out)-1])
			}
		default:
			out = append(out, r)
		}
	}
	return out
}
