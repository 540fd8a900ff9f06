package compiler

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/schyrsivochter/soundchange/internal/ir"
)

// Pattern is the compiled form of one before/target/after triple.
//
// Three regexps are kept: the full concatenation, and before and target
// each followed by a lookahead that pins the remaining sections to the end
// of the matched text. After the full pattern matches, re-matching before
// and then target on the matched substring recovers where the target lies,
// without counting capture groups across brackets, categories, optional
// groups and gemination.
//
// A Pattern is safe for concurrent use.
type Pattern struct {
	// Regexp sources per section, kept for tracing and tests.
	Before string
	Target string
	After  string

	full   *regexp2.Regexp
	before *regexp2.Regexp
	target *regexp2.Regexp
}

// Span locates a match within the rune slice passed to Match.
// All offsets are relative to the start of that slice.
type Span struct {
	Length      int // runes consumed by before+target+after
	TargetStart int
	TargetEnd   int
}

// CompilePattern compiles one target with the before/after halves of an
// environment.
func CompilePattern(target, before, after string, reg *ir.Registry) (*Pattern, error) {
	bef, err := compileExpr(before, reg, "b")
	if err != nil {
		return nil, err
	}
	tgt, err := compileExpr(target, reg, "t")
	if err != nil {
		return nil, err
	}
	aft, err := compileExpr(after, reg, "a")
	if err != nil {
		return nil, err
	}

	p := &Pattern{Before: bef, Target: tgt, After: aft}
	sources := []struct {
		dst **regexp2.Regexp
		src string
	}{
		{&p.full, fmt.Sprintf(`^(?:%s)(?:%s)(?:%s)`, bef, tgt, aft)},
		{&p.before, fmt.Sprintf(`^(?:%s)(?=(?:%s)(?:%s)\z)`, bef, tgt, aft)},
		{&p.target, fmt.Sprintf(`^(?:%s)(?=(?:%s)\z)`, tgt, aft)},
	}
	for _, s := range sources {
		re, err := regexp2.Compile(s.src, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", s.src, err)
		}
		*s.dst = re
	}
	return p, nil
}

// Match tries the pattern anchored at the start of word.
// Returns ok=false when the pattern does not match there.
func (p *Pattern) Match(word []rune) (Span, bool, error) {
	m, err := p.full.FindRunesMatch(word)
	if err != nil {
		return Span{}, false, err
	}
	if m == nil {
		return Span{}, false, nil
	}
	matched := word[:m.Length]

	bm, err := p.before.FindRunesMatch(matched)
	if err != nil {
		return Span{}, false, err
	}
	if bm == nil {
		return Span{}, false, fmt.Errorf("before-context not recoverable in %q", string(matched))
	}
	start := bm.Length

	tm, err := p.target.FindRunesMatch(matched[start:])
	if err != nil {
		return Span{}, false, err
	}
	if tm == nil {
		return Span{}, false, fmt.Errorf("target not recoverable in %q at %d", string(matched), start)
	}

	return Span{
		Length:      m.Length,
		TargetStart: start,
		TargetEnd:   start + tm.Length,
	}, true, nil
}

// exprCompiler turns one rule-language expression into regexp2 source.
type exprCompiler struct {
	src    []rune
	pos    int
	reg    *ir.Registry
	prefix string // keeps group names unique across before/target/after
	groups int
}

// compileExpr compiles one rule-language expression.
//
//	#        boundary (a literal Boundary)
//	[abc]    exactly one of the listed symbols
//	(...)    optional sub-expression
//	V        one member of category V
//	x²       x followed by the same text x matched
//	other    literal, regexp metacharacters included
func compileExpr(expr string, reg *ir.Registry, prefix string) (string, error) {
	c := &exprCompiler{src: []rune(expr), reg: reg, prefix: prefix}
	atoms, err := c.sequence(0)
	if err != nil {
		return "", err
	}
	return strings.Join(atoms, ""), nil
}

// sequence compiles atoms until closer (or end of input when closer is 0).
func (c *exprCompiler) sequence(closer rune) ([]string, error) {
	var atoms []string
	for c.pos < len(c.src) {
		r := c.src[c.pos]
		switch {
		case closer != 0 && r == closer:
			c.pos++
			return atoms, nil
		case r == ir.BoundaryMarker:
			atoms = append(atoms, literal(ir.Boundary))
			c.pos++
		case r == '[':
			atom, err := c.brackets()
			if err != nil {
				return nil, err
			}
			atoms = append(atoms, atom)
		case r == '(':
			c.pos++
			inner, err := c.sequence(')')
			if err != nil {
				return nil, err
			}
			atoms = append(atoms, "(?:"+strings.Join(inner, "")+")?")
		case r == ')' || r == ']':
			return nil, c.errorAt(c.pos, fmt.Sprintf("unexpected %q", r))
		case c.reg.Has(r):
			members, _ := c.reg.Lookup(r)
			atoms = append(atoms, category(members))
			c.pos++
		case r == ir.Gemination:
			if len(atoms) == 0 {
				return nil, c.errorAt(c.pos, "gemination marker must follow a symbol")
			}
			c.groups++
			name := fmt.Sprintf("g%s%d", c.prefix, c.groups)
			atoms[len(atoms)-1] = "(?<" + name + ">" + atoms[len(atoms)-1] + ")"
			atoms = append(atoms, `\k<`+name+`>`)
			c.pos++
		default:
			atoms = append(atoms, literal(r))
			c.pos++
		}
	}
	if closer != 0 {
		return nil, c.errorAt(len(c.src), "unclosed optional group")
	}
	return atoms, nil
}

// brackets compiles "[...]" starting at the opening bracket.
func (c *exprCompiler) brackets() (string, error) {
	open := c.pos
	c.pos++
	var alts []string
	for c.pos < len(c.src) {
		r := c.src[c.pos]
		switch {
		case r == ']':
			c.pos++
			if len(alts) == 0 {
				return "", c.errorAt(open, "empty alternation")
			}
			return "(?:" + strings.Join(alts, "|") + ")", nil
		case r == '[' || r == '(' || r == ')' || r == ir.Gemination:
			return "", c.errorAt(c.pos, fmt.Sprintf("%q not allowed inside brackets", r))
		case r == ir.BoundaryMarker:
			alts = append(alts, literal(ir.Boundary))
		case c.reg.Has(r):
			members, _ := c.reg.Lookup(r)
			alts = append(alts, category(members))
		default:
			alts = append(alts, literal(r))
		}
		c.pos++
	}
	return "", c.errorAt(open, "unclosed bracket")
}

func (c *exprCompiler) errorAt(offset int, reason string) *PatternError {
	return &PatternError{Expr: string(c.src), Offset: offset, Reason: reason}
}

// literal matches r and nothing else.
func literal(r rune) string {
	return regexp2.Escape(string(r))
}

// category matches exactly one member. An empty category never matches.
func category(members []rune) string {
	if len(members) == 0 {
		return "(?!)"
	}
	alts := make([]string, len(members))
	for i, m := range members {
		alts[i] = literal(m)
	}
	return "(?:" + strings.Join(alts, "|") + ")"
}
