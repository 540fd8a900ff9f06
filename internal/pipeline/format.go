package pipeline

import (
	"fmt"
	"strings"
)

// Preset output formats.
const (
	FormatOutput        = 0 // {outw}{gloss}
	FormatArrow         = 1 // {inw} → {outw}{gloss}
	FormatOutputBracket = 2 // {outw}{gloss} [{inw}]
)

var presets = []string{
	"{outw}{gloss}",
	"{inw} → {outw}{gloss}",
	"{outw}{gloss} [{inw}]",
}

// Template field names.
const (
	FieldInput  = "inw"
	FieldOutput = "outw"
	FieldGloss  = "gloss"
)

// Template is a parsed output template.
//
// Placeholders are {inw}, {outw} and {gloss}; "{{" and "}}" stand for
// literal braces.
type Template struct {
	source   string
	segments []segment
}

type segment struct {
	text  string
	field string // empty for literal text
}

// PresetTemplate returns preset n (0, 1 or 2).
func PresetTemplate(n int) (*Template, error) {
	if n < 0 || n >= len(presets) {
		return nil, fmt.Errorf("unknown output format %d (want 0, 1 or 2)", n)
	}
	return ParseTemplate(presets[n])
}

// ParseTemplate parses a custom output template.
func ParseTemplate(src string) (*Template, error) {
	t := &Template{source: src}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(src[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("template %q: unclosed '{' at byte %d", src, i)
			}
			name := src[i+1 : i+1+end]
			switch name {
			case FieldInput, FieldOutput, FieldGloss:
			default:
				return nil, fmt.Errorf("template %q: unknown field {%s}", src, name)
			}
			flush()
			t.segments = append(t.segments, segment{field: name})
			i += end + 1
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("template %q: single '}' at byte %d", src, i)
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return t, nil
}

// Execute fills the template.
func (t *Template) Execute(inw, outw, gloss string) string {
	var b strings.Builder
	for _, s := range t.segments {
		switch s.field {
		case FieldInput:
			b.WriteString(inw)
		case FieldOutput:
			b.WriteString(outw)
		case FieldGloss:
			b.WriteString(gloss)
		default:
			b.WriteString(s.text)
		}
	}
	return b.String()
}

// String returns the template source.
func (t *Template) String() string {
	return t.source
}
