package ir

// Rule language markers.
//
// The boundary marker '#' never reaches the matcher: words are padded with
// Boundary on both sides and '#' compiles to a literal Boundary.
const (
	BoundaryMarker   = '#'
	Boundary         = ' '
	Anchor           = '_'
	Gemination       = '\u00b2' // ²
	Metathesis       = `\\`
	CommentPrefix    = '*'
	Arrow            = '\u2192' // →
	FieldSeparator   = '/'
	RewriteSeparator = '|'
	CategorySep      = '='
	GlossMarker      = '\u2023' // ‣
)
