package engine

// DefaultMaxScanFactor bounds one rule pass at this many iterations per
// rune of the live word (plus one).
const DefaultMaxScanFactor = 16

// ScanQuota counts the iterations of one rule pass over one word.
//
// The limit follows the live word: a pass over a word that grows through
// epenthesis is allowed proportionally more iterations. Every iteration
// advances the scan position by at least one, so a well-formed pass stays
// far below the limit; the quota only trips if that guarantee is broken.
//
// A ScanQuota is used by a single pass and is not safe for concurrent use.
type ScanQuota struct {
	factor  int
	current int
}

// NewScanQuota creates a quota allowing factor iterations per rune.
// A non-positive factor selects DefaultMaxScanFactor.
func NewScanQuota(factor int) *ScanQuota {
	if factor <= 0 {
		factor = DefaultMaxScanFactor
	}
	return &ScanQuota{factor: factor}
}

// Check counts one iteration against a word of wordLen runes.
//
// Returns a SCAN_OVERRUN RuntimeError once the count exceeds the limit.
func (q *ScanQuota) Check(rule, word string, wordLen int) error {
	q.current++
	if limit := q.Limit(wordLen); q.current > limit {
		return NewScanOverrunError(rule, word, q.current, limit)
	}
	return nil
}

// Limit returns the iteration limit for a word of wordLen runes.
func (q *ScanQuota) Limit(wordLen int) int {
	return q.factor * (wordLen + 1)
}

// Current returns the iteration count so far.
func (q *ScanQuota) Current() int {
	return q.current
}
