// Package engine applies compiled sound change rules to words.
//
// Three layers, leaves first:
//
//	Resolve      matched target text -> replacement text (replace.go)
//	Executor     one rule, one word, one left-to-right pass (executor.go)
//	Transducer   every rule in order over one word (transducer.go)
//
// Words are scanned as rune slices, padded with a boundary space on each
// side by the caller. A rule never rewrites text it produced earlier in
// the same pass, and the leading pad is never a target site.
//
// Each pass is bounded by a ScanQuota. Exceeding it is reported as a
// RuntimeError with code SCAN_OVERRUN, separate from the rule-set errors
// raised by the compiler.
//
// Everything here is synchronous. An Executor and a Transducer hold only
// immutable state once built and may be shared between goroutines.
package engine
