// Package pipeline runs a whole batch: rewrite, parse, compile, transduce
// every word line and format one output line per input line.
//
// Prepare does everything that does not depend on the words and fails on
// the first rule-set error, before any word is touched. Run then feeds the
// word lines through a bounded worker pool and writes the formatted lines
// to a Sink in input order.
package pipeline
