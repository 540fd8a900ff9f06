// Package harness runs conformance scenarios for sound change rule sets.
//
// A scenario bundles categories, rewrites, rules and words with the output
// they must produce. The harness runs the batch pipeline, records the run
// in an in-memory history store and evaluates the scenario's expectations
// against the result.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: latin_portuguese
//	description: "Latin to Portuguese"
//	categories: ["V=aeiou", "C=ptk"]
//	rewrites: ["lh|lj"]
//	rules: ["i/j/_V"]
//	words: ["iocus"]
//	out_format: 0
//	template: ""
//	rewrite_output: true
//	expect: ["jocus"]
//	assertions:
//	  - type: output_contains
//	    line: jocus
//	  - type: rule_applies
//	    word: iocus
//	    rule: i/j/_V
//
// Unknown fields are rejected so typos fail loudly.
//
// # Assertion Types
//
//   - output_contains: some output line equals line
//   - output_order: lines appear in the output in this order
//   - changed_count: exactly count words were changed by some rule
//   - rule_applies: rule changes word (applies: false inverts)
//   - stored_output: the recorded run holds line at seq
//
// # Deterministic Testing
//
// Runs are recorded with testutil.SequenceIDGenerator and
// testutil.DeterministicClock and processed by a single worker, so golden
// snapshots are identical across runs.
package harness
