// Package ir provides the shared data types of the sound change applier.
//
// This package contains type definitions and small pure helpers only. All
// other internal packages import ir; ir imports nothing internal. This keeps
// the category registry, rules and words the foundational layer with no
// circular dependencies.
//
// Key design constraints:
//   - Category identifiers are single runes, never multi-byte strings
//   - Everything is built fresh per batch and immutable afterwards
//   - Words are handled as rune slices wherever offsets matter
//   - All JSON tags use snake_case
package ir
