// Package store keeps a SQLite history of batch runs.
//
// Each run records where its rule set and lexicon came from, their content
// hashes (see ir.RuleSetHash and ir.LexiconHash), the engine and rule
// language versions, the formatting options and one row per output line.
// Two runs with equal hashes and options are expected to produce identical
// outputs.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Listings are ordered by started_at DESC, id DESC so that runs recorded
// within the same second still come out in a stable order.
package store
