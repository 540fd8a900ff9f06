package ir

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content hashes.
// Version suffix enables future algorithm migration.
const (
	DomainRuleSet = "sca/ruleset/v1"
	DomainLexicon = "sca/lexicon/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + block + 0x00 + line + 0x0a + ...)
//
// Every line is NFC-normalised first so that precomposed and decomposed
// spellings of the same input hash identically.
func hashWithDomain(domain string, blocks ...[]string) string {
	h := sha256.New()
	h.Write([]byte(domain))
	for _, block := range blocks {
		h.Write([]byte{0x00})
		for _, line := range block {
			h.Write([]byte(norm.NFC.String(line)))
			h.Write([]byte{'\n'})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// RuleSetHash identifies a rule set by its raw category, rewrite and rule lines.
// Block boundaries are part of the hash: moving a line between blocks changes it.
func RuleSetHash(categories, rewrites, rules []string) string {
	return hashWithDomain(DomainRuleSet, categories, rewrites, rules)
}

// LexiconHash identifies a lexicon by its raw word lines.
func LexiconHash(words []string) string {
	return hashWithDomain(DomainLexicon, words)
}
