package ir

// Version constants recorded with every stored run.
const (
	// RuleLanguageVersion is the version of the rule pattern language.
	RuleLanguageVersion = "2"

	// EngineVersion is the sound change engine version.
	EngineVersion = "0.1.0"
)
