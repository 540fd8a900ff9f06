package testutil

// RuleSet is the raw line content of one batch, independent of how it is
// run.
type RuleSet struct {
	Categories    []string
	Rules         []string
	Rewrites      []string
	Words         []string
	RewriteOutput bool
}

// LatinExample returns a small Latin to Portuguese rule set with its
// lexicon. Its expected output in format 0 is LatinExpected.
func LatinExample() RuleSet {
	return RuleSet{
		Categories: []string{
			"V=aeiou",
			"L=āēīōū",
			"C=ptcqbdgmnlrhs",
			"F=ie",
			"B=ou",
			"S=ptc",
			"Z=bdg",
		},
		Rules: []string{
			"[sm]//_#",
			"i/j/_V",
			"L/V/_",
			"e//Vr_#",
			"v//V_V",
			"u/o/_#",
			"gn/nh/_",
			"S/Z/V_V",
			"c/i/F_t",
			"c/u/B_t",
			"p//V_t",
			"ii/i/_",
			"e//C_rV",
		},
		Rewrites: []string{"lh|lj"},
		Words: []string{
			"lector",
			"doctor",
			"focus",
			"jocus",
			"districtus",
			"cīvitatem",
			"adoptare",
			"opera",
			"secundus",
			"fīliam",
			"pōntem",
		},
		RewriteOutput: true,
	}
}

// LatinExpected is the format-0 output of LatinExample, one line per word.
var LatinExpected = []string{
	"leitor",
	"doutor",
	"fogo",
	"jogo",
	"distrito",
	"cidade",
	"adotar",
	"obra",
	"segundo",
	"filha",
	"ponte",
}
