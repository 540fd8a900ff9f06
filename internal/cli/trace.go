package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schyrsivochter/soundchange/internal/engine"
	"github.com/schyrsivochter/soundchange/internal/ir"
	"github.com/schyrsivochter/soundchange/internal/pipeline"
)

// TraceResult holds the trace of one word.
type TraceResult struct {
	Word   string        `json:"word"`
	Steps  []engine.Step `json:"steps"`
	Output string        `json:"output"`
	Stats  TraceStats    `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	Rules   int `json:"rules"`
	Changed int `json:"changed"` // rules that changed the word
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <ruleset> <word>",
		Short: "Show which rules change a word",
		Long: `Apply a rule set to a single word and list every rule that changed it,
with the word before and after that rule.

Output settings (--out-format, --template, --rewrite-output) come from
the configuration and shape the final line.

Examples:
  sca trace latin.sc fīliam
  sca trace latin.sc "lector ‣ reader" --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runTrace(opts *RootOptions, ruleSetPath, word string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return err
	}

	rs, err := LoadRuleSet(ruleSetPath)
	if err != nil {
		return reportError(formatter, err)
	}

	pipeOpts := cfg.PipelineOptions()
	pipeOpts.Logger = opts.logger()
	batch, err := pipeline.Prepare(rs.Input(nil), pipeOpts)
	if err != nil {
		return reportError(formatter, err)
	}

	w := ir.ParseWord(word)
	steps, err := batch.Trace(w.Text)
	if err != nil {
		return reportError(formatter, err)
	}
	line, err := batch.Process(word)
	if err != nil {
		return reportError(formatter, err)
	}

	result := TraceResult{
		Word:   word,
		Steps:  steps,
		Output: line.Output,
		Stats: TraceStats{
			Rules:   len(batch.Rules()),
			Changed: len(steps),
		},
	}
	if result.Steps == nil {
		result.Steps = []engine.Step{}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return outputTraceText(formatter, result)
}

// outputTraceText prints one line per changing rule.
func outputTraceText(formatter *OutputFormatter, result TraceResult) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Trace: %s\n", result.Word)
	fmt.Fprintln(w, strings.Repeat("=", 40))

	if len(result.Steps) == 0 {
		fmt.Fprintln(w, "No rule changed the word.")
	}

	width := 0
	for _, s := range result.Steps {
		width = max(width, len([]rune(s.Rule.Raw)))
	}
	for _, s := range result.Steps {
		pad := strings.Repeat(" ", width-len([]rune(s.Rule.Raw)))
		fmt.Fprintf(w, "%4d  %s%s  %s → %s\n",
			s.Rule.Line, s.Rule.Raw, pad, ir.Unpad(s.Before), ir.Unpad(s.After))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Output: %s\n", result.Output)
	fmt.Fprintf(w, "Stats: %d of %d rules changed the word\n", result.Stats.Changed, result.Stats.Rules)
	return nil
}
