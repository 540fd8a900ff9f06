package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/schyrsivochter/soundchange/internal/compiler"
	"github.com/schyrsivochter/soundchange/internal/engine"
	"github.com/schyrsivochter/soundchange/internal/ir"
	"github.com/schyrsivochter/soundchange/internal/pipeline"
	"github.com/schyrsivochter/soundchange/internal/store"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	OutFormat     int
	Template      string
	RewriteOutput bool
	Workers       int
	MaxScanFactor int
	Normalize     bool
	Output        string // output file; stdout when empty
	Save          bool   // record the run in the history database
	Database      string
}

// ApplyResult is the JSON payload of the apply command.
type ApplyResult struct {
	Lines  []string        `json:"lines"`
	Counts pipeline.Result `json:"counts"`
	RunID  string          `json:"run_id,omitempty"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply <ruleset> <lexicon>",
		Short: "Apply a rule set to a lexicon",
		Long: `Apply every sound change rule to every word of a lexicon, in order.

Prints one line per lexicon line. Output formats:
  0  {outw}{gloss}
  1  {inw} → {outw}{gloss}
  2  {outw}{gloss} [{inw}]
--template takes a custom template with the same fields; {{ and }}
produce literal braces.

Examples:
  sca apply latin.sc latin.lex
  sca apply latin.sc latin.lex --out-format 1 --rewrite-output
  sca apply latin.yaml latin.lex --template "{inw}: {outw}" -o out.lex
  sca apply latin.sc latin.lex --save --db ./history.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], args[1], cmd)
		},
	}

	defaults := pipeline.DefaultOptions()
	cmd.Flags().IntVar(&opts.OutFormat, "out-format", defaults.OutFormat, "output format preset (0|1|2)")
	cmd.Flags().StringVar(&opts.Template, "template", "", "custom output template using {inw}, {outw}, {gloss}")
	cmd.Flags().BoolVar(&opts.RewriteOutput, "rewrite-output", false, "reverse rewrites on the output word")
	cmd.Flags().IntVar(&opts.Workers, "workers", defaults.Workers, "words transduced in parallel")
	cmd.Flags().IntVar(&opts.MaxScanFactor, "max-scan-factor", defaults.MaxScanFactor, "scan steps allowed per rule per word length")
	cmd.Flags().BoolVar(&opts.Normalize, "normalize", defaults.Normalize, "normalise input to Unicode NFC")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write output lines to a file")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "record the run in the history database")
	cmd.Flags().StringVar(&opts.Database, "db", "", "history database path (default from config)")

	return cmd
}

func runApply(opts *ApplyOptions, ruleSetPath, lexiconPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger()

	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return err
	}

	rs, err := LoadRuleSet(ruleSetPath)
	if err != nil {
		return reportError(formatter, err)
	}
	words, err := LoadLexicon(lexiconPath)
	if err != nil {
		return reportError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d categories, %d rewrites, %d rules and %d words",
		len(rs.Categories), len(rs.Rewrites), len(rs.Rules), len(words))

	pipeOpts := cfg.PipelineOptions()
	pipeOpts.Logger = logger

	sink := &pipeline.SliceSink{}
	counts, err := pipeline.Run(cmd.Context(), rs.Input(words), pipeOpts, sink)
	if err != nil {
		return reportError(formatter, err)
	}
	lines := sink.Lines()
	logger.Info("batch applied", "words", counts.Words, "changed", counts.Changed)

	if opts.Output != "" {
		if err := writeLines(opts.Output, lines); err != nil {
			return formatter.fail(ExitCommandError, ErrCodeWriteFailed, err)
		}
		formatter.VerboseLog("Wrote %d lines to %s", len(lines), opts.Output)
	}

	result := ApplyResult{Lines: lines, Counts: counts}
	if opts.Save {
		run, err := recordRun(cmd, cfg.Database, ruleSetPath, lexiconPath, rs, words, pipeOpts, counts, lines)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeStore, err)
		}
		result.RunID = run.ID
		logger.Info("run recorded", "id", run.ID, "db", cfg.Database)
	}

	if opts.Format == "json" {
		return formatter.JSON(CLIResponse{Status: "ok", Data: result, RunID: result.RunID})
	}
	if opts.Output == "" {
		return printLines(cmd.OutOrStdout(), lines)
	}
	return nil
}

// recordRun stores the run with a fresh UUIDv7 ID.
func recordRun(cmd *cobra.Command, dbPath, ruleSetPath, lexiconPath string, rs *RuleSet, words []string,
	opts pipeline.Options, counts pipeline.Result, lines []string) (store.Run, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return store.Run{}, err
	}
	defer st.Close()

	outputs, err := store.OutputsFromLines(words, lines)
	if err != nil {
		return store.Run{}, err
	}
	run := store.Run{
		RuleSetPath:         ruleSetPath,
		LexiconPath:         lexiconPath,
		RuleSetHash:         ir.RuleSetHash(rs.Categories, rs.Rewrites, rs.Rules),
		LexiconHash:         ir.LexiconHash(words),
		EngineVersion:       ir.EngineVersion,
		RuleLanguageVersion: ir.RuleLanguageVersion,
		Options: store.RunOptions{
			OutFormat:     opts.OutFormat,
			Template:      opts.Template,
			RewriteOutput: opts.RewriteOutput,
			Normalize:     opts.Normalize,
		},
		Counts: store.RunCounts(counts),
	}
	return store.NewRecorder(st, nil, nil).Record(cmd.Context(), run, outputs)
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := printLines(f, lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printLines(w io.Writer, lines []string) error {
	sink := pipeline.NewWriterSink(w)
	for _, line := range lines {
		if err := sink.WriteLine(line); err != nil {
			return err
		}
	}
	return sink.Flush()
}

// reportError reports err with the code of its taxonomy. Load and
// configuration problems exit with ExitCommandError; rule-set and engine
// errors with ExitFailure.
func reportError(f *OutputFormatter, err error) error {
	var (
		le  *LoadError
		rse *compiler.RuleSetError
		rte *engine.RuntimeError
	)
	switch {
	case errors.As(err, &le):
		return f.fail(ExitCommandError, le.Code, err)
	case errors.As(err, &rse):
		_ = f.Error(rse.Code, fmt.Sprintf("%s line %d: %s", section(rse.Code), rse.Line, rse.Reason), rse)
		return WrapExitError(ExitFailure, rse.Code, err)
	case errors.As(err, &rte):
		return f.fail(ExitFailure, string(rte.Code), err)
	default:
		return f.fail(ExitCommandError, ErrCodeGeneric, err)
	}
}

// section names the part of a rule set a rule-set error code refers to.
func section(code string) string {
	switch code {
	case compiler.ErrCategorySeparator, compiler.ErrCategoryID:
		return "category"
	case compiler.ErrRewriteSeparator:
		return "rewrite"
	default:
		return "rule"
	}
}
