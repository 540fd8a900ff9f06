package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schyrsivochter/soundchange/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
	Lines    bool // print only the output lines
}

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	Run     store.Run      `json:"run"`
	Outputs []store.Output `json:"outputs"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a recorded run",
		Long: `Show the settings and output of a run recorded with apply --save.

With --lines only the output lines are printed, as apply printed them.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "history database path (default from config)")
	cmd.Flags().BoolVar(&opts.Lines, "lines", false, "print only the output lines")

	return cmd
}

func runShow(opts *ShowOptions, id string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := openHistory(opts.RootOptions, cmd)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStore, err)
	}
	defer st.Close()

	run, outputs, err := st.ReadRun(cmd.Context(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, err)
	}
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStore, err)
	}

	if opts.Format == "json" {
		return formatter.JSON(CLIResponse{
			Status: "ok",
			Data:   ShowResult{Run: run, Outputs: outputs},
			RunID:  run.ID,
		})
	}

	lines := make([]string, len(outputs))
	for i, o := range outputs {
		lines[i] = o.Line
	}
	if opts.Lines {
		return printLines(cmd.OutOrStdout(), lines)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run:      %s\n", run.ID)
	fmt.Fprintf(w, "Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05 MST"))
	if run.RuleSetPath != "" {
		fmt.Fprintf(w, "Rule set: %s\n", run.RuleSetPath)
	}
	if run.LexiconPath != "" {
		fmt.Fprintf(w, "Lexicon:  %s\n", run.LexiconPath)
	}
	fmt.Fprintf(w, "Hashes:   %s %s\n", run.RuleSetHash, run.LexiconHash)
	fmt.Fprintf(w, "Engine:   %s (rule language %s)\n", run.EngineVersion, run.RuleLanguageVersion)
	fmt.Fprintf(w, "Options:  format %d, template %q, rewrite output %t, NFC %t\n",
		run.Options.OutFormat, run.Options.Template, run.Options.RewriteOutput, run.Options.Normalize)
	fmt.Fprintf(w, "Counts:   %d categories, %d rewrites, %d rules, %d words, %d changed\n",
		run.Counts.Categories, run.Counts.Rewrites, run.Counts.Rules, run.Counts.Words, run.Counts.Changed)
	fmt.Fprintln(w)
	return printLines(w, lines)
}
