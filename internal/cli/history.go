package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/schyrsivochter/soundchange/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	RuleSet  string // filter by rule set hash
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Runs []store.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded with apply --save, newest first.

Examples:
  sca history
  sca history --db ./history.db --limit 5
  sca history --ruleset <hash> --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "history database path (default from config)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs (0 for all)")
	cmd.Flags().StringVar(&opts.RuleSet, "ruleset", "", "only runs of this rule set hash")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := openHistory(opts.RootOptions, cmd)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStore, err)
	}
	defer st.Close()

	ctx := cmd.Context()
	var runs []store.Run
	if opts.RuleSet != "" {
		runs, err = st.RunsWithRuleSet(ctx, opts.RuleSet)
		if err == nil && opts.Limit > 0 && len(runs) > opts.Limit {
			runs = runs[:opts.Limit]
		}
	} else {
		runs, err = st.ListRuns(ctx, opts.Limit)
	}
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStore, err)
	}

	if opts.Format == "json" {
		return formatter.Success(HistoryResult{Runs: runs})
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tRULESET\tWORDS\tCHANGED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), ruleSetLabel(r), r.Counts.Words, r.Counts.Changed)
	}
	return tw.Flush()
}

// openHistory opens the database named by the config, which already
// reflects a --db flag. An existing file is required.
func openHistory(opts *RootOptions, cmd *cobra.Command) (*store.Store, error) {
	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.Database); err != nil {
		return nil, fmt.Errorf("history database %s: %w", cfg.Database, err)
	}
	return store.Open(cfg.Database)
}

// ruleSetLabel is the rule set path when known, else a short hash.
func ruleSetLabel(r store.Run) string {
	if r.RuleSetPath != "" {
		return r.RuleSetPath
	}
	if len(r.RuleSetHash) > 12 {
		return r.RuleSetHash[:12]
	}
	return r.RuleSetHash
}
