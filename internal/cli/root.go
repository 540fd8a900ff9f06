package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/schyrsivochter/soundchange/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Config is resolved once per invocation; see resolveConfig.
	Config *config.Config
	Logger *slog.Logger
}

// NewRootCommand creates the root command for the sca CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sca",
		Short: "sca - sound change applier",
		Long: `Apply ordered sound change rules to a lexicon.

Rule sets are .sc files (categories, rewrites and rules, one per line),
or YAML and CUE documents with categories, rewrites and rules lists.
Settings are read from sca.yaml, SCA_ environment variables and flags,
in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolveConfig(cmd)
			if err != nil {
				return err
			}
			opts.Format = cfg.Format
			opts.Verbose = cfg.Verbose
			opts.Logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			opts.logger().Debug("configuration resolved",
				"file", cfg.FileUsed,
				"format", cfg.Format,
				"workers", cfg.Workers,
			)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: ./sca.yaml if present)")

	// Add subcommands
	cmd.AddCommand(NewApplyCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

// resolveConfig loads the layered configuration on first use. Only flags
// the user set on cmd take part.
func (o *RootOptions) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	if o.Config != nil {
		return o.Config, nil
	}
	cfg, err := config.Load(o.ConfigFile, cmd.Flags())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	o.Config = cfg
	return cfg, nil
}

// logger returns the command logger, discarding when none is installed.
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// newLogger creates the text logger installed on stderr.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
