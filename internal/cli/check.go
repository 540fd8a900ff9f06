package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schyrsivochter/soundchange/internal/compiler"
)

// CheckResult holds check results.
type CheckResult struct {
	Valid      bool                     `json:"valid"`
	Categories int                      `json:"categories"`
	Rewrites   int                      `json:"rewrites"`
	Rules      int                      `json:"rules"`
	Errors     []*compiler.RuleSetError `json:"errors,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <ruleset>",
		Short: "Check a rule set without applying it",
		Long: `Parse and compile every category, rewrite and rule of a rule set.

Unlike apply, which stops at the first problem, check reports every
rule-set error with its line and code.

Exit codes:
  0 - Rule set valid
  1 - Rule-set errors found
  2 - Command error (file not found, unreadable format)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // We handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	rs, err := LoadRuleSet(path)
	if err != nil {
		return reportError(formatter, err)
	}
	formatter.VerboseLog("Checking %d categories, %d rewrites and %d rules from %s",
		len(rs.Categories), len(rs.Rewrites), len(rs.Rules), path)

	result := CheckResult{
		Categories: len(rs.Categories),
		Rewrites:   len(rs.Rewrites),
		Rules:      len(rs.Rules),
		Errors:     compiler.Check(rs.Categories, rs.Rewrites, rs.Rules),
	}
	result.Valid = len(result.Errors) == 0

	if result.Valid {
		return outputCheckSuccess(formatter, result)
	}
	return outputCheckErrors(formatter, result)
}

// outputCheckSuccess outputs a valid result.
func outputCheckSuccess(formatter *OutputFormatter, result CheckResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Rule set valid (%d categories, %d rewrites, %d rules)\n",
		result.Categories, result.Rewrites, result.Rules)
	return nil
}

// outputCheckErrors outputs every rule-set error.
func outputCheckErrors(formatter *OutputFormatter, result CheckResult) error {
	errs := result.Errors
	failure := NewExitError(ExitFailure, fmt.Sprintf("check failed with %d error(s)", len(errs)))

	if formatter.Format == "json" {
		if err := formatter.JSON(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Reason,
			},
		}); err != nil {
			return err
		}
		return failure
	}

	fmt.Fprintln(formatter.Writer, "✗ Check failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "%s line %d: %s\n", section(e.Code), e.Line, e.Text)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", e.Code, e.Reason)
	}
	return failure
}
