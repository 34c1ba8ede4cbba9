package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/strider/internal/cache"
	"github.com/roach88/strider/internal/harness"
	"github.com/roach88/strider/internal/planner"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	*RootOptions
	Database string

	// Tokens allows overriding the dispatch token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens planner.TokenGenerator
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan <workunit-dir> <scenario.yaml>",
		Short: "Plan scenario dispatches and persist kernel signatures",
		Long: `Run a dispatch scenario through the planner, persisting each kernel
signature to the SQLite cache at --db (created if missing).

A signature already present in the cache marks its plan as a cache hit.

Example:
  strider plan --db ./kernels.db ./workunits ./scenario.yaml`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite signature cache (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runPlan(opts *PlanOptions, dir, scenarioPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	c, err := cache.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeCache, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening signature cache", err)
	}
	defer c.Close()
	formatter.VerboseLog("Signature cache ready at %s", opts.Database)

	tokens := opts.Tokens
	if tokens == nil {
		tokens = planner.UUIDv7Generator{}
	}

	result, err := runScenario(formatter, dir, scenarioPath, harness.Options{
		Cache:  c,
		Tokens: tokens,
	})
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		if err := formatter.Success(result.Steps); err != nil {
			return err
		}
	} else {
		printPlans(formatter, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed with %d error(s)", result.Scenario, len(result.Errors)))
	}
	return nil
}

func printPlans(formatter *OutputFormatter, result *harness.Result) {
	hits := 0
	for i, step := range result.Steps {
		if step.ErrorCode != "" {
			fmt.Fprintf(formatter.Writer, "call %d: %s -> error %s\n", i, step.Kind, step.ErrorCode)
			continue
		}
		status := "cached"
		if step.CacheHit {
			status = "cache hit"
			hits++
		}
		fmt.Fprintf(formatter.Writer, "call %d: %s %s (%s) token=%s seq=%d [%s]\n",
			i, step.Kind, step.Workunit, step.PolicyKind, step.Token, step.Seq, status)
	}
	fmt.Fprintf(formatter.Writer, "%d plan(s), %d cache hit(s)\n", len(result.Steps), hits)
	for _, msg := range result.Errors {
		fmt.Fprintf(formatter.Writer, "FAIL %s\n", msg)
	}
}
