package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/strider/internal/harness"
)

// NewAnnotateCommand creates the annotate command.
func NewAnnotateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate <workunit-dir> <scenario.yaml>",
		Short: "Infer annotations for scenario dispatches",
		Long: `Run a dispatch scenario and print the annotations each call infers.

Workunit declarations come from the CUE files in <workunit-dir>; the
scenario may declare additional workunits inline. Nothing is persisted:
every run analyzes against a fresh in-memory signature cache.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runAnnotate(opts *RootOptions, dir, scenarioPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, err := runScenario(formatter, dir, scenarioPath, harness.Options{})
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		if err := formatter.Success(result.Steps); err != nil {
			return err
		}
	} else {
		printAnnotations(formatter, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed with %d error(s)", result.Scenario, len(result.Errors)))
	}
	return nil
}

// runScenario loads workunit declarations and a scenario, then executes it.
// Shared by annotate and plan.
func runScenario(formatter *OutputFormatter, dir, scenarioPath string, opts harness.Options) (*harness.Result, error) {
	loadResult, loadErrors := LoadWorkunits(dir, LoadModeFailFast)
	if len(loadErrors) > 0 {
		_ = formatter.Error(ErrCodeCompileFailed, loadErrors[0].Error(), nil)
		return nil, NewExitError(ExitCommandError, loadErrors[0].Error())
	}
	formatter.VerboseLog("Loaded %d workunit(s) from %s", len(loadResult.Workunits), dir)

	reg, err := loadResult.Registry()
	if err != nil {
		_ = formatter.Error(ErrCodeCompileFailed, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "building workunit registry", err)
	}
	opts.Registry = reg

	scenario, err := harness.LoadScenario(scenarioPath)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "loading scenario", err)
	}
	formatter.VerboseLog("Running scenario %s (%d calls)", scenario.Name, len(scenario.Calls))

	result, err := harness.RunWith(context.Background(), scenario, opts)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "running scenario", err)
	}
	return result, nil
}

func printAnnotations(formatter *OutputFormatter, result *harness.Result) {
	for i, step := range result.Steps {
		if step.ErrorCode != "" {
			fmt.Fprintf(formatter.Writer, "call %d: %s -> error %s\n", i, step.Kind, step.ErrorCode)
			continue
		}
		fmt.Fprintf(formatter.Writer, "call %d: %s %s (%s)\n", i, step.Kind, step.Workunit, step.PolicyKind)

		params := make([]string, 0, len(step.Annotations))
		for param := range step.Annotations {
			params = append(params, param)
		}
		sort.Strings(params)
		for _, param := range params {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", param, step.Annotations[param])
		}
	}
	for _, msg := range result.Errors {
		fmt.Fprintf(formatter.Writer, "FAIL %s\n", msg)
	}
}
