package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/strider/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool                       `json:"valid"`
	Workunits int                        `json:"workunits"`
	Errors    []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <workunit-dir>",
		Short: "Validate CUE workunit declarations",
		Long: `Validate CUE workunit declarations without running any dispatch.

Checks declaration structure (every workunit needs a params list, every
param a name) and that declared type tags are ones the kernel front end
understands (int, float, bool, str, TeamMember, Acc:float, View2D:float64
and friends).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadWorkunits(dir, LoadModeCollectAll)

	// Handle hard load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Error())
		}
		_ = formatter.Error(ErrCodeGeneric, loadErrors[0].Error(), nil)
		return NewExitError(ExitCommandError, loadErrors[0].Error())
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, dir)

	var validationErrors []compiler.ValidationError
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			validationErrors = append(validationErrors, compiler.ValidationError{
				Field:   "load",
				Message: loadErr.Message,
				Code:    loadErr.Code,
				Line:    lineOf(loadErr),
			})
		}
	}
	for _, spec := range loadResult.Workunits {
		formatter.VerboseLog("Validating workunit: %s", spec.Name)
		validationErrors = append(validationErrors, compiler.Validate(spec)...)
	}

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, loadResult, validationErrors)
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Workunits: len(loadResult.Workunits)})
	}
	return formatter.Success(fmt.Sprintf("✓ All workunits valid (%d checked)", len(loadResult.Workunits)))
}

func outputValidationErrors(formatter *OutputFormatter, loadResult *LoadResult, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		_ = formatter.Error(errs[0].Code, "validation failed", ValidationResult{
			Valid:     false,
			Workunits: len(loadResult.Workunits),
			Errors:    errs,
		})
	} else {
		for _, e := range errs {
			fmt.Fprintln(formatter.Writer, e.Error())
		}
		fmt.Fprintf(formatter.Writer, "%d validation error(s)\n", len(errs))
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

func lineOf(err *LoadError) int {
	if err.Pos.IsValid() {
		return err.Pos.Line()
	}
	return 0
}
