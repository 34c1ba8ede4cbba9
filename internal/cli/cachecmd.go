package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/strider/internal/cache"
)

// CacheOptions holds flags for the cache subcommands.
type CacheOptions struct {
	*RootOptions
	Database string
}

// NewCacheCommand creates the cache command group.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CacheOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the kernel signature cache",
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite signature cache (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newCacheListCommand(opts))
	cmd.AddCommand(newCacheCountCommand(opts))

	return cmd
}

func newCacheListCommand(opts *CacheOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List cached kernel signatures in insertion order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheList(opts, cmd)
		},
	}
}

func newCacheCountCommand(opts *CacheOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "count",
		Short:         "Count cached kernel signatures",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheCount(opts, cmd)
		},
	}
}

// openCache opens an existing signature cache, refusing to create one as a
// side effect of inspection.
func openCache(opts *CacheOptions, formatter *OutputFormatter) (*cache.Cache, error) {
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		msg := fmt.Sprintf("signature cache not found: %s", opts.Database)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return nil, NewExitError(ExitCommandError, msg)
	}

	c, err := cache.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeCache, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "opening signature cache", err)
	}
	return c, nil
}

func runCacheList(opts *CacheOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	c, err := openCache(opts, formatter)
	if err != nil {
		return err
	}
	defer c.Close()

	records, err := c.ListKernels(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeCache, err.Error(), nil)
		return WrapExitError(ExitCommandError, "listing kernels", err)
	}

	if opts.Format == "json" {
		return formatter.Success(records)
	}

	for _, rec := range records {
		fmt.Fprintf(formatter.Writer, "%s  %s %s (%s) seq=%d\n",
			rec.SignatureHash, rec.Kind, rec.Workunit, rec.PolicyKind, rec.Seq)
	}
	fmt.Fprintf(formatter.Writer, "%d kernel(s)\n", len(records))
	return nil
}

func runCacheCount(opts *CacheOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	c, err := openCache(opts, formatter)
	if err != nil {
		return err
	}
	defer c.Close()

	n, err := c.CountKernels(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeCache, err.Error(), nil)
		return WrapExitError(ExitCommandError, "counting kernels", err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]int64{"kernels": n})
	}
	fmt.Fprintf(formatter.Writer, "%d kernel(s)\n", n)
	return nil
}
