// Package cli implements the catalogctl administration commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/LDtito/zend-crud-app/internal/config"
	"github.com/LDtito/zend-crud-app/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootOptions is shared by every subcommand. The pool is opened before a
// subcommand runs and closed after it, whether or not it fails.
type RootOptions struct {
	cfg    *config.Config
	logger zerolog.Logger
	pool   *pgxpool.Pool
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&RootOptions{})
}

func newRootCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Administration tool for the productos catalogue database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			opts.cfg = cfg
			opts.logger = config.NewLoggerTo(cfg.Logger, cmd.ErrOrStderr())

			pool, err := database.NewPool(cmd.Context(), cfg.Database, opts.logger)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			opts.pool = pool
			return nil
		},
	}

	cmd.AddCommand(
		NewMigrateCmd(opts),
		NewSeedCmd(opts),
		NewPingCmd(opts),
	)

	// Post-run hooks are skipped when RunE fails, so the pool is closed here.
	for _, sub := range cmd.Commands() {
		if sub.RunE != nil {
			sub.RunE = closePoolAfter(opts, sub.RunE)
		}
	}

	return cmd
}

func closePoolAfter(opts *RootOptions, run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer opts.closePool()
		return run(cmd, args)
	}
}

func (o *RootOptions) closePool() {
	if o.pool != nil {
		o.pool.Close()
		o.pool = nil
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
