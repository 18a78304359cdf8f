package cli

import (
	"fmt"
	"time"

	"github.com/LDtito/zend-crud-app/internal/database"

	"github.com/spf13/cobra"
)

func NewPingCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the database connection and schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			start := time.Now()
			if err := opts.pool.Ping(ctx); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}
			latency := time.Since(start)

			var serverVersion string
			if err := opts.pool.QueryRow(ctx, "SHOW server_version").Scan(&serverVersion); err != nil {
				return fmt.Errorf("read server version: %w", err)
			}

			schemaVersion, err := database.Version(ctx, opts.pool)
			if err != nil {
				return err
			}

			var categorias, productos int
			if schemaVersion > 0 {
				if err := opts.pool.QueryRow(ctx,
					"SELECT (SELECT COUNT(*) FROM categorias), (SELECT COUNT(*) FROM productos)",
				).Scan(&categorias, &productos); err != nil {
					return fmt.Errorf("count rows: %w", err)
				}
			}

			return printJSON(cmd.OutOrStdout(), map[string]any{
				"command":        "ping",
				"database":       opts.cfg.Database.Database,
				"server_version": serverVersion,
				"schema_version": schemaVersion,
				"latency_ms":     latency.Milliseconds(),
				"categorias":     categorias,
				"productos":      productos,
			})
		},
	}
}
