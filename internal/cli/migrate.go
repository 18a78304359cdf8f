package cli

import (
	"github.com/LDtito/zend-crud-app/internal/database"

	"github.com/spf13/cobra"
)

func NewMigrateCmd(opts *RootOptions) *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !statusOnly {
				if err := database.Migrate(cmd.Context(), opts.pool, opts.logger); err != nil {
					return err
				}
			}

			version, err := database.Version(cmd.Context(), opts.pool)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), map[string]any{
				"command": "migrate",
				"applied": !statusOnly,
				"version": version,
			})
		},
	}

	cmd.Flags().BoolVar(&statusOnly, "status", false, "Print the schema version without migrating")

	return cmd
}
