package cli

import (
	"fmt"

	"github.com/LDtito/zend-crud-app/internal/database"
	"github.com/LDtito/zend-crud-app/internal/seed"

	"github.com/spf13/cobra"
)

func NewSeedCmd(opts *RootOptions) *cobra.Command {
	var (
		file      string
		builtin   bool
		noMigrate bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a catalogue dataset into the database",
		Long: `Load categorias and productos into the database. Rows whose categoria
nombre or producto codigo already exist are skipped.

The dataset is read from S3 when S3_ENABLED is set, falling back to --file
(or SEED_FILE). Without a file the built-in dataset is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !noMigrate {
				if err := database.Migrate(ctx, opts.pool, opts.logger); err != nil {
					return err
				}
			}

			var (
				ds  *seed.Dataset
				err error
			)
			if builtin {
				ds, err = seed.Default()
			} else {
				if file == "" {
					file = opts.cfg.Seed.File
				}
				ds, err = newLoader(cmd, opts).Load(ctx, file)
			}
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}

			res, err := seed.NewSeeder(opts.pool, opts.logger).Run(ctx, ds)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			return printJSON(cmd.OutOrStdout(), map[string]any{
				"command": "seed",
				"result":  res,
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Local dataset path (.json or .json.gz)")
	cmd.Flags().BoolVar(&builtin, "builtin", false, "Use the built-in dataset and ignore S3 and files")
	cmd.Flags().BoolVar(&noMigrate, "no-migrate", false, "Skip applying migrations first")

	return cmd
}

// newLoader builds the S3-with-local-fallback loader from configuration.
func newLoader(cmd *cobra.Command, opts *RootOptions) seed.Loader {
	fileLoader := seed.NewFileLoader(opts.logger)
	if !opts.cfg.S3.Enabled {
		return fileLoader
	}

	s3Loader, err := seed.NewS3Loader(cmd.Context(), opts.cfg.S3.Bucket, opts.cfg.S3.Region, opts.logger)
	if err != nil {
		opts.logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return seed.NewFallbackLoader(s3Loader, fileLoader, opts.cfg.S3.Key, true, opts.logger)
}
