package cli

import (
	"fmt"

	"partshop/internal/app"
	"partshop/internal/database"
	"partshop/internal/seed"
	"partshop/internal/services"

	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load categories and products from a YAML fixture",
		Long: `Load categories and products from a YAML fixture.

Records go through the same checks as the API, so an existing category
name aborts the run. Records created before the failure are kept.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := rootOpts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			f, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}
			if cfg.DBDriver == database.DriverMemory {
				log.Warn("seeding the memory driver; records are discarded on exit")
			}

			repos, db, err := app.OpenRepositories(cfg, log)
			if err != nil {
				return err
			}
			if db != nil {
				defer database.Close(db)
			}

			res, err := seed.Apply(cmd.Context(),
				f,
				services.NewCategoryService(repos.Categories, repos.Products, nil, log),
				services.NewProductService(repos.Products, repos.Categories, nil, log),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories and %d products\n", res.Categories, res.Products)
			return err
		},
	}
}
