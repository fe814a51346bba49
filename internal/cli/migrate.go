package cli

import (
	"fmt"

	"partshop/internal/database"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "Create or update the catalog tables",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := rootOpts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cfg.DBDriver == database.DriverMemory {
				return fmt.Errorf("the %s driver has no schema to migrate", database.DriverMemory)
			}

			db, err := database.Open(cfg.Database(), log)
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s database\n", cfg.DBDriver)
			return nil
		},
	}
}
