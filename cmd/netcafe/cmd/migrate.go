package cmd

import (
	"context"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		ctx, cancel := withMigrationTimeout(cmd)
		defer cancel()

		if err := database.Migrate(ctx, log, cfg); err != nil {
			log.Error().Err(err).Msg("migration failed")
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func withMigrationTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), migrationTimeout)
}
