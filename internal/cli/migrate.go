package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/database"
	"taskboard/internal/server"
)

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(app)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := server.Open(cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%d tables)\n", len(database.Models()))
			return nil
		},
	}
}
