package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/jeopardy-go2/internal/config"
	"github.com/mcoot/jeopardy-go2/internal/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply Postgres schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				appCfg, err := config.Load(cfg.ConfigPath)
				if err != nil {
					return err
				}
				dsn = appCfg.Storage.Postgres.URL
			}
			if dsn == "" {
				return fmt.Errorf("no database URL: set --dsn or DATABASE_URL")
			}

			applied, err := postgres.Migrate(cmd.Context(), dsn)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			if len(applied) == 0 {
				out.PrintMessage("Database is up to date")
				return nil
			}
			out.Print(map[string][]string{"applied": applied})
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "Postgres connection URL (default from config)")

	return cmd
}
