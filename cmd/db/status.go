package db

import (
	"fmt"

	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/persistence"
	"github.com/paypost/go-paypost/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Lists pending database migrations",
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()
			command.SetupLogger(cfg)

			db, err := api.NewDB(cfg)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to connect to database")
			}
			defer db.Close()

			pending, err := persistence.Pending(db)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to list pending migrations")
			}

			if len(pending) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
				return
			}

			for _, id := range pending {
				fmt.Fprintf(cmd.OutOrStdout(), "pending: %s\n", id)
			}
		},
	}
}
