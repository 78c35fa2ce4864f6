package db

import (
	"context"

	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/persistence"
	"github.com/paypost/go-paypost/internal/util/command"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Executes all pending database migrations",
		Long: `Executes all pending migrations embedded in the binary.
Migrations already applied are skipped.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := migrateCmdFunc(cmd.Context()); err != nil {
				log.Fatal().Err(err).Msg("Failed to migrate database")
			}
		},
	}
}

func migrateCmdFunc(ctx context.Context) error {
	cfg := config.DefaultServiceConfigFromEnv()
	command.SetupLogger(cfg)

	db, err := api.NewDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := persistence.Migrate(ctx, db)
	if err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	log.Info().Int("migrations", n).Msg("Applied database migrations")

	return nil
}
