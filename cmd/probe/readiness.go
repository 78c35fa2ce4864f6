package probe

import (
	"context"
	"os"

	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long:  `Checks that the database is reachable. Exits non-zero on failure.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to parse verbose flag")
			}

			if err := readinessCmdFunc(cmd.Context(), verbose); err != nil {
				log.Error().Err(err).Msg("Readiness probe failed")
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func readinessCmdFunc(ctx context.Context, verbose bool) error {
	cfg := config.DefaultServiceConfigFromEnv()
	command.SetupLogger(cfg)

	ctx, cancel := context.WithTimeout(ctx, cfg.Management.ReadinessTimeout)
	defer cancel()

	// NewDB pings the database
	db, err := api.NewDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return err
	}

	if verbose {
		log.Info().Msg("Database is reachable")
	}

	return nil
}
