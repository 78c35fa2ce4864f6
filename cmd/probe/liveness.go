package probe

import (
	"context"
	"os"

	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/util/command"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long:  `Checks that the database and the chain node are reachable. Exits non-zero on failure.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to parse verbose flag")
			}

			if err := livenessCmdFunc(cmd.Context(), verbose); err != nil {
				log.Error().Err(err).Msg("Liveness probe failed")
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func livenessCmdFunc(ctx context.Context, verbose bool) error {
	cfg := config.DefaultServiceConfigFromEnv()
	command.SetupLogger(cfg)

	ctx, cancel := context.WithTimeout(ctx, cfg.Management.LivenessTimeout)
	defer cancel()

	db, err := api.NewDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := chain.NewAptosClient(cfg.Chain)
	if err != nil {
		return err
	}

	if err := client.Ping(ctx); err != nil {
		return err
	}

	if verbose {
		log.Info().Str("node", cfg.Chain.NodeURL).Msg("Database and chain node are reachable")
	}

	return nil
}
