package env

import (
	"encoding/json"
	"fmt"

	"github.com/paypost/go-paypost/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the env",
		Long: `Prints the configuration as parsed from ENV.
Sensitive values are omitted.`,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()

			c, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to marshal the env")
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(c))
		},
	}
}
