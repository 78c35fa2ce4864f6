package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/api/router"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/persistence"
	"github.com/paypost/go-paypost/internal/tracing"
	"github.com/paypost/go-paypost/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	migrateFlag     = "migrate"
	shutdownTimeout = 30 * time.Second
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the PayPost HTTP server.

Requires configuration through ENV.`,
		Run: func(cmd *cobra.Command, _ []string) {
			migrate, err := cmd.Flags().GetBool(migrateFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to parse migrate flag")
			}

			if err := run(migrate); err != nil {
				log.Fatal().Err(err).Msg("Server failed")
			}
		},
	}

	cmd.Flags().BoolP(migrateFlag, "m", false, "Apply pending database migrations before starting the server.")

	return cmd
}

func run(migrate bool) error {
	cfg := config.DefaultServiceConfigFromEnv()
	command.SetupLogger(cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}

	s, err := api.InitNewServer(cfg)
	if err != nil {
		return err
	}

	if migrate {
		n, err := persistence.Migrate(ctx, s.DB)
		if err != nil {
			return err
		}
		log.Info().Int("migrations", n).Msg("Applied database migrations")
	}

	if err := router.Init(s); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.Echo.ListenAddress).Msg("Starting server")
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.Scan.Enabled {
		g.Go(func() error {
			return s.Scan.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
			log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
		}

		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}

		return nil
	})

	return g.Wait()
}
