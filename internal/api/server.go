package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/metrics"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/paypost/go-paypost/internal/wallet"
	"github.com/paypost/go-paypost/internal/wallet/balance"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/payload"
	"github.com/paypost/go-paypost/internal/wallet/scan"
	"github.com/paypost/go-paypost/internal/wallet/signer"
	"github.com/paypost/go-paypost/internal/wallet/survey"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/rs/zerolog/log"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

type Router struct {
	Routes     []*echo.Route
	Root       *echo.Group
	Management *echo.Group
	API        *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config       config.Server
	DB           *sql.DB
	Clock        time2.Clock
	Metrics      *metrics.Service
	Chain        chain.Client
	Signer       signer.Service
	Locker       txn.SenderLocker
	Recorder     txn.Recorder
	Payloads     *payload.Builder
	Transactions txn.Service
	Wallet       wallet.Service
	Balance      balance.Service
	Survey       survey.Service
	Scan         scan.Service
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	db *sql.DB,
	clock time2.Clock,
	metricsService *metrics.Service,
	chainClient chain.Client,
	signerService signer.Service,
	locker txn.SenderLocker,
	recorder txn.Recorder,
	payloads *payload.Builder,
	transactions txn.Service,
	walletService wallet.Service,
	balanceService balance.Service,
	surveyService survey.Service,
	scanService scan.Service,
) *Server {
	return &Server{
		Config:       cfg,
		DB:           db,
		Clock:        clock,
		Metrics:      metricsService,
		Chain:        chainClient,
		Signer:       signerService,
		Locker:       locker,
		Recorder:     recorder,
		Payloads:     payloads,
		Transactions: transactions,
		Wallet:       walletService,
		Balance:      balanceService,
		Survey:       surveyService,
		Scan:         scanService,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	if closer, ok := s.Locker.(io.Closer); ok {
		log.Debug().Msg("Closing sender lock client")

		if err := closer.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close sender lock client")
			errs = append(errs, err)
		}
	}

	if s.DB != nil {
		log.Debug().Msg("Closing database connection")

		if err := s.DB.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			log.Error().Err(err).Msg("Failed to close database connection")
			errs = append(errs, err)
		}
	}

	return errs
}
