package test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/api/router"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// TestModuleAddress is the module address configured for test servers.
const TestModuleAddress = "0x1e9e7b11c35bb6ad1b68e8ba4a8a1a6d4cc1b1b9b7b0a4f2c6f1e3d7a9c8b5e4"

// Mocks gives tests control over everything a test server talks to.
type Mocks struct {
	SQL      sqlmock.Sqlmock
	Chain    *mocks.ChainClient
	Signer   *mocks.SignerClient
	Recorder *mocks.Recorder
}

// AssertExpectations checks the expectations of all mocks.
func (m *Mocks) AssertExpectations(t *testing.T) {
	t.Helper()

	m.Chain.AssertExpectations(t)
	m.Signer.AssertExpectations(t)
	m.Recorder.AssertExpectations(t)
	require.NoError(t, m.SQL.ExpectationsWereMet())
}

// NewTestConfig returns a server config that needs no external services.
func NewTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Echo.Debug = false
	cfg.Echo.HideInternalServerErrorDetails = true
	cfg.Logger.PrettyPrintConsole = false
	cfg.Chain.ModuleAddress = TestModuleAddress
	cfg.Chain.ConfirmTimeout = 200 * time.Millisecond
	cfg.Privy.AppID = "test-app"
	cfg.Privy.AppSecret = "test-secret"
	cfg.Redis.URL = ""
	cfg.Tracing.Endpoint = ""

	return cfg
}

// WithTestServer runs closure against a fully wired server whose database, chain node, custody
// provider and transaction recorder are mocks.
func WithTestServer(t *testing.T, closure func(s *api.Server, m *Mocks)) {
	t.Helper()

	WithTestServerConfigurable(t, NewTestConfig(), closure)
}

func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server, m *Mocks)) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	m := &Mocks{
		SQL:      sqlMock,
		Chain:    &mocks.ChainClient{},
		Signer:   &mocks.SignerClient{},
		Recorder: mocks.NewPermissiveRecorder(),
	}

	s := NewTestServer(t, cfg, db, m)

	closure(s, m)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// the sqlmock connection is closed by Shutdown
	sqlMock.ExpectClose()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("Failed to shutdown server: %v", errs)
	}
}

func NewTestServer(t *testing.T, cfg config.Server, db *sql.DB, m *Mocks) *api.Server {
	t.Helper()

	s, err := api.InitNewServerWithClients(cfg, db, m.Chain, m.Signer, m.Recorder, t)
	require.NoError(t, err)

	// every test server gets its own registry, collectors are registered once per server
	reg := prometheus.NewRegistry()
	s.Metrics.Registerer = reg
	s.Metrics.Gatherer = reg

	require.NoError(t, router.Init(s))

	return s
}
