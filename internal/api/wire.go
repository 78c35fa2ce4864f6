//go:build wireinject

package api

import (
	"database/sql"
	"testing"

	"github.com/google/wire"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/metrics"
	"github.com/paypost/go-paypost/internal/wallet"
	"github.com/paypost/go-paypost/internal/wallet/balance"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/signer"
	"github.com/paypost/go-paypost/internal/wallet/survey"
	"github.com/paypost/go-paypost/internal/wallet/txn"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	metrics.New,
	NewClock,
	NewSenderLocker,
	NewPayloadBuilder,
	NewTransactionService,
	signer.NewService,
	wallet.NewService,
	balance.NewService,
	survey.NewService,
	NewScanService,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewDB, NewChainClient, NewSignerClient, NewRecorder, NoTest)
	return new(Server), nil
}

// InitNewServerWithClients returns a new Server instance with the given DB and external clients.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithClients(
	_ config.Server,
	_ *sql.DB,
	_ chain.Client,
	_ signer.Client,
	_ txn.Recorder,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
