package api

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/payload"
	"github.com/paypost/go-paypost/internal/wallet/scan"
	"github.com/paypost/go-paypost/internal/wallet/signer"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// PROVIDERS - https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NOTE: when adding new providers, don't forget to add them to wire.go as well

// NoTest is used by the production injector in place of the optional *testing.T argument.
func NoTest() []*testing.T {
	return nil
}

// NewClock returns a mock clock pinned to a fixed instant when used in tests.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if !useMock {
		clock = time2.DefaultClock
		log.Debug().Msg("Initialized real clock")
	} else {
		clock = time2.NewMockClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
		log.Debug().Msg("Initialized mock clock")
	}

	return clock
}

func NewDB(cfg config.Server) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Second * time.Duration(cfg.Database.ConnMaxLifetime))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Management.ReadinessTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return db, nil
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewChainClient(cfg config.Server) (chain.Client, error) {
	client, err := chain.NewAptosClient(cfg.Chain)
	if err != nil {
		return nil, err
	}

	return client, nil
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewSignerClient(cfg config.Server) signer.Client {
	return signer.NewPrivyClient(cfg.Privy)
}

// NewSenderLocker serializes submissions per sender across replicas through Redis when REDIS_URL
// is set and inside this process otherwise.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewSenderLocker(cfg config.Server) (txn.SenderLocker, error) {
	if cfg.Redis.URL == "" {
		log.Debug().Msg("Using in-process sender lock")
		return txn.NewLocalSenderLocker(), nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse REDIS_URL")
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Management.ReadinessTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to ping redis")
	}

	log.Debug().Str("addr", opts.Addr).Msg("Using redis sender lock")

	return txn.NewRedisSenderLocker(client, cfg.Redis.SenderLockTTL), nil
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewRecorder(db *sql.DB, clock time2.Clock) txn.Recorder {
	return txn.NewSQLRecorder(db, clock)
}

func NewPayloadBuilder(cfg config.Server) *payload.Builder {
	return payload.NewBuilder(cfg.Chain.ModuleAddress)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewTransactionService(
	cfg config.Server,
	client chain.Client,
	signerService signer.Service,
	locker txn.SenderLocker,
	recorder txn.Recorder,
) txn.Service {
	return txn.NewService(cfg.Chain, client, signerService, locker, recorder)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewScanService(cfg config.Server, client chain.Client, recorder txn.Recorder, clock time2.Clock) scan.Service {
	return scan.NewService(cfg.Scan, client, recorder, clock)
}
