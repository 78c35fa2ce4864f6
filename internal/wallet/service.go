package wallet

import (
	"context"
	"database/sql"

	"github.com/dropbox/godropbox/time2"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/paypost/go-paypost/internal/util/db"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/signer"
	"github.com/pkg/errors"
)

var ErrWalletNotFound = errors.New("wallet not found")

// Service provides custodial wallet management
type Service interface {
	// CreateWallet provisions a wallet for owner at the custodial provider and stores it
	CreateWallet(ctx context.Context, owner string) (*Wallet, error)

	// GetWallet gets the wallet of owner
	GetWallet(ctx context.Context, owner string) (*Wallet, error)

	// GetWalletByAddress gets the wallet holding address
	GetWalletByAddress(ctx context.Context, addr string) (*Wallet, error)
}

type service struct {
	db     *sql.DB
	signer signer.Service
	clock  time2.Clock
}

// NewService creates a new wallet Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(db *sql.DB, signerService signer.Service, clock time2.Clock) Service {
	return &service{
		db:     db,
		signer: signerService,
		clock:  clock,
	}
}

const walletColumns = `id, owner, address, public_key, chain_type, created_at, updated_at`

// CreateWallet provisions a wallet for owner at the custodial provider and stores it
func (s *service) CreateWallet(ctx context.Context, owner string) (*Wallet, error) {
	log := util.LogFromContext(ctx).With().Str("owner", owner).Logger()

	if _, err := s.GetWallet(ctx, owner); err == nil {
		log.Info().Msg("Wallet already exists")
		return nil, errors.Wrapf(ErrWalletAlreadyExists, "owner %s", owner)
	} else if !errors.Is(err, ErrWalletNotFound) {
		return nil, err
	}

	created, err := s.signer.CreateWallet(ctx, owner)
	if err != nil {
		return nil, err
	}

	publicKey := created.PublicKey
	if pk, err := address.NormalizePublicKey(created.PublicKey); err == nil {
		publicKey = pk.String()
	} else {
		log.Warn().Err(err).Str("wallet_id", created.ID).Msg("Provider returned unexpected public key encoding")
	}

	now := s.clock.Now()
	w := &Wallet{
		ID:        created.ID,
		Owner:     owner,
		Address:   address.NormalizeAddress(created.Address).String(),
		PublicKey: publicKey,
		ChainType: created.ChainType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if w.ChainType == "" {
		w.ChainType = signer.ChainTypeAptos
	}

	err = db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO wallets (`+walletColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (owner) DO NOTHING`,
			w.ID, w.Owner, w.Address, w.PublicKey, w.ChainType, w.CreatedAt, w.UpdatedAt,
		)
		if err != nil {
			return errors.Wrap(err, "failed to insert wallet")
		}

		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return errors.Wrapf(ErrWalletAlreadyExists, "owner %s", owner)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to store wallet")
		return nil, err
	}

	log.Info().Str("wallet_id", w.ID).Str("address", w.Address).Msg("Wallet created successfully")

	return w, nil
}

// GetWallet gets the wallet of owner
func (s *service) GetWallet(ctx context.Context, owner string) (*Wallet, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+walletColumns+` FROM wallets WHERE owner = $1`, owner)

	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(ErrWalletNotFound, "owner %s", owner)
		}
		return nil, errors.Wrap(err, "failed to get wallet")
	}

	return w, nil
}

// GetWalletByAddress gets the wallet holding addr
func (s *service) GetWalletByAddress(ctx context.Context, addr string) (*Wallet, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+walletColumns+` FROM wallets WHERE address = $1`,
		address.NormalizeAddress(addr).String())

	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(ErrWalletNotFound, "address %s", addr)
		}
		return nil, errors.Wrap(err, "failed to get wallet by address")
	}

	return w, nil
}

func scanWallet(row *sql.Row) (*Wallet, error) {
	var w Wallet
	if err := row.Scan(&w.ID, &w.Owner, &w.Address, &w.PublicKey, &w.ChainType, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
