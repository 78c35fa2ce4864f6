package balance

import (
	"context"
	"strings"

	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/payload"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var ErrEmptyAddress = errors.New("address must not be empty")

// Service reads native coin balances
type Service interface {
	// GetBalance returns the balance of addr in octas and tokens
	GetBalance(ctx context.Context, addr string) (*Balance, error)
}

type service struct {
	chain chain.Client
}

// NewService creates a balance service reading from client
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(client chain.Client) Service {
	return &service{
		chain: client,
	}
}

// Balance of an account
type Balance struct {
	Address address.Address
	Octas   uint64
	Tokens  decimal.Decimal
}

// GetBalance returns the balance of addr in octas and tokens
func (s *service) GetBalance(ctx context.Context, addr string) (*Balance, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, ErrEmptyAddress
	}

	normalized := address.NormalizeAddress(addr)
	if _, err := chain.ParseAddress(normalized.String()); err != nil {
		return nil, err
	}

	octas, err := s.chain.Balance(ctx, normalized)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	return &Balance{
		Address: normalized,
		Octas:   octas,
		Tokens:  payload.FromOctas(octas),
	}, nil
}
