package mocks

import (
	"context"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/crypto"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/payload"
	"github.com/stretchr/testify/mock"
)

// ChainClient is a testify mock of chain.Client.
type ChainClient struct {
	mock.Mock
}

var _ chain.Client = (*ChainClient)(nil)

func (m *ChainClient) BuildTransaction(ctx context.Context, sender address.Address, p *payload.Payload) (*aptos.RawTransaction, error) {
	args := m.Called(ctx, sender, p)
	tx, _ := args.Get(0).(*aptos.RawTransaction)
	return tx, args.Error(1)
}

func (m *ChainClient) SigningMessage(tx *aptos.RawTransaction) ([]byte, error) {
	args := m.Called(tx)
	msg, _ := args.Get(0).([]byte)
	return msg, args.Error(1)
}

func (m *ChainClient) SubmitTransaction(ctx context.Context, tx *aptos.RawTransaction, auth *crypto.AccountAuthenticator) (*chain.PendingTransaction, error) {
	args := m.Called(ctx, tx, auth)
	p, _ := args.Get(0).(*chain.PendingTransaction)
	return p, args.Error(1)
}

func (m *ChainClient) WaitForTransaction(ctx context.Context, hash string) (*chain.ExecutedTransaction, error) {
	args := m.Called(ctx, hash)
	tx, _ := args.Get(0).(*chain.ExecutedTransaction)
	return tx, args.Error(1)
}

func (m *ChainClient) TransactionByHash(ctx context.Context, hash string) (*chain.TransactionStatus, error) {
	args := m.Called(ctx, hash)
	s, _ := args.Get(0).(*chain.TransactionStatus)
	return s, args.Error(1)
}

func (m *ChainClient) Balance(ctx context.Context, addr address.Address) (uint64, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *ChainClient) View(ctx context.Context, p *payload.Payload) ([]any, error) {
	args := m.Called(ctx, p)
	v, _ := args.Get(0).([]any)
	return v, args.Error(1)
}

func (m *ChainClient) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
