package mocks

import (
	"context"
	"encoding/json"

	"github.com/paypost/go-paypost/internal/wallet/signer"
	"github.com/stretchr/testify/mock"
)

// SignerClient is a testify mock of signer.Client.
type SignerClient struct {
	mock.Mock
}

var _ signer.Client = (*SignerClient)(nil)

func (m *SignerClient) RawSign(ctx context.Context, walletID string, hash string) (json.RawMessage, error) {
	args := m.Called(ctx, walletID, hash)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *SignerClient) CreateWallet(ctx context.Context, owner string, chainType string) (*signer.CreatedWallet, error) {
	args := m.Called(ctx, owner, chainType)
	w, _ := args.Get(0).(*signer.CreatedWallet)
	return w, args.Error(1)
}
