package signer

import (
	"context"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/pkg/errors"
)

type service struct {
	client Client
}

// NewService creates a new signer Service backed by client
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(client Client) Service {
	return &service{
		client: client,
	}
}

// RequestSignature sends the 0x hex encoded message to the custodial signer and parses the reply.
func (s *service) RequestSignature(ctx context.Context, walletID string, message []byte) (Signature, error) {
	if walletID == "" {
		return "", errors.Wrap(ErrSignerRequest, "wallet id must not be empty")
	}

	raw, err := s.client.RawSign(ctx, walletID, hexutil.Encode(message))
	if err != nil {
		return "", errors.Wrap(err, "failed to request signature")
	}

	sig, err := ParseSignerResponse(raw)
	if err != nil {
		util.LogFromContext(ctx).Debug().Str("walletId", walletID).Err(err).Msg("Signer returned unusable response")
		return "", err
	}

	return sig, nil
}

// CreateWallet provisions an Aptos wallet for owner.
func (s *service) CreateWallet(ctx context.Context, owner string) (*CreatedWallet, error) {
	w, err := s.client.CreateWallet(ctx, owner, ChainTypeAptos)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create custodial wallet")
	}

	return w, nil
}
