package signer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// SignatureHexLength is the length of a hex encoded Ed25519 signature without prefix.
const SignatureHexLength = 128

// ChainTypeAptos is the custodial provider's chain type for Aptos/Movement wallets.
const ChainTypeAptos = "aptos"

var (
	ErrInvalidSignerResponse  = errors.New("invalid signer response")
	ErrInvalidSignatureLength = errors.New("invalid signature length")
	ErrWalletAlreadyExists    = errors.New("wallet already exists")
	ErrSignerRequest          = errors.New("signer request failed")
)

// Signature is a hex encoded Ed25519 signature, 128 chars, no 0x prefix.
type Signature string

func (s Signature) String() string {
	return string(s)
}

// Service obtains signatures from the custodial signer.
type Service interface {
	// RequestSignature asks the custodial signer to sign message with the key held for walletID.
	RequestSignature(ctx context.Context, walletID string, message []byte) (Signature, error)
	// CreateWallet provisions a new custodial wallet for owner.
	CreateWallet(ctx context.Context, owner string) (*CreatedWallet, error)
}

// Client is the transport to the custodial wallet provider.
type Client interface {
	// RawSign signs hash (0x prefixed hex) and returns the undecoded response body.
	RawSign(ctx context.Context, walletID string, hash string) (json.RawMessage, error)
	// CreateWallet creates a wallet of chainType owned by owner.
	CreateWallet(ctx context.Context, owner string, chainType string) (*CreatedWallet, error)
}

// CreatedWallet is the provider's view of a freshly created wallet.
type CreatedWallet struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	PublicKey string    `json:"public_key"`
	ChainType string    `json:"chain_type"`
	CreatedAt time.Time `json:"-"`
}
