package wallet

import (
	"time"

	"github.com/paypost/go-paypost/internal/wallet/signer"
)

// ErrWalletAlreadyExists matches both a stored wallet and a provider side conflict.
var ErrWalletAlreadyExists = signer.ErrWalletAlreadyExists

// Wallet is a custodial wallet held at the provider on behalf of Owner.
type Wallet struct {
	// ID is the provider's wallet id, used to request signatures.
	ID        string
	Owner     string
	Address   string
	PublicKey string
	ChainType string
	CreatedAt time.Time
	UpdatedAt time.Time
}
