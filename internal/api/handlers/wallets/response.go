package wallets

import (
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/wallet"
)

func toWalletResponse(w *wallet.Wallet) *types.WalletResponse {
	createdAt := strfmt.DateTime(w.CreatedAt)

	return &types.WalletResponse{
		ID:        swag.String(w.ID),
		Owner:     swag.String(w.Owner),
		Address:   swag.String(w.Address),
		PublicKey: w.PublicKey,
		ChainType: swag.String(w.ChainType),
		CreatedAt: &createdAt,
	}
}
