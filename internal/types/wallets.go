package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PostCreateWalletPayload is the body of POST /api/wallets.
type PostCreateWalletPayload struct {

	// Owner of the custodial wallet (user id at the custody provider)
	Owner *string `json:"owner"`
}

// Validate validates this post create wallet payload
func (m *PostCreateWalletPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("owner", "body", m.Owner); err != nil {
		res = append(res, err)
	} else if err := validate.MinLength("owner", "body", *m.Owner, 1); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// WalletResponse describes a custodial wallet.
type WalletResponse struct {
	ID        *string          `json:"id"`
	Owner     *string          `json:"owner"`
	Address   *string          `json:"address"`
	PublicKey string           `json:"publicKey,omitempty"`
	ChainType *string          `json:"chainType"`
	CreatedAt *strfmt.DateTime `json:"createdAt"`
}

// Validate validates this wallet response
func (m *WalletResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("id", "body", m.ID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// BalanceResponse is returned by GET /api/balance/:address.
type BalanceResponse struct {

	// Normalized account address
	Address *string `json:"address"`

	// Balance in tokens (decimal string)
	Balance *string `json:"balance"`

	// Balance in octas
	Octas *uint64 `json:"octas"`
}

// Validate validates this balance response
func (m *BalanceResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("balance", "body", m.Balance); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("octas", "body", m.Octas); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}
