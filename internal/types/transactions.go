package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// WalletSigningRef identifies the custodial wallet that signs a transaction.
type WalletSigningRef struct {

	// Custodial wallet id
	WalletID *string `json:"walletId"`

	// Ed25519 public key of the wallet (hex, optional 0x prefix)
	PublicKey *string `json:"publicKey"`

	// Account address of the wallet
	Address *string `json:"address"`
}

func (m *WalletSigningRef) validate(res []error) []error {
	if err := validate.Required("walletId", "body", m.WalletID); err != nil {
		res = append(res, err)
	} else if err := validate.MinLength("walletId", "body", *m.WalletID, 1); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("publicKey", "body", m.PublicKey); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	} else if err := validate.MinLength("address", "body", *m.Address, 1); err != nil {
		res = append(res, err)
	}

	return res
}

// SurveyData is the survey part of a create-survey request.
type SurveyData struct {

	// Survey title
	Title *string `json:"title"`

	// Survey description
	Description *string `json:"description"`

	// Reward per response in tokens
	RewardAmount *float64 `json:"rewardAmount"`

	// Maximum number of rewarded responses
	MaxResponses *int64 `json:"maxResponses"`
}

// PostCreateSurveyTransactionPayload is the body of POST /api/transactions/create-survey.
type PostCreateSurveyTransactionPayload struct {
	WalletSigningRef

	// Survey to create
	SurveyData *SurveyData `json:"surveyData"`
}

// Validate validates this post create survey transaction payload
func (m *PostCreateSurveyTransactionPayload) Validate(_ strfmt.Registry) error {
	res := m.WalletSigningRef.validate(nil)

	if err := validate.Required("surveyData", "body", m.SurveyData); err != nil {
		res = append(res, err)
	} else {
		if err := validate.Required("surveyData.title", "body", m.SurveyData.Title); err != nil {
			res = append(res, err)
		}
		if err := validate.Required("surveyData.description", "body", m.SurveyData.Description); err != nil {
			res = append(res, err)
		}
		if err := validate.Required("surveyData.rewardAmount", "body", m.SurveyData.RewardAmount); err != nil {
			res = append(res, err)
		}
		if err := validate.Required("surveyData.maxResponses", "body", m.SurveyData.MaxResponses); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PostCompleteSurveyTransactionPayload is the body of POST /api/transactions/complete-survey.
type PostCompleteSurveyTransactionPayload struct {
	WalletSigningRef

	// On-chain survey id
	SurveyID *int64 `json:"surveyId"`
}

// Validate validates this post complete survey transaction payload
func (m *PostCompleteSurveyTransactionPayload) Validate(_ strfmt.Registry) error {
	res := m.WalletSigningRef.validate(nil)

	if err := validate.Required("surveyId", "body", m.SurveyID); err != nil {
		res = append(res, err)
	} else if err := validate.MinimumInt("surveyId", "body", *m.SurveyID, 0, false); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PostTransferTransactionPayload is the body of POST /api/transactions/transfer.
type PostTransferTransactionPayload struct {
	WalletSigningRef

	// Recipient address
	ToAddress *string `json:"toAddress"`

	// Amount in tokens
	Amount *float64 `json:"amount"`
}

// Validate validates this post transfer transaction payload
func (m *PostTransferTransactionPayload) Validate(_ strfmt.Registry) error {
	res := m.WalletSigningRef.validate(nil)

	if err := validate.Required("toAddress", "body", m.ToAddress); err != nil {
		res = append(res, err)
	} else if err := validate.MinLength("toAddress", "body", swag.StringValue(m.ToAddress), 1); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("amount", "body", m.Amount); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// TransactionEvent is an event emitted by an executed transaction.
type TransactionEvent struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// TransactionResult is the finalized on-chain outcome of a transaction.
type TransactionResult struct {
	Hash     *string             `json:"hash"`
	Version  uint64              `json:"version"`
	Success  *bool               `json:"success"`
	VMStatus string              `json:"vmStatus,omitempty"`
	GasUsed  uint64              `json:"gasUsed"`
	Events   []*TransactionEvent `json:"events"`
}

// TransactionResponse is returned by every POST /api/transactions/* route.
type TransactionResponse struct {
	Success         *bool              `json:"success"`
	TransactionHash *string            `json:"transactionHash"`
	Result          *TransactionResult `json:"result"`
}

// Validate validates this transaction response
func (m *TransactionResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("success", "body", m.Success); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("transactionHash", "body", m.TransactionHash); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// TransactionStatusResponse is returned by GET /api/transactions/:hash.
type TransactionStatusResponse struct {
	TransactionHash *string            `json:"transactionHash"`
	Status          *string            `json:"status"`
	Result          *TransactionResult `json:"result,omitempty"`
}

// Validate validates this transaction status response
func (m *TransactionStatusResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("transactionHash", "body", m.TransactionHash); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("status", "body", m.Status); err != nil {
		res = append(res, err)
	} else if err := validate.EnumCase("status", "body", *m.Status, []any{"pending", "success", "failure"}, true); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}
