package httperrors

import (
	"github.com/paypost/go-paypost/internal/wallet"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/balance"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/payload"
	"github.com/paypost/go-paypost/internal/wallet/signer"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/pkg/errors"
)

var invalidPayloadErrors = []error{
	chain.ErrEmptyTransactionPayload,
	chain.ErrUnsupportedArgument,
	chain.ErrInvalidAddress,
	payload.ErrEmptyTitle,
	payload.ErrEmptyDescription,
	payload.ErrNonPositiveReward,
	payload.ErrNonPositiveMaxResponses,
	payload.ErrNonPositiveAmount,
	payload.ErrEmptyRecipient,
	payload.ErrInvalidFunction,
	payload.ErrAmountOutOfRange,
	txn.ErrMissingWalletID,
	txn.ErrMissingAddress,
	balance.ErrEmptyAddress,
}

var signerErrors = []error{
	signer.ErrInvalidSignerResponse,
	signer.ErrInvalidSignatureLength,
	signer.ErrSignerRequest,
	txn.ErrEd25519Signature,
	txn.ErrAuthenticatorAssembly,
}

// FromDomain maps a service error to its public HTTP error. Errors it does not recognize yield
// nil and are rendered as 500.
func FromDomain(err error) *HTTPError {
	var unconfirmed *txn.SubmittedButUnconfirmedError
	if errors.As(err, &unconfirmed) {
		e := withDetail(ErrSubmittedUnconfirmed, err)
		e.TransactionHash = unconfirmed.Hash
		return e
	}

	var failed *txn.ExecutionFailedError
	if errors.As(err, &failed) {
		e := withDetail(ErrSubmissionFailure, err)
		e.TransactionHash = failed.Hash
		return e
	}

	switch {
	case errors.Is(err, address.ErrInvalidPublicKeyLength), errors.Is(err, txn.ErrEd25519PublicKey):
		return withDetail(ErrInvalidPublicKey, err)
	case isAny(err, invalidPayloadErrors):
		return withDetail(ErrInvalidPayload, err)
	case errors.Is(err, wallet.ErrWalletAlreadyExists):
		return withDetail(ErrConflictWallet, err)
	case errors.Is(err, wallet.ErrWalletNotFound), errors.Is(err, chain.ErrTransactionNotFound):
		return withDetail(ErrNotFound, err)
	case isAny(err, signerErrors):
		return withDetail(ErrSignerFailure, err)
	case errors.Is(err, chain.ErrSubmission):
		return withDetail(ErrSubmissionFailure, err)
	}

	var buildErr *chain.TransactionBuildError
	if errors.As(err, &buildErr) {
		return withDetail(ErrSubmissionFailure, err)
	}

	return nil
}

func withDetail(base *HTTPError, err error) *HTTPError {
	e := base.WithInternal(err)
	e.Detail = err.Error()
	return e
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
