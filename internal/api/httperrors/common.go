package httperrors

import (
	"net/http"

	"github.com/paypost/go-paypost/internal/types"
)

var (
	ErrInternal             = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Internal Server Error")
	ErrInvalidPublicKey     = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidPublicKey, "Invalid public key.")
	ErrInvalidPayload       = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidPayload, "Invalid transaction payload.")
	ErrConflictWallet       = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeWalletAlreadyExists, "Wallet already exists.")
	ErrNotFound             = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeNotFound, "Not found.")
	ErrSignerFailure        = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeSignerFailure, "Failed to sign transaction.")
	ErrSubmissionFailure    = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeSubmissionFailure, "Failed to submit transaction.")
	ErrSubmittedUnconfirmed = NewHTTPError(http.StatusGatewayTimeout, types.PublicHTTPErrorTypeSubmittedButUnconfirmed, "Transaction submitted but not confirmed.")
)
