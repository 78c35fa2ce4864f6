package types

import (
	"github.com/go-openapi/strfmt"
)

// PublicHTTPErrorType is the machine readable error kind returned to API clients.
type PublicHTTPErrorType string

const (
	PublicHTTPErrorTypeGeneric                 PublicHTTPErrorType = "generic"
	PublicHTTPErrorTypeValidation              PublicHTTPErrorType = "validation"
	PublicHTTPErrorTypeInvalidPublicKey        PublicHTTPErrorType = "INVALID_PUBLIC_KEY"
	PublicHTTPErrorTypeInvalidPayload          PublicHTTPErrorType = "INVALID_PAYLOAD"
	PublicHTTPErrorTypeSignerFailure           PublicHTTPErrorType = "SIGNER_FAILURE"
	PublicHTTPErrorTypeSubmissionFailure       PublicHTTPErrorType = "SUBMISSION_FAILURE"
	PublicHTTPErrorTypeSubmittedButUnconfirmed PublicHTTPErrorType = "SUBMITTED_BUT_UNCONFIRMED"
	PublicHTTPErrorTypeWalletAlreadyExists     PublicHTTPErrorType = "WALLET_ALREADY_EXISTS"
	PublicHTTPErrorTypeNotFound                PublicHTTPErrorType = "NOT_FOUND"
)

// PublicHTTPError is the JSON body of every non-2xx response.
type PublicHTTPError struct {

	// HTTP status code returned for the error
	Code int64 `json:"status"`

	// Short, human-readable summary of the problem
	Title string `json:"error"`

	// More detail about the problem
	Detail string `json:"details,omitempty"`

	// Type of error returned
	Type PublicHTTPErrorType `json:"type"`

	// Hash of a transaction that was submitted but whose outcome is unknown
	TransactionHash string `json:"transactionHash,omitempty"`
}

// Validate validates this public HTTP error
func (m *PublicHTTPError) Validate(_ strfmt.Registry) error {
	return nil
}

// HTTPValidationErrorDetail describes a single invalid request field.
type HTTPValidationErrorDetail struct {

	// Error describing field validation failure
	Error *string `json:"error"`

	// Indicates how the invalid field was provided
	In *string `json:"in"`

	// Key of field failing validation
	Key *string `json:"key"`
}

// PublicHTTPValidationError extends PublicHTTPError with per-field details.
type PublicHTTPValidationError struct {
	PublicHTTPError

	// List of errors received while validating payload against schema
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}
