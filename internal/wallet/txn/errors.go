package txn

import (
	"github.com/pkg/errors"
)

var (
	ErrEd25519PublicKey      = errors.New("invalid ed25519 public key")
	ErrEd25519Signature      = errors.New("invalid ed25519 signature")
	ErrAuthenticatorAssembly = errors.New("failed to assemble account authenticator")
	ErrConfirmationTimeout   = errors.New("timed out waiting for transaction confirmation")
	ErrMissingWalletID       = errors.New("wallet id must not be empty")
	ErrMissingAddress        = errors.New("sender address must not be empty")
)

// SubmittedButUnconfirmedError is returned when the node accepted a transaction but its outcome
// could not be observed. The transaction may still commit; poll Hash to reconcile.
type SubmittedButUnconfirmedError struct {
	Hash string
	Err  error
}

func (e *SubmittedButUnconfirmedError) Error() string {
	return "transaction " + e.Hash + " submitted but not confirmed: " + e.Err.Error()
}

func (e *SubmittedButUnconfirmedError) Unwrap() error {
	return e.Err
}

// ExecutionFailedError is returned when the transaction was committed but aborted on-chain.
type ExecutionFailedError struct {
	Hash     string
	VMStatus string
}

func (e *ExecutionFailedError) Error() string {
	return "transaction " + e.Hash + " failed: " + e.VMStatus
}
