package chain

import (
	"context"
	"strings"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/crypto"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/payload"
	"github.com/pkg/errors"
)

var (
	ErrEmptyTransactionPayload = errors.New("transaction payload function must not be empty")
	ErrInvalidAddress          = errors.New("invalid account address")
	ErrSubmission              = errors.New("transaction submission failed")
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrUnsupportedArgument     = errors.New("unsupported argument type")
)

// TransactionBuildError reports a failure to construct an unsigned transaction.
type TransactionBuildError struct {
	Err error
}

func (e *TransactionBuildError) Error() string {
	return "failed to build transaction: " + e.Err.Error()
}

func (e *TransactionBuildError) Unwrap() error {
	return e.Err
}

// Status of a transaction as seen by the node.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Client is the subset of node operations PayPost needs.
type Client interface {
	// BuildTransaction creates an unsigned entry function transaction for sender. The node
	// supplies sequence number, gas price and expiration.
	BuildTransaction(ctx context.Context, sender address.Address, p *payload.Payload) (*aptos.RawTransaction, error)
	// SigningMessage returns the domain separated bytes the sender must sign for tx.
	SigningMessage(tx *aptos.RawTransaction) ([]byte, error)
	SubmitTransaction(ctx context.Context, tx *aptos.RawTransaction, auth *crypto.AccountAuthenticator) (*PendingTransaction, error)
	// WaitForTransaction polls until hash is committed or ctx is done.
	WaitForTransaction(ctx context.Context, hash string) (*ExecutedTransaction, error)
	// TransactionByHash looks a transaction up without waiting. Pending transactions have a nil
	// Executed field.
	TransactionByHash(ctx context.Context, hash string) (*TransactionStatus, error)
	// Balance returns the native coin balance of addr in octas.
	Balance(ctx context.Context, addr address.Address) (uint64, error)
	// View calls a read-only view function.
	View(ctx context.Context, p *payload.Payload) ([]any, error)
	// Ping checks that the node is reachable.
	Ping(ctx context.Context) error
}

type PendingTransaction struct {
	Hash string
}

type Event struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type ExecutedTransaction struct {
	Hash     string  `json:"hash"`
	Version  uint64  `json:"version"`
	Success  bool    `json:"success"`
	VMStatus string  `json:"vm_status"`
	GasUsed  uint64  `json:"gas_used"`
	Events   []Event `json:"events"`
}

// Status derives pending, success or failure from the executed transaction.
func (t *ExecutedTransaction) Status() Status {
	if t == nil {
		return StatusPending
	}
	if t.Success {
		return StatusSuccess
	}
	return StatusFailure
}

// FindEvent returns the first event whose type ends with suffix, e.g. "::survey::SurveyCreated".
func (t *ExecutedTransaction) FindEvent(suffix string) (*Event, bool) {
	for i := range t.Events {
		if strings.HasSuffix(t.Events[i].Type, suffix) {
			return &t.Events[i], true
		}
	}
	return nil, false
}

type TransactionStatus struct {
	Hash     string
	Executed *ExecutedTransaction
}

func (s *TransactionStatus) Status() Status {
	return s.Executed.Status()
}

// ValidatePayload rejects payloads that cannot be built into a transaction, including address
// arguments that do not parse.
func ValidatePayload(p *payload.Payload) error {
	if p == nil || p.Function == "" {
		return &TransactionBuildError{Err: ErrEmptyTransactionPayload}
	}

	for i, arg := range p.Arguments {
		if addr, ok := arg.(payload.Address); ok {
			if _, err := ParseAddress(string(addr)); err != nil {
				return &TransactionBuildError{Err: errors.Wrapf(err, "argument %d", i)}
			}
		}
	}

	return nil
}

// ParseAddress parses a 0x prefixed or bare hex account address. Short forms are zero padded.
func ParseAddress(addr string) (aptos.AccountAddress, error) {
	var account aptos.AccountAddress
	if err := account.ParseStringRelaxed(addr); err != nil {
		return account, errors.Wrapf(ErrInvalidAddress, "%q: %v", addr, err)
	}
	return account, nil
}
