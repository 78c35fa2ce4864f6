package chain

import (
	"context"
	"time"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/api"
	"github.com/aptos-labs/aptos-go-sdk/bcs"
	"github.com/aptos-labs/aptos-go-sdk/crypto"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/payload"
	"github.com/pkg/errors"
)

const pollSlack = time.Second

// AptosClient implements Client on top of the Aptos Go SDK. The SDK has no context support, so
// each call runs in its own goroutine and is abandoned when ctx is done.
type AptosClient struct {
	client       *aptos.Client
	pollPeriod   time.Duration
	pollTimeout  time.Duration
	maxGasAmount uint64
}

func NewAptosClient(cfg config.Chain) (*AptosClient, error) {
	client, err := aptos.NewClient(aptos.NetworkConfig{
		Name:    cfg.NetworkName,
		ChainId: cfg.ChainID,
		NodeUrl: cfg.NodeURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chain client")
	}

	return &AptosClient{
		client:       client,
		pollPeriod:   cfg.PollPeriod,
		pollTimeout:  cfg.ConfirmTimeout,
		maxGasAmount: cfg.MaxGasAmount,
	}, nil
}

func (c *AptosClient) BuildTransaction(ctx context.Context, sender address.Address, p *payload.Payload) (*aptos.RawTransaction, error) {
	if err := ValidatePayload(p); err != nil {
		return nil, err
	}

	senderAddr, err := ParseAddress(sender.String())
	if err != nil {
		return nil, &TransactionBuildError{Err: errors.Wrap(err, "sender")}
	}

	entry, err := EntryFunction(p)
	if err != nil {
		return nil, &TransactionBuildError{Err: err}
	}

	var opts []any
	if c.maxGasAmount > 0 {
		opts = append(opts, aptos.MaxGasAmount(c.maxGasAmount))
	}

	tx, err := run(ctx, func() (*aptos.RawTransaction, error) {
		return c.client.BuildTransaction(senderAddr, aptos.TransactionPayload{Payload: entry}, opts...)
	})
	if err != nil {
		return nil, &TransactionBuildError{Err: err}
	}

	return tx, nil
}

func (c *AptosClient) SigningMessage(tx *aptos.RawTransaction) ([]byte, error) {
	msg, err := tx.SigningMessage()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate signing message")
	}
	return msg, nil
}

func (c *AptosClient) SubmitTransaction(ctx context.Context, tx *aptos.RawTransaction, auth *crypto.AccountAuthenticator) (*PendingTransaction, error) {
	signed, err := tx.SignedTransactionWithAuthenticator(auth)
	if err != nil {
		return nil, errors.Wrapf(ErrSubmission, "failed to attach authenticator: %v", err)
	}

	resp, err := run(ctx, func() (*api.SubmitTransactionResponse, error) {
		return c.client.SubmitTransaction(signed)
	})
	if err != nil {
		return nil, errors.Wrapf(ErrSubmission, "%v", err)
	}

	return &PendingTransaction{Hash: resp.Hash}, nil
}

func (c *AptosClient) WaitForTransaction(ctx context.Context, hash string) (*ExecutedTransaction, error) {
	timeout := c.pollTimeout
	if deadline, ok := ctx.Deadline(); ok {
		// let ctx expire first so callers observe context.DeadlineExceeded
		timeout = time.Until(deadline) + pollSlack
	}

	opts := []any{aptos.PollTimeout(timeout)}
	if c.pollPeriod > 0 {
		opts = append(opts, aptos.PollPeriod(c.pollPeriod))
	}

	tx, err := run(ctx, func() (*api.UserTransaction, error) {
		return c.client.WaitForTransaction(hash, opts...)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to wait for transaction %s", hash)
	}

	return toExecuted(tx), nil
}

func (c *AptosClient) TransactionByHash(ctx context.Context, hash string) (*TransactionStatus, error) {
	tx, err := run(ctx, func() (*api.Transaction, error) {
		return c.client.TransactionByHash(hash)
	})
	if err != nil {
		var httpErr *aptos.HttpError
		if errors.As(err, &httpErr) && httpErr.StatusCode == 404 {
			return nil, errors.Wrapf(ErrTransactionNotFound, "hash %s", hash)
		}
		return nil, errors.Wrapf(err, "failed to get transaction %s", hash)
	}

	status := &TransactionStatus{Hash: hash}
	if tx.Type == api.TransactionVariantPending {
		return status, nil
	}

	user, err := tx.UserTransaction()
	if err != nil {
		return nil, errors.Wrapf(err, "transaction %s is not a user transaction", hash)
	}
	status.Executed = toExecuted(user)

	return status, nil
}

func (c *AptosClient) Balance(ctx context.Context, addr address.Address) (uint64, error) {
	account, err := ParseAddress(addr.String())
	if err != nil {
		return 0, err
	}

	balance, err := run(ctx, func() (uint64, error) {
		return c.client.AccountAPTBalance(account)
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to get balance of %s", addr)
	}

	return balance, nil
}

func (c *AptosClient) View(ctx context.Context, p *payload.Payload) ([]any, error) {
	entry, err := EntryFunction(p)
	if err != nil {
		return nil, err
	}

	values, err := run(ctx, func() ([]any, error) {
		return c.client.View(&aptos.ViewPayload{
			Module:   entry.Module,
			Function: entry.Function,
			ArgTypes: entry.ArgTypes,
			Args:     entry.Args,
		})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call view %s", p.Function)
	}

	return values, nil
}

func (c *AptosClient) Ping(ctx context.Context) error {
	_, err := run(ctx, func() (aptos.NodeInfo, error) {
		return c.client.Info()
	})
	if err != nil {
		return errors.Wrap(err, "failed to reach node")
	}
	return nil
}

// EntryFunction converts p into an SDK entry function with BCS encoded arguments.
func EntryFunction(p *payload.Payload) (*aptos.EntryFunction, error) {
	fn, err := payload.ParseFunction(p.Function)
	if err != nil {
		return nil, err
	}

	var moduleAddr aptos.AccountAddress
	if err := moduleAddr.ParseStringRelaxed(fn.ModuleAddress); err != nil {
		return nil, errors.Wrapf(err, "invalid module address %q", fn.ModuleAddress)
	}

	args, err := EncodeArguments(p.Arguments)
	if err != nil {
		return nil, err
	}

	return &aptos.EntryFunction{
		Module: aptos.ModuleId{
			Address: moduleAddr,
			Name:    fn.Module,
		},
		Function: fn.Name,
		ArgTypes: []aptos.TypeTag{},
		Args:     args,
	}, nil
}

// EncodeArguments BCS encodes each argument according to its Go type.
func EncodeArguments(args []any) ([][]byte, error) {
	encoded := make([][]byte, 0, len(args))

	for i, arg := range args {
		var (
			b   []byte
			err error
		)

		switch v := arg.(type) {
		case []byte:
			b, err = bcs.SerializeBytes(v)
		case string:
			b, err = bcs.SerializeBytes([]byte(v))
		case uint64:
			b, err = bcs.SerializeU64(v)
		case bool:
			b, err = bcs.SerializeBool(v)
		case payload.Address:
			addr, parseErr := ParseAddress(string(v))
			if parseErr != nil {
				return nil, errors.Wrapf(parseErr, "argument %d", i)
			}
			b, err = bcs.Serialize(&addr)
		default:
			return nil, errors.Wrapf(ErrUnsupportedArgument, "argument %d has type %T", i, arg)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode argument %d", i)
		}

		encoded = append(encoded, b)
	}

	return encoded, nil
}

func toExecuted(tx *api.UserTransaction) *ExecutedTransaction {
	events := make([]Event, 0, len(tx.Events))
	for _, e := range tx.Events {
		if e == nil {
			continue
		}
		events = append(events, Event{Type: e.Type, Data: e.Data})
	}

	return &ExecutedTransaction{
		Hash:     tx.Hash,
		Version:  tx.Version,
		Success:  tx.Success,
		VMStatus: tx.VmStatus,
		GasUsed:  tx.GasUsed,
		Events:   events,
	}
}

type result[T any] struct {
	value T
	err   error
}

// run executes f and returns early with ctx.Err() if ctx is done first.
func run[T any](ctx context.Context, f func() (T, error)) (T, error) {
	done := make(chan result[T], 1)

	go func() {
		v, err := f()
		done <- result[T]{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}
