package txn

import (
	"context"

	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/payload"
)

// Service signs transactions with a custodial wallet and submits them.
type Service interface {
	// SignAndSubmitTransaction runs normalize, build, sign, assemble, submit and wait. It returns
	// once the transaction is committed or the confirmation timeout passes.
	SignAndSubmitTransaction(ctx context.Context, req *Request) (*Result, error)
	// GetTransaction reports the node's current view of hash.
	GetTransaction(ctx context.Context, hash string) (*chain.TransactionStatus, error)
}

// Request identifies the signing wallet and the call to make. PublicKey and Address are
// normalized by the pipeline.
type Request struct {
	WalletID  string
	PublicKey string
	Address   string
	Payload   *payload.Payload
}

type Result struct {
	TransactionHash string
	Transaction     *chain.ExecutedTransaction
}
