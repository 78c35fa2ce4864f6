package transactions

import (
	"github.com/go-openapi/swag"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/txn"
)

func toTransactionResponse(res *txn.Result) *types.TransactionResponse {
	return &types.TransactionResponse{
		Success:         swag.Bool(true),
		TransactionHash: swag.String(res.TransactionHash),
		Result:          toTransactionResult(res.Transaction),
	}
}

func toTransactionResult(executed *chain.ExecutedTransaction) *types.TransactionResult {
	if executed == nil {
		return nil
	}

	events := make([]*types.TransactionEvent, 0, len(executed.Events))
	for _, e := range executed.Events {
		events = append(events, &types.TransactionEvent{
			Type: e.Type,
			Data: e.Data,
		})
	}

	return &types.TransactionResult{
		Hash:     swag.String(executed.Hash),
		Version:  executed.Version,
		Success:  swag.Bool(executed.Success),
		VMStatus: executed.VMStatus,
		GasUsed:  executed.GasUsed,
		Events:   events,
	}
}

func signingRequest(ref types.WalletSigningRef) *txn.Request {
	return &txn.Request{
		WalletID:  swag.StringValue(ref.WalletID),
		PublicKey: swag.StringValue(ref.PublicKey),
		Address:   swag.StringValue(ref.Address),
	}
}
