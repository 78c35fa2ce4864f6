package transactions_test

import (
	"encoding/json"
	"strings"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/paypost/go-paypost/internal/test"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/stretchr/testify/mock"
)

const (
	testHash   = "0x5f3a"
	testWallet = "w1"
)

var (
	testAddress   = "0xabc" + strings.Repeat("0", 61)
	testPublicKey = strings.Repeat("0", 64)
	testSignature = strings.Repeat("ab", 64)
)

func signingRef() test.GenericPayload {
	return test.GenericPayload{
		"walletId":  testWallet,
		"publicKey": testPublicKey,
		"address":   testAddress,
	}
}

func withFields(base test.GenericPayload, fields test.GenericPayload) test.GenericPayload {
	for k, v := range fields {
		base[k] = v
	}
	return base
}

// acceptAll makes the chain and signer mocks accept and confirm any transaction.
func acceptAll(m *test.Mocks, executed *chain.ExecutedTransaction) {
	m.Chain.On("BuildTransaction", mock.Anything, mock.Anything, mock.Anything).Return(&aptos.RawTransaction{}, nil)
	m.Chain.On("SigningMessage", mock.Anything).Return([]byte("message"), nil)
	m.Chain.On("SubmitTransaction", mock.Anything, mock.Anything, mock.Anything).Return(&chain.PendingTransaction{Hash: testHash}, nil)
	m.Chain.On("WaitForTransaction", mock.Anything, testHash).Return(executed, nil)
	m.Signer.On("RawSign", mock.Anything, testWallet, "0x6d657373616765").Return(json.RawMessage(`{"signature":"0x`+testSignature+`"}`), nil)
}

func successful() *chain.ExecutedTransaction {
	return &chain.ExecutedTransaction{
		Hash:     testHash,
		Version:  42,
		Success:  true,
		VMStatus: "Executed successfully",
		GasUsed:  7,
	}
}
