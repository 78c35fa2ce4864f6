package transactions_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/test"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func transferBody(amount float64) test.GenericPayload {
	return withFields(signingRef(), test.GenericPayload{
		"toAddress": "def",
		"amount":    amount,
	})
}

func TestPostTransfer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		acceptAll(m, successful())

		res := test.PerformRequest(t, s, "POST", "/api/transactions/transfer", transferBody(1.5), nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body types.TransactionResponse
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, testHash, *body.TransactionHash)

		built, ok := m.Chain.Calls[0].Arguments.Get(2).(*payload.Payload)
		require.True(t, ok)
		assert.Equal(t, payload.TransferFunction, built.Function)
		assert.Equal(t, []any{payload.Address("0xdef"), uint64(150000000)}, built.Arguments)

		m.Recorder.AssertCalled(t, "RecordSubmitted", mock.Anything, mock.Anything)
	})
}

func TestPostTransferNegativeAmount(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		res := test.PerformRequest(t, s, "POST", "/api/transactions/transfer", transferBody(-1), nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var body types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, types.PublicHTTPErrorTypeInvalidPayload, body.Type)

		m.Chain.AssertNotCalled(t, "BuildTransaction", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPostTransferUnconfirmed(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		m.Chain.On("BuildTransaction", mock.Anything, mock.Anything, mock.Anything).Return(&aptos.RawTransaction{}, nil)
		m.Chain.On("SigningMessage", mock.Anything).Return([]byte("message"), nil)
		m.Chain.On("SubmitTransaction", mock.Anything, mock.Anything, mock.Anything).Return(&chain.PendingTransaction{Hash: testHash}, nil)
		m.Chain.On("WaitForTransaction", mock.Anything, testHash).
			Run(func(args mock.Arguments) {
				ctx := args.Get(0).(context.Context)
				<-ctx.Done()
			}).
			Return(nil, context.DeadlineExceeded)
		m.Signer.On("RawSign", mock.Anything, testWallet, mock.Anything).Return(json.RawMessage(`"`+testSignature+`"`), nil)

		res := test.PerformRequest(t, s, "POST", "/api/transactions/transfer", transferBody(1), nil)
		require.Equal(t, http.StatusGatewayTimeout, res.Result().StatusCode)

		var body types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, types.PublicHTTPErrorTypeSubmittedButUnconfirmed, body.Type)
		assert.Equal(t, testHash, body.TransactionHash)
	})
}

func TestPostTransferExecutionFailed(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		failed := successful()
		failed.Success = false
		failed.VMStatus = "Move abort in 0x1::coin: EINSUFFICIENT_BALANCE(0x10006)"
		acceptAll(m, failed)

		res := test.PerformRequest(t, s, "POST", "/api/transactions/transfer", transferBody(1), nil)
		require.Equal(t, http.StatusInternalServerError, res.Result().StatusCode)

		var body types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, types.PublicHTTPErrorTypeSubmissionFailure, body.Type)
		assert.Equal(t, testHash, body.TransactionHash)
		assert.Contains(t, body.Detail, "EINSUFFICIENT_BALANCE")
	})
}

func TestPostTransferInvalidSignerResponse(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		m.Chain.On("BuildTransaction", mock.Anything, mock.Anything, mock.Anything).Return(&aptos.RawTransaction{}, nil)
		m.Chain.On("SigningMessage", mock.Anything).Return([]byte("message"), nil)
		m.Signer.On("RawSign", mock.Anything, testWallet, mock.Anything).Return(json.RawMessage(`{"sig":"nope"}`), nil)

		res := test.PerformRequest(t, s, "POST", "/api/transactions/transfer", transferBody(1), nil)
		require.Equal(t, http.StatusInternalServerError, res.Result().StatusCode)

		var body types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, types.PublicHTTPErrorTypeSignerFailure, body.Type)

		m.Chain.AssertNotCalled(t, "SubmitTransaction", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPostTransferMalformedRecipient(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		body := transferBody(1)
		body["toAddress"] = "0xnothex"

		res := test.PerformRequest(t, s, "POST", "/api/transactions/transfer", body, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var errBody types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &errBody)
		assert.Equal(t, types.PublicHTTPErrorTypeInvalidPayload, errBody.Type)

		m.Chain.AssertNotCalled(t, "BuildTransaction", mock.Anything, mock.Anything, mock.Anything)
		m.Signer.AssertNotCalled(t, "RawSign", mock.Anything, mock.Anything, mock.Anything)
	})
}
