package signer_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/paypost/go-paypost/internal/test/mocks"
	"github.com/paypost/go-paypost/internal/wallet/signer"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestSignature(t *testing.T) {
	client := &mocks.SignerClient{}
	client.On("RawSign", mock.Anything, "w1", "0x0102ff").
		Return(json.RawMessage(`{"data":{"signature":"0x`+rawSig+`","encoding":"hex"}}`), nil).Once()

	s := signer.NewService(client)
	sig, err := s.RequestSignature(context.Background(), "w1", []byte{0x01, 0x02, 0xff})
	require.NoError(t, err)
	assert.Equal(t, signer.Signature(rawSig), sig)

	client.AssertExpectations(t)
}

func TestRequestSignatureSameValueAcrossShapes(t *testing.T) {
	shapes := []string{
		`"` + rawSig + `"`,
		`{"signature":"0x` + rawSig + `"}`,
		`{"data":"0x` + rawSig + `"}`,
	}

	var got []signer.Signature
	for _, shape := range shapes {
		client := &mocks.SignerClient{}
		client.On("RawSign", mock.Anything, "w1", mock.Anything).Return(json.RawMessage(shape), nil)

		sig, err := signer.NewService(client).RequestSignature(context.Background(), "w1", []byte("msg"))
		require.NoError(t, err)
		got = append(got, sig)
	}

	assert.Equal(t, got[0], got[1])
	assert.Equal(t, got[1], got[2])
}

func TestRequestSignatureClientError(t *testing.T) {
	client := &mocks.SignerClient{}
	client.On("RawSign", mock.Anything, "w1", mock.Anything).Return(nil, errors.Wrap(signer.ErrSignerRequest, "boom"))

	_, err := signer.NewService(client).RequestSignature(context.Background(), "w1", []byte("msg"))
	require.ErrorIs(t, err, signer.ErrSignerRequest)
}

func TestRequestSignatureInvalidResponse(t *testing.T) {
	client := &mocks.SignerClient{}
	client.On("RawSign", mock.Anything, "w1", mock.Anything).Return(json.RawMessage(`{"result":"nope"}`), nil)

	_, err := signer.NewService(client).RequestSignature(context.Background(), "w1", []byte("msg"))
	require.ErrorIs(t, err, signer.ErrInvalidSignerResponse)
}

func TestRequestSignatureEmptyWallet(t *testing.T) {
	client := &mocks.SignerClient{}

	_, err := signer.NewService(client).RequestSignature(context.Background(), "", []byte("msg"))
	require.ErrorIs(t, err, signer.ErrSignerRequest)
	client.AssertNotCalled(t, "RawSign", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateWallet(t *testing.T) {
	client := &mocks.SignerClient{}
	client.On("CreateWallet", mock.Anything, "did:privy:1", signer.ChainTypeAptos).
		Return(&signer.CreatedWallet{ID: "w1", Address: "0xabc"}, nil)

	w, err := signer.NewService(client).CreateWallet(context.Background(), "did:privy:1")
	require.NoError(t, err)
	assert.Equal(t, "w1", w.ID)

	client2 := &mocks.SignerClient{}
	client2.On("CreateWallet", mock.Anything, "did:privy:1", signer.ChainTypeAptos).
		Return(nil, signer.ErrWalletAlreadyExists)

	_, err = signer.NewService(client2).CreateWallet(context.Background(), "did:privy:1")
	require.ErrorIs(t, err, signer.ErrWalletAlreadyExists)
}
