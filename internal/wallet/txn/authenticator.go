package txn

import (
	"github.com/aptos-labs/aptos-go-sdk/bcs"
	"github.com/aptos-labs/aptos-go-sdk/crypto"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/signer"
	"github.com/pkg/errors"
)

// AssembleAuthenticator pairs a normalized public key with a signature into an Ed25519 account
// authenticator. Each step fails with its own error so the faulty input can be identified.
func AssembleAuthenticator(pk address.PublicKey, sig signer.Signature) (*crypto.AccountAuthenticator, error) {
	pkBytes, err := hexutil.Decode("0x" + pk.String())
	if err != nil {
		return nil, errors.Wrapf(ErrEd25519PublicKey, "decode: %v", err)
	}

	pubKey := &crypto.Ed25519PublicKey{}
	if err := pubKey.FromBytes(pkBytes); err != nil {
		return nil, errors.Wrapf(ErrEd25519PublicKey, "%v", err)
	}

	sigBytes, err := hexutil.Decode("0x" + sig.String())
	if err != nil {
		return nil, errors.Wrapf(ErrEd25519Signature, "decode: %v", err)
	}

	signature := &crypto.Ed25519Signature{}
	if err := signature.FromBytes(sigBytes); err != nil {
		return nil, errors.Wrapf(ErrEd25519Signature, "%v", err)
	}

	auth := &crypto.AccountAuthenticator{
		Variant: crypto.AccountAuthenticatorEd25519,
		Auth: &crypto.Ed25519Authenticator{
			PubKey: pubKey,
			Sig:    signature,
		},
	}

	if _, err := bcs.Serialize(auth); err != nil {
		return nil, errors.Wrapf(ErrAuthenticatorAssembly, "%v", err)
	}

	return auth, nil
}
