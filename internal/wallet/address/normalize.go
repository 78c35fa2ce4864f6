package address

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	hexPrefix = "0x"

	// PublicKeyHexLength is the length of a normalized Ed25519 public key (32 bytes).
	PublicKeyHexLength = 64

	prefixedPublicKeyHexLength     = 66
	uncompressedPublicKeyHexLength = 130
)

var ErrInvalidPublicKeyLength = errors.New("invalid public key length")

// Address is a 0x-prefixed account address.
type Address string

func (a Address) String() string {
	return string(a)
}

// PublicKey is a 64 character hex encoded Ed25519 public key without 0x prefix.
type PublicKey string

func (k PublicKey) String() string {
	return string(k)
}

// NormalizeAddress prefixes input with 0x if it is missing. The address is not validated otherwise.
func NormalizeAddress(input string) Address {
	if strings.HasPrefix(input, hexPrefix) {
		return Address(input)
	}

	return Address(hexPrefix + input)
}

// NormalizePublicKey reduces the encodings the custody provider hands out to a plain 32 byte key:
// an optional 0x prefix is stripped, a leading 00 byte of a 33 byte key is dropped and of a
// 65 byte uncompressed key only the last 32 bytes are kept.
func NormalizePublicKey(input string) (PublicKey, error) {
	key := strings.TrimPrefix(input, hexPrefix)

	switch {
	case len(key) == prefixedPublicKeyHexLength && strings.HasPrefix(key, "00"):
		key = key[2:]
	case len(key) == uncompressedPublicKeyHexLength:
		key = key[len(key)-PublicKeyHexLength:]
	}

	if len(key) != PublicKeyHexLength {
		return "", errors.Wrapf(ErrInvalidPublicKeyLength, "expected %d hex characters, got %d", PublicKeyHexLength, len(key))
	}

	return PublicKey(key), nil
}
