package address_test

import (
	"strings"
	"testing"

	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, address.Address("0xabc"), address.NormalizeAddress("abc"))
	assert.Equal(t, address.Address("0xabc"), address.NormalizeAddress("0xabc"))
	assert.Equal(t, address.Address("0x"), address.NormalizeAddress(""))
}

func TestNormalizePublicKey(t *testing.T) {
	key := strings.Repeat("ab", 32)

	tests := []struct {
		name  string
		input string
	}{
		{"plain", key},
		{"0x prefixed", "0x" + key},
		{"leading zero byte", "00" + key},
		{"0x prefixed leading zero byte", "0x00" + key},
		{"uncompressed", "04" + strings.Repeat("cd", 32) + key},
		{"0x prefixed uncompressed", "0x04" + strings.Repeat("cd", 32) + key},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := address.NormalizePublicKey(tt.input)
			require.NoError(t, err)
			assert.Equal(t, address.PublicKey(key), res)
			assert.Len(t, res.String(), address.PublicKeyHexLength)
		})
	}
}

func TestNormalizePublicKeyInvalidLength(t *testing.T) {
	for _, n := range []int{0, 1, 50, 62, 63, 65, 67, 128, 129, 131} {
		_, err := address.NormalizePublicKey(strings.Repeat("a", n))
		require.ErrorIs(t, err, address.ErrInvalidPublicKeyLength, "length %d", n)
	}

	// 66 characters without the leading zero byte are not a known encoding
	_, err := address.NormalizePublicKey("11" + strings.Repeat("ab", 32))
	require.ErrorIs(t, err, address.ErrInvalidPublicKeyLength)
}
