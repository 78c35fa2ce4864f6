package payload

import (
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// OctasPerToken is the number of octas in one token (8 decimals).
const OctasPerToken = 100_000_000

const tokenDecimals = 8

var ErrAmountOutOfRange = errors.New("amount out of range")

// ToOctas converts a decimal token amount into integer octas, floor(amount * 1e8). The
// conversion runs on the shortest decimal representation of amount, so amounts with up to
// eight decimals convert exactly; anything below one octa is truncated, never rounded.
func ToOctas(amount float64) (uint64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, errors.Wrapf(ErrAmountOutOfRange, "got %v", amount)
	}

	octas := decimal.NewFromFloat(amount).Shift(tokenDecimals).Floor()
	if octas.GreaterThan(decimal.NewFromUint64(math.MaxUint64)) {
		return 0, errors.Wrapf(ErrAmountOutOfRange, "got %v", amount)
	}

	return octas.BigInt().Uint64(), nil
}

// FromOctas converts integer octas back into a decimal token amount.
func FromOctas(octas uint64) decimal.Decimal {
	return decimal.NewFromUint64(octas).Shift(-tokenDecimals)
}
