package interact

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ToBaseUnits converts a UI amount (e.g. "1.5") into base units for a mint
// with the given decimals. Amounts with more precision than the mint supports
// are rejected rather than rounded.
func ToBaseUnits(amount string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s: %s", amount, err.Error())
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s: negative", amount)
	}

	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s: exceeds %d decimals", amount, decimals)
	}

	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s: overflows u64", amount)
	}
	return bi.Uint64(), nil
}

// FromBaseUnits renders base units as a UI amount
func FromBaseUnits(amount uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals)).String()
}
