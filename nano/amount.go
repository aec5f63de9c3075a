package nano

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// 1 XNO = 10^30 raw. Display amounts are fixed to 6 fractional digits;
// anything below 10^24 raw disappears from the display form.
const rawExponent = 30

const displayDecimals = 6

// ToDisplay converts a raw amount to its XNO string, truncated to 6
// decimals. The division is integer-scaled, never binary floating point.
func ToDisplay(raw *big.Int) string {
	if raw == nil {
		return "0.000000"
	}
	return decimal.NewFromBigInt(raw, -rawExponent).Truncate(displayDecimals).StringFixed(displayDecimals)
}

// ToRaw parses an XNO display amount into raw. Negative, non-numeric and
// sub-raw precision input fails with ErrInvalidAmount.
func ToRaw(display string) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(display))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidAmount, "parse %q: %v", display, err)
	}
	if d.IsNegative() {
		return nil, errors.Wrapf(ErrInvalidAmount, "negative amount %q", display)
	}
	shifted := d.Shift(rawExponent)
	if !shifted.IsInteger() {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q finer than 1 raw", display)
	}
	return shifted.BigInt(), nil
}
