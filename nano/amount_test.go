package nano

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

func TestToDisplay(t *testing.T) {
	tests := []struct {
		raw  *big.Int
		want string
	}{
		{nil, "0.000000"},
		{big.NewInt(0), "0.000000"},
		{pow10(30), "1.000000"},
		{pow10(24), "0.000001"},
		{new(big.Int).Sub(pow10(24), big.NewInt(1)), "0.000000"}, // sub-display dust truncates
		{new(big.Int).Mul(big.NewInt(125), pow10(28)), "1.250000"},
		{new(big.Int).Mul(big.NewInt(123456789), pow10(24)), "123.456789"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToDisplay(tt.raw))
	}
}

func TestToRaw(t *testing.T) {
	tests := []struct {
		display string
		want    *big.Int
	}{
		{"0", big.NewInt(0)},
		{"1", pow10(30)},
		{"0.000001", pow10(24)},
		{"1.25", new(big.Int).Mul(big.NewInt(125), pow10(28))},
		{" 2.5 ", new(big.Int).Mul(big.NewInt(25), pow10(29))},
	}
	for _, tt := range tests {
		got, err := ToRaw(tt.display)
		require.NoError(t, err, tt.display)
		assert.Zero(t, tt.want.Cmp(got), tt.display)
	}
}

func TestToRawErrors(t *testing.T) {
	for _, display := range []string{
		"",
		"abc",
		"-1",
		"-0.000001",
		"1,5",
		"0.0000000000000000000000000000001", // finer than 1 raw
	} {
		_, err := ToRaw(display)
		require.Error(t, err, display)
		assert.True(t, errors.Is(err, ErrInvalidAmount), display)
	}
}

// The conversion's core contract: any amount already expressed with at
// most 6 decimals survives a raw round trip unchanged.
func TestRoundTrip(t *testing.T) {
	for _, display := range []string{
		"0.000000",
		"0.000001",
		"1.000000",
		"1.250000",
		"123.456789",
		"340282366.920938",
		"999999999999.999999",
	} {
		raw, err := ToRaw(display)
		require.NoError(t, err)
		assert.Equal(t, display, ToDisplay(raw))
	}

	// the other direction may truncate: raw below 10^24 has no display form
	dust := new(big.Int).Sub(pow10(24), big.NewInt(1))
	back, err := ToRaw(ToDisplay(dust))
	require.NoError(t, err)
	assert.Zero(t, back.Sign())
}
