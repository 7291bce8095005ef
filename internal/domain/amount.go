package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the scale of the native value unit (wei per ether).
const NativeDecimals = 18

// ParseEther converts a human amount such as "0.1" into wei.
func ParseEther(raw string) (*big.Int, error) {
	return parseScaled(raw, NativeDecimals)
}

// ParseUSD converts a dollar amount such as "50" into USD with 18 decimals.
func ParseUSD(raw string) (*big.Int, error) {
	return parseScaled(raw, NativeDecimals)
}

// ParseWei parses a base-10 integer amount of wei.
func ParseWei(raw string) (*big.Int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return new(big.Int), nil
	}

	value, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidAmount, raw)
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, raw)
	}

	return value, nil
}

func FormatEther(wei *big.Int) string {
	return formatScaled(wei, NativeDecimals)
}

// FormatUSD renders an 18-decimal USD amount with cents.
func FormatUSD(usd *big.Int) string {
	if usd == nil {
		return "0.00"
	}
	return decimal.NewFromBigInt(usd, -NativeDecimals).StringFixed(2)
}

func parseScaled(raw string, decimals int32) (*big.Int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, raw, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, raw)
	}

	scaled := d.Shift(decimals)
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, raw, decimals)
	}

	return scaled.BigInt(), nil
}

func formatScaled(v *big.Int, decimals int32) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -decimals).String()
}

func cloneInt(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
