package domain

import (
	"fmt"
	"math/big"
	"time"
)

// Price is one answer of the reference-currency rate for the native unit.
// Answer carries Decimals of fixed-point precision (8 for USD aggregators).
type Price struct {
	Answer    *big.Int
	Decimals  uint8
	RoundID   uint64
	UpdatedAt time.Time
}

func (p Price) Validate() error {
	if p.Answer == nil || p.Answer.Sign() <= 0 {
		return fmt.Errorf("%w: answer must be positive", ErrInvalidPrice)
	}
	if p.Decimals > 36 {
		return fmt.Errorf("%w: unsupported decimals %d", ErrInvalidPrice, p.Decimals)
	}

	return nil
}

func (p Price) IsStale(now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}

	if p.UpdatedAt.IsZero() {
		return true
	}

	return now.Sub(p.UpdatedAt) > maxAge
}

// ConversionRate returns the reference value of wei as USD with 18 decimals, rounded down.
func (p Price) ConversionRate(wei *big.Int) *big.Int {
	if p.Answer == nil || wei == nil {
		return new(big.Int)
	}

	value := new(big.Int).Mul(wei, p.Answer)
	return value.Quo(value, pow10(p.Decimals))
}

// MeetsMinimum compares without dividing: wei*answer >= minimumUSD*10^decimals.
func (p Price) MeetsMinimum(wei, minimumUSD *big.Int) bool {
	if p.Answer == nil || p.Answer.Sign() <= 0 {
		return false
	}

	left := new(big.Int).Mul(cloneInt(wei), p.Answer)
	right := new(big.Int).Mul(cloneInt(minimumUSD), pow10(p.Decimals))
	return left.Cmp(right) >= 0
}

// MinimumNative is the smallest wei amount for which MeetsMinimum holds.
func (p Price) MinimumNative(minimumUSD *big.Int) *big.Int {
	if p.Answer == nil || p.Answer.Sign() <= 0 {
		return nil
	}

	numerator := new(big.Int).Mul(cloneInt(minimumUSD), pow10(p.Decimals))
	quotient, remainder := new(big.Int).QuoRem(numerator, p.Answer, new(big.Int))
	if remainder.Sign() != 0 {
		quotient.Add(quotient, big.NewInt(1))
	}

	return quotient
}

// Rate renders the answer as a decimal string in the reference currency.
func (p Price) Rate() string {
	if p.Answer == nil {
		return "0"
	}
	return formatScaled(p.Answer, int32(p.Decimals))
}
