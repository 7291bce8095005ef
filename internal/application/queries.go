package application

import (
	"math/big"

	"github.com/bnema/fundme-cli/internal/domain"
)

type FundResult struct {
	Funder    domain.Address
	Value     *big.Int
	ValueUSD  *big.Int
	Total     *big.Int
	Pool      *big.Int
	NewFunder bool
}

type WithdrawResult struct {
	Owner   domain.Address
	Amount  *big.Int
	Funders int
	Variant domain.WithdrawVariant
}

type FunderStatus struct {
	Address domain.Address
	Amount  *big.Int
}

type Status struct {
	Owner         domain.Address
	PriceFeed     domain.Address
	MinimumUSD    *big.Int
	MinimumNative *big.Int
	Price         domain.Price
	Pool          *big.Int
	PoolUSD       *big.Int
	Funders       []FunderStatus
}
