package application

import (
	"math/big"

	"github.com/bnema/fundme-cli/internal/domain"
)

type DeployCommand struct {
	Owner domain.Address
	// PriceFeed defaults to the address of the configured feed.
	PriceFeed  domain.Address
	MinimumUSD *big.Int
}

type FundCommand struct {
	Caller domain.Address
	Value  *big.Int
}

type WithdrawCommand struct {
	Caller  domain.Address
	Variant domain.WithdrawVariant
}
