package ports

import (
	"context"
	"math/big"

	"github.com/bnema/fundme-cli/internal/domain"
)

// Wallet holds native balances outside the ledger. Credit is a transfer and
// may be refused by the recipient; Refund returns a prior Debit and may not.
type Wallet interface {
	BalanceOf(ctx context.Context, address domain.Address) (*big.Int, error)
	Debit(ctx context.Context, address domain.Address, amount *big.Int) error
	Credit(ctx context.Context, address domain.Address, amount *big.Int) error
	Refund(ctx context.Context, address domain.Address, amount *big.Int) error
}
