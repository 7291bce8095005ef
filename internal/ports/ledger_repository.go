package ports

import (
	"context"

	"github.com/bnema/fundme-cli/internal/domain"
)

// LedgerRepository persists the single deployed ledger. Get returns
// domain.ErrLedgerNotFound until a ledger has been saved.
type LedgerRepository interface {
	Get(ctx context.Context) (domain.Ledger, error)
	Save(ctx context.Context, ledger domain.Ledger) error
}
