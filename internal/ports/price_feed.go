package ports

import (
	"context"

	"github.com/bnema/fundme-cli/internal/domain"
)

// PriceFeed is a read-only source of the native unit's reference-currency rate.
// LatestPrice must not have side effects.
type PriceFeed interface {
	Address() domain.Address
	LatestPrice(ctx context.Context) (domain.Price, error)
}
