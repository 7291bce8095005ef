package ports

import (
	"context"

	"github.com/bnema/fundme-cli/internal/domain"
)

type Journal interface {
	Record(ctx context.Context, event domain.Event) error
	// List returns up to limit events, newest first. A non-positive limit returns all.
	List(ctx context.Context, limit int) ([]domain.Event, error)
	Close() error
}
