package sqlite

import (
	"context"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/bnema/fundme-cli/internal/ports"
)

// Noop discards events. It is used when journal.path is set to "off".
type Noop struct{}

var _ ports.Journal = Noop{}

func (Noop) Record(context.Context, domain.Event) error        { return nil }
func (Noop) List(context.Context, int) ([]domain.Event, error) { return nil, nil }
func (Noop) Close() error                                      { return nil }
