package ports

import "context"

// Locker serializes ledger operations across every process sharing the same
// state. The returned function releases the lock.
type Locker interface {
	Lock(ctx context.Context) (func() error, error)
	RLock(ctx context.Context) (func() error, error)
}
