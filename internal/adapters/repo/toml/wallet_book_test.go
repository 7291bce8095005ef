package toml

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletBookCreditDebit(t *testing.T) {
	t.Parallel()

	book := newWalletBook(t, filepath.Join(t.TempDir(), "wallets.toml"))
	ctx := context.Background()

	balance, err := book.BalanceOf(ctx, funderB)
	require.NoError(t, err)
	assert.Zero(t, balance.Sign())

	require.NoError(t, book.Credit(ctx, funderB, big.NewInt(100)))
	require.NoError(t, book.Debit(ctx, funderB, big.NewInt(40)))

	balance, err = book.BalanceOf(ctx, funderB)
	require.NoError(t, err)
	assert.Equal(t, "60", balance.String())

	err = book.Debit(ctx, funderB, big.NewInt(61))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	err = book.Debit(ctx, funderC, big.NewInt(1))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	err = book.Credit(ctx, funderB, big.NewInt(-1))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestWalletBookRejectingWallet(t *testing.T) {
	t.Parallel()

	book := newWalletBook(t, filepath.Join(t.TempDir(), "wallets.toml"))
	ctx := context.Background()

	require.NoError(t, book.SetRejectTransfers(ctx, ownerAddr, true))

	err := book.Credit(ctx, ownerAddr, big.NewInt(5))
	require.ErrorIs(t, err, domain.ErrTransferRejected)

	require.NoError(t, book.Mint(ctx, ownerAddr, big.NewInt(5)))
	entry, err := book.Lookup(ctx, ownerAddr)
	require.NoError(t, err)
	assert.True(t, entry.RejectTransfers)
	assert.Equal(t, "5", entry.Balance.String())

	require.NoError(t, book.SetRejectTransfers(ctx, ownerAddr, false))
	require.NoError(t, book.Credit(ctx, ownerAddr, big.NewInt(5)))

	entries, err := book.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "10", entries[0].Balance.String())
}

func TestWalletBookRefundIgnoresRejectFlag(t *testing.T) {
	t.Parallel()

	book := newWalletBook(t, filepath.Join(t.TempDir(), "wallets.toml"))
	ctx := context.Background()

	require.NoError(t, book.Mint(ctx, funderB, big.NewInt(10)))
	require.NoError(t, book.SetRejectTransfers(ctx, funderB, true))
	require.NoError(t, book.Debit(ctx, funderB, big.NewInt(10)))

	require.ErrorIs(t, book.Credit(ctx, funderB, big.NewInt(10)), domain.ErrTransferRejected)
	require.NoError(t, book.Refund(ctx, funderB, big.NewInt(10)))

	balance, err := book.BalanceOf(ctx, funderB)
	require.NoError(t, err)
	assert.Equal(t, "10", balance.String())

	require.ErrorIs(t, book.Refund(ctx, funderB, nil), domain.ErrInvalidAmount)
}

func TestWalletBookUpdateWaitsForFileLock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wallets.toml")
	book := newWalletBook(t, path)

	unlock, err := NewFileLock(path).Lock(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = book.Mint(ctx, funderB, big.NewInt(1))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock())
	require.NoError(t, book.Mint(context.Background(), funderB, big.NewInt(1)))
}

func TestWalletBookFileIsSortedAndPrivate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wallets.toml")
	book := newWalletBook(t, path)
	ctx := context.Background()

	require.NoError(t, book.Mint(ctx, funderC, big.NewInt(1)))
	require.NoError(t, book.Mint(ctx, funderB, big.NewInt(2)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := book.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, funderB, entries[0].Address)
	assert.Equal(t, funderC, entries[1].Address)
}

func TestWalletBookConcurrentMintsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wallets.toml")
	bookA := newWalletBook(t, path)
	bookB := newWalletBook(t, path)

	const perBookWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perBookWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	for _, book := range []*WalletBook{bookA, bookB} {
		book := book
		go func() {
			defer wg.Done()
			<-start
			for i := 0; i < perBookWrites; i++ {
				errCh <- book.Mint(context.Background(), funderB, big.NewInt(1))
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	balance, err := bookA.BalanceOf(context.Background(), funderB)
	require.NoError(t, err)
	assert.Equal(t, "100", balance.String())
}

func newWalletBook(t *testing.T, path string) *WalletBook {
	t.Helper()

	config := viper.New()
	config.Set("wallets.path", path)
	book, err := NewWalletBook(config)
	require.NoError(t, err)
	return book
}
