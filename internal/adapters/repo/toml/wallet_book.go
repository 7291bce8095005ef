package toml

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/bnema/fundme-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	walletsPathKey  = "wallets.path"
	walletsFileName = "wallets.toml"
)

// WalletEntry is one native balance held outside the ledger.
type WalletEntry struct {
	Address         domain.Address
	Balance         *big.Int
	RejectTransfers bool
}

// WalletBook keeps native balances in a TOML file. A wallet marked with
// RejectTransfers refuses incoming transfers, which is how a failing payout
// is reproduced locally.
type WalletBook struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.Wallet = (*WalletBook)(nil)

func NewWalletBook(cfg *viper.Viper) (*WalletBook, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path, err := resolvePath(cfg.GetString(walletsPathKey), walletsFileName)
	if err != nil {
		return nil, fmt.Errorf("resolve wallets path: %w", err)
	}

	return &WalletBook{path: path, mu: LockForPath(path)}, nil
}

func (b *WalletBook) BalanceOf(ctx context.Context, address domain.Address) (*big.Int, error) {
	entry, err := b.Lookup(ctx, address)
	if err != nil {
		return nil, err
	}
	return entry.Balance, nil
}

// Lookup returns an empty entry for addresses that were never credited.
func (b *WalletBook) Lookup(ctx context.Context, address domain.Address) (WalletEntry, error) {
	if err := ctx.Err(); err != nil {
		return WalletEntry{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	wallets, err := b.load()
	if err != nil {
		return WalletEntry{}, err
	}

	if entry, ok := wallets[address]; ok {
		return entry, nil
	}
	return WalletEntry{Address: address, Balance: new(big.Int)}, nil
}

func (b *WalletBook) List(ctx context.Context) ([]WalletEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	wallets, err := b.load()
	if err != nil {
		return nil, err
	}

	entries := make([]WalletEntry, 0, len(wallets))
	for _, entry := range wallets {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Address < entries[j].Address })

	return entries, nil
}

func (b *WalletBook) Debit(ctx context.Context, address domain.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	return b.update(ctx, func(wallets map[domain.Address]WalletEntry) error {
		entry := walletOrEmpty(wallets, address)
		if entry.Balance.Cmp(amount) < 0 {
			return fmt.Errorf("%w: %s holds %s, needs %s", domain.ErrInsufficientFunds, address, domain.FormatEther(entry.Balance), domain.FormatEther(amount))
		}
		entry.Balance = new(big.Int).Sub(entry.Balance, amount)
		wallets[address] = entry
		return nil
	})
}

func (b *WalletBook) Credit(ctx context.Context, address domain.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	return b.update(ctx, func(wallets map[domain.Address]WalletEntry) error {
		entry := walletOrEmpty(wallets, address)
		if entry.RejectTransfers {
			return fmt.Errorf("%w: %s", domain.ErrTransferRejected, address)
		}
		entry.Balance = new(big.Int).Add(entry.Balance, amount)
		wallets[address] = entry
		return nil
	})
}

// Mint adds amount to a wallet regardless of its transfer setting.
func (b *WalletBook) Mint(ctx context.Context, address domain.Address, amount *big.Int) error {
	return b.deposit(ctx, address, amount)
}

// Refund returns a debited amount. It is a rollback, not a transfer, so the
// reject flag does not apply.
func (b *WalletBook) Refund(ctx context.Context, address domain.Address, amount *big.Int) error {
	return b.deposit(ctx, address, amount)
}

func (b *WalletBook) SetRejectTransfers(ctx context.Context, address domain.Address, reject bool) error {
	return b.update(ctx, func(wallets map[domain.Address]WalletEntry) error {
		entry := walletOrEmpty(wallets, address)
		entry.RejectTransfers = reject
		wallets[address] = entry
		return nil
	})
}

func (b *WalletBook) deposit(ctx context.Context, address domain.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	return b.update(ctx, func(wallets map[domain.Address]WalletEntry) error {
		entry := walletOrEmpty(wallets, address)
		entry.Balance = new(big.Int).Add(entry.Balance, amount)
		wallets[address] = entry
		return nil
	})
}

// update holds the wallets file lock across load, mutate and write so
// concurrent fm processes never drop each other's changes.
func (b *WalletBook) update(ctx context.Context, mutate func(map[domain.Address]WalletEntry) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return UpdateFile(ctx, b.path, func() error {
		wallets, err := b.load()
		if err != nil {
			return err
		}
		if err := mutate(wallets); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		return WriteFile(b.path, toWalletFileSchema(wallets))
	})
}

func (b *WalletBook) load() (map[domain.Address]WalletEntry, error) {
	var file walletFileSchema
	if _, err := ReadFile(b.path, &file); err != nil {
		return nil, err
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}

	wallets := make(map[domain.Address]WalletEntry, len(file.Wallets))
	for _, item := range file.Wallets {
		address, err := domain.ParseAddress(item.Address)
		if err != nil {
			return nil, fmt.Errorf("decode wallets file: %w", err)
		}
		balance, err := domain.ParseWei(item.Balance)
		if err != nil {
			return nil, fmt.Errorf("decode wallets file: balance for %s: %w", address, err)
		}
		wallets[address] = WalletEntry{Address: address, Balance: balance, RejectTransfers: item.RejectTransfers}
	}

	return wallets, nil
}

func toWalletFileSchema(wallets map[domain.Address]WalletEntry) walletFileSchema {
	file := walletFileSchema{Wallets: make([]walletSchema, 0, len(wallets))}
	for _, entry := range wallets {
		file.Wallets = append(file.Wallets, walletSchema{
			Address:         string(entry.Address),
			Balance:         intString(entry.Balance),
			RejectTransfers: entry.RejectTransfers,
		})
	}
	sort.Slice(file.Wallets, func(i, j int) bool { return file.Wallets[i].Address < file.Wallets[j].Address })
	file.applyDefaults()

	return file
}

func walletOrEmpty(wallets map[domain.Address]WalletEntry, address domain.Address) WalletEntry {
	if entry, ok := wallets[address]; ok {
		return entry
	}
	return WalletEntry{Address: address, Balance: new(big.Int)}
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("%w: transfer amount must be non-negative", domain.ErrInvalidAmount)
	}
	return nil
}
