package toml

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/bnema/fundme-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	ledgerPathKey  = "ledger.path"
	ledgerFileName = "ledger.toml"
)

type LedgerRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.LedgerRepository = (*LedgerRepository)(nil)

func NewLedgerRepository(cfg *viper.Viper) (*LedgerRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path, err := resolvePath(cfg.GetString(ledgerPathKey), ledgerFileName)
	if err != nil {
		return nil, fmt.Errorf("resolve ledger path: %w", err)
	}

	return &LedgerRepository{path: path, mu: LockForPath(path)}, nil
}

func (r *LedgerRepository) Path() string {
	return r.path
}

func (r *LedgerRepository) Get(ctx context.Context) (domain.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return domain.Ledger{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Ledger{}, err
	}
	if file.Ledger == nil {
		return domain.Ledger{}, domain.ErrLedgerNotFound
	}

	ledger, err := fromLedgerSchema(*file.Ledger)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("decode ledger file: %w", err)
	}

	return ledger, nil
}

func (r *LedgerRepository) Save(ctx context.Context, ledger domain.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toLedgerSchema(ledger)
	file.Ledger = &encoded

	if err := ctx.Err(); err != nil {
		return err
	}

	return WriteFile(r.path, file)
}

func (r *LedgerRepository) readSchema() (ledgerFileSchema, error) {
	var file ledgerFileSchema
	if _, err := ReadFile(r.path, &file); err != nil {
		return ledgerFileSchema{}, err
	}
	if err := file.validateVersion(); err != nil {
		return ledgerFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func toLedgerSchema(ledger domain.Ledger) ledgerSchema {
	funders := make([]string, 0, len(ledger.Funders))
	amounts := make([]amountSchema, 0, len(ledger.Funders))
	for _, funder := range ledger.Funders {
		funders = append(funders, string(funder))
		amounts = append(amounts, amountSchema{
			Funder: string(funder),
			Amount: ledger.AmountFunded(funder).String(),
		})
	}

	return ledgerSchema{
		Owner:      string(ledger.Owner),
		PriceFeed:  string(ledger.PriceFeed),
		MinimumUSD: intString(ledger.MinimumUSD),
		Balance:    intString(ledger.Balance),
		Funders:    funders,
		Amounts:    amounts,
	}
}

func fromLedgerSchema(entry ledgerSchema) (domain.Ledger, error) {
	owner, err := domain.ParseAddress(entry.Owner)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("owner: %w", err)
	}
	priceFeed, err := domain.ParseAddress(entry.PriceFeed)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("price feed: %w", err)
	}
	minimumUSD, err := domain.ParseWei(entry.MinimumUSD)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("minimum usd: %w", err)
	}
	balance, err := domain.ParseWei(entry.Balance)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("balance: %w", err)
	}

	funders := make([]domain.Address, 0, len(entry.Funders))
	for _, raw := range entry.Funders {
		funder, err := domain.ParseAddress(raw)
		if err != nil {
			return domain.Ledger{}, fmt.Errorf("funder: %w", err)
		}
		funders = append(funders, funder)
	}

	amounts := make(map[domain.Address]*big.Int, len(entry.Amounts))
	for _, item := range entry.Amounts {
		funder, err := domain.ParseAddress(item.Funder)
		if err != nil {
			return domain.Ledger{}, fmt.Errorf("amount funder: %w", err)
		}
		amount, err := domain.ParseWei(item.Amount)
		if err != nil {
			return domain.Ledger{}, fmt.Errorf("amount for %s: %w", funder, err)
		}
		amounts[funder] = amount
	}

	return domain.Ledger{
		Owner:      owner,
		PriceFeed:  priceFeed,
		MinimumUSD: minimumUSD,
		Funders:    funders,
		Amounts:    amounts,
		Balance:    balance,
	}, nil
}

func intString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
