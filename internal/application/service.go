package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/bnema/fundme-cli/internal/ports"
)

var ErrUnsupportedWithdrawVariant = errors.New("unsupported withdraw variant")

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxPriceAge rejects feed answers older than maxAge. Zero disables the check.
func WithMaxPriceAge(maxAge time.Duration) Option {
	return func(s *Service) {
		s.maxPriceAge = maxAge
	}
}

// WithLocker adds a lock shared with other processes using the same ledger.
// Mutating operations hold it exclusively from load to final save; queries
// hold it shared.
func WithLocker(locker ports.Locker) Option {
	return func(s *Service) {
		s.locker = locker
	}
}

// Service runs ledger operations one at a time against the configured ports.
type Service struct {
	mu     sync.Mutex
	locker ports.Locker

	ledgers ports.LedgerRepository
	feed    ports.PriceFeed
	wallet  ports.Wallet
	journal ports.Journal
	clock   ports.Clock

	logger      *slog.Logger
	maxPriceAge time.Duration
}

func NewService(ledgers ports.LedgerRepository, feed ports.PriceFeed, wallet ports.Wallet, journal ports.Journal, clock ports.Clock, opts ...Option) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &Service{
		ledgers: ledgers,
		feed:    feed,
		wallet:  wallet,
		journal: journal,
		clock:   clock,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Deploy(ctx context.Context, cmd DeployCommand) (domain.Ledger, error) {
	release, err := s.acquire(ctx, false)
	if err != nil {
		return domain.Ledger{}, err
	}
	defer release()

	if _, err := s.ledgers.Get(ctx); err == nil {
		return domain.Ledger{}, domain.ErrLedgerExists
	} else if !errors.Is(err, domain.ErrLedgerNotFound) {
		return domain.Ledger{}, fmt.Errorf("get ledger: %w", err)
	}

	priceFeed := cmd.PriceFeed
	if priceFeed.IsZero() {
		priceFeed = s.feed.Address()
	}

	ledger, err := domain.NewLedger(cmd.Owner, priceFeed, cmd.MinimumUSD)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("new ledger: %w", err)
	}
	if err := s.ledgers.Save(ctx, ledger); err != nil {
		return domain.Ledger{}, fmt.Errorf("save ledger: %w", err)
	}

	s.logger.Info("ledger deployed", "owner", ledger.Owner, "price_feed", ledger.PriceFeed, "minimum_usd", domain.FormatUSD(ledger.MinimumUSD))
	s.record(ctx, domain.Event{Kind: domain.EventDeployed, Actor: ledger.Owner, Amount: new(big.Int)})

	return ledger, nil
}

func (s *Service) Fund(ctx context.Context, cmd FundCommand) (FundResult, error) {
	release, err := s.acquire(ctx, false)
	if err != nil {
		return FundResult{}, err
	}
	defer release()

	ledger, err := s.load(ctx)
	if err != nil {
		return FundResult{}, err
	}
	price, err := s.latestPrice(ctx, ledger)
	if err != nil {
		return FundResult{}, err
	}

	value := new(big.Int)
	if cmd.Value != nil {
		value.Set(cmd.Value)
	}
	_, known := ledger.Amounts[cmd.Caller]

	if err := ledger.Fund(cmd.Caller, value, price); err != nil {
		s.logger.Debug("fund rejected", "funder", cmd.Caller, "value_wei", value.String(), "error", err)
		return FundResult{}, err
	}
	if err := s.wallet.Debit(ctx, cmd.Caller, value); err != nil {
		return FundResult{}, fmt.Errorf("debit funder wallet: %w", err)
	}
	if err := s.ledgers.Save(ctx, ledger); err != nil {
		if refundErr := s.wallet.Refund(context.WithoutCancel(ctx), cmd.Caller, value); refundErr != nil {
			return FundResult{}, fmt.Errorf("save ledger and refund funder: %w", errors.Join(err, refundErr))
		}
		return FundResult{}, fmt.Errorf("save ledger: %w", err)
	}

	result := FundResult{
		Funder:    cmd.Caller,
		Value:     value,
		ValueUSD:  price.ConversionRate(value),
		Total:     ledger.AmountFunded(cmd.Caller),
		Pool:      new(big.Int).Set(ledger.Balance),
		NewFunder: !known,
	}

	s.logger.Info("funded", "funder", cmd.Caller, "value_wei", value.String(), "pool_wei", result.Pool.String(), "funders", ledger.FunderCount())
	s.record(ctx, domain.Event{Kind: domain.EventFunded, Actor: cmd.Caller, Amount: value, Funders: ledger.FunderCount()})

	return result, nil
}

// Withdraw drains the pool to the owner. The reset ledger is persisted before
// the owner is credited; if crediting fails the persisted state is restored.
func (s *Service) Withdraw(ctx context.Context, cmd WithdrawCommand) (WithdrawResult, error) {
	variant := cmd.Variant
	if variant == "" {
		variant = domain.WithdrawStandard
	}
	if !variant.Valid() {
		return WithdrawResult{}, fmt.Errorf("%w: %q", ErrUnsupportedWithdrawVariant, variant)
	}

	release, err := s.acquire(ctx, false)
	if err != nil {
		return WithdrawResult{}, err
	}
	defer release()

	ledger, err := s.load(ctx)
	if err != nil {
		return WithdrawResult{}, err
	}
	previous := ledger.Clone()
	funders := ledger.FunderCount()

	persisted := false
	payout := func(to domain.Address, amount *big.Int) error {
		if err := s.ledgers.Save(ctx, ledger); err != nil {
			return fmt.Errorf("save drained ledger: %w", err)
		}
		persisted = true

		if err := s.wallet.Credit(ctx, to, amount); err != nil {
			return fmt.Errorf("credit owner wallet: %w", err)
		}
		return nil
	}

	var amount *big.Int
	switch variant {
	case domain.WithdrawCheaper:
		amount, err = ledger.CheaperWithdraw(cmd.Caller, payout)
	default:
		amount, err = ledger.Withdraw(cmd.Caller, payout)
	}
	if err != nil {
		if persisted {
			if restoreErr := s.ledgers.Save(context.WithoutCancel(ctx), previous); restoreErr != nil {
				return WithdrawResult{}, fmt.Errorf("restore ledger after failed transfer: %w", errors.Join(err, restoreErr))
			}
		}
		s.logger.Warn("withdraw failed", "caller", cmd.Caller, "variant", variant, "error", err)
		return WithdrawResult{}, err
	}

	s.logger.Info("withdrawn", "owner", ledger.Owner, "amount_wei", amount.String(), "funders", funders, "variant", variant)
	s.record(ctx, domain.Event{Kind: domain.EventWithdrawn, Actor: ledger.Owner, Amount: amount, Funders: funders, Variant: variant})

	return WithdrawResult{
		Owner:   ledger.Owner,
		Amount:  amount,
		Funders: funders,
		Variant: variant,
	}, nil
}

func (s *Service) Owner(ctx context.Context) (domain.Address, error) {
	ledger, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}
	return ledger.Owner, nil
}

func (s *Service) PriceFeed(ctx context.Context) (domain.Address, error) {
	ledger, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}
	return ledger.PriceFeed, nil
}

func (s *Service) Funder(ctx context.Context, index int) (domain.Address, error) {
	ledger, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}
	return ledger.Funder(index)
}

func (s *Service) Funders(ctx context.Context) ([]domain.Address, error) {
	ledger, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Funders, nil
}

func (s *Service) FunderCount(ctx context.Context) (int, error) {
	ledger, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return ledger.FunderCount(), nil
}

func (s *Service) AmountFunded(ctx context.Context, funder domain.Address) (*big.Int, error) {
	ledger, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.AmountFunded(funder), nil
}

// Price reads the configured feed without requiring a deployed ledger.
func (s *Service) Price(ctx context.Context) (domain.Price, error) {
	price, err := s.feed.LatestPrice(ctx)
	if err != nil {
		return domain.Price{}, fmt.Errorf("read price feed: %w", err)
	}
	if err := price.Validate(); err != nil {
		return domain.Price{}, err
	}
	return price, nil
}

func (s *Service) Status(ctx context.Context) (Status, error) {
	release, err := s.acquire(ctx, true)
	if err != nil {
		return Status{}, err
	}
	defer release()

	ledger, err := s.load(ctx)
	if err != nil {
		return Status{}, err
	}
	price, err := s.latestPrice(ctx, ledger)
	if err != nil {
		return Status{}, err
	}

	return Status{
		Owner:         ledger.Owner,
		PriceFeed:     ledger.PriceFeed,
		MinimumUSD:    new(big.Int).Set(ledger.MinimumUSD),
		MinimumNative: price.MinimumNative(ledger.MinimumUSD),
		Price:         price,
		Pool:          new(big.Int).Set(ledger.Balance),
		PoolUSD:       price.ConversionRate(ledger.Balance),
		Funders:       contributions(ledger),
	}, nil
}

// Contributions lists every funder of the current cycle with its amount, read
// from a single snapshot.
func (s *Service) Contributions(ctx context.Context) ([]FunderStatus, error) {
	ledger, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return contributions(ledger), nil
}

func (s *Service) History(ctx context.Context, limit int) ([]domain.Event, error) {
	if s.journal == nil {
		return nil, nil
	}

	events, err := s.journal.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	return events, nil
}

func (s *Service) snapshot(ctx context.Context) (domain.Ledger, error) {
	release, err := s.acquire(ctx, true)
	if err != nil {
		return domain.Ledger{}, err
	}
	defer release()

	return s.load(ctx)
}

// acquire takes the service mutex and, when configured, the shared ledger lock.
func (s *Service) acquire(ctx context.Context, shared bool) (func(), error) {
	s.mu.Lock()
	if s.locker == nil {
		return s.mu.Unlock, nil
	}

	lock := s.locker.Lock
	if shared {
		lock = s.locker.RLock
	}
	unlock, err := lock(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("lock ledger: %w", err)
	}

	return func() {
		if err := unlock(); err != nil {
			s.logger.Warn("unlock ledger failed", "error", err)
		}
		s.mu.Unlock()
	}, nil
}

func contributions(ledger domain.Ledger) []FunderStatus {
	funders := make([]FunderStatus, 0, len(ledger.Funders))
	for _, funder := range ledger.Funders {
		funders = append(funders, FunderStatus{Address: funder, Amount: ledger.AmountFunded(funder)})
	}
	return funders
}

func (s *Service) load(ctx context.Context) (domain.Ledger, error) {
	ledger, err := s.ledgers.Get(ctx)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("get ledger: %w", err)
	}
	if err := ledger.Validate(); err != nil {
		return domain.Ledger{}, fmt.Errorf("ledger state is inconsistent: %w", err)
	}
	return ledger, nil
}

func (s *Service) latestPrice(ctx context.Context, ledger domain.Ledger) (domain.Price, error) {
	if feed := s.feed.Address(); feed != ledger.PriceFeed {
		return domain.Price{}, fmt.Errorf("%w: ledger uses %s, configured feed is %s", domain.ErrPriceFeedMismatch, ledger.PriceFeed, feed)
	}

	price, err := s.Price(ctx)
	if err != nil {
		return domain.Price{}, err
	}
	if price.IsStale(s.clock.Now(), s.maxPriceAge) {
		return domain.Price{}, fmt.Errorf("%w: round %d updated at %s", domain.ErrStalePrice, price.RoundID, price.UpdatedAt.Format(time.RFC3339))
	}

	s.logger.Debug("price read", "feed", ledger.PriceFeed, "round", price.RoundID, "rate", price.Rate())
	return price, nil
}

// record appends to the journal. Journal failures never undo a committed operation.
func (s *Service) record(ctx context.Context, event domain.Event) {
	if s.journal == nil {
		return
	}

	event.At = s.clock.Now()
	if err := s.journal.Record(ctx, event); err != nil {
		s.logger.Warn("journal write failed", "kind", event.Kind, "error", err)
	}
}
