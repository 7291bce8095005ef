// Package mock is a settable fixed-rate price feed persisted to TOML. It plays
// the part of the mock aggregator in local and test environments.
package mock

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	tomlrepo "github.com/bnema/fundme-cli/internal/adapters/repo/toml"
	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/bnema/fundme-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	feedPathKey    = "feed.path"
	feedAddressKey = "feed.address"
	feedFileName   = "price_feed.toml"

	// DefaultAddress is where the first local deployment lands, so ledgers
	// deployed against the mock feed reference a stable address.
	DefaultAddress domain.Address = "0x5fbdb2315678afecb367f032d93f642f64180aa3"

	DefaultDecimals uint8 = 8

	currentSchemaVersion = 1
)

// DefaultAnswer is 2000 USD with DefaultDecimals.
var DefaultAnswer = big.NewInt(200_000_000_000)

type fileSchema struct {
	Version   int    `toml:"version"`
	Answer    string `toml:"answer"`
	Decimals  uint8  `toml:"decimals"`
	RoundID   uint64 `toml:"round_id"`
	UpdatedAt string `toml:"updated_at"`
}

type Feed struct {
	address domain.Address
	path    string
	clock   ports.Clock
	mu      *sync.RWMutex
}

var _ ports.PriceFeed = (*Feed)(nil)

func NewFeed(cfg *viper.Viper, clock ports.Clock) (*Feed, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	address := DefaultAddress
	if raw := cfg.GetString(feedAddressKey); raw != "" {
		parsed, err := domain.ParseAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("feed address: %w", err)
		}
		address = parsed
	}

	path := cfg.GetString(feedPathKey)
	if path == "" {
		var err error
		path, err = tomlrepo.DefaultPath(feedFileName)
		if err != nil {
			return nil, err
		}
	}
	path, err := tomlrepo.NormalizePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve feed path: %w", err)
	}

	return &Feed{address: address, path: path, clock: clock, mu: tomlrepo.LockForPath(path)}, nil
}

func (f *Feed) Address() domain.Address {
	return f.address
}

// LatestPrice returns the stored answer, or the initial answer timestamped now
// when nothing has been stored yet. It never writes.
func (f *Feed) LatestPrice(ctx context.Context) (domain.Price, error) {
	if err := ctx.Err(); err != nil {
		return domain.Price{}, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.read()
}

// UpdateAnswer stores a new answer, starting a new round. Concurrent updates
// from other processes are serialized through the feed file lock.
func (f *Feed) UpdateAnswer(ctx context.Context, answer *big.Int, decimals uint8) (domain.Price, error) {
	if err := ctx.Err(); err != nil {
		return domain.Price{}, err
	}

	var next domain.Price
	err := tomlrepo.UpdateFile(ctx, f.path, func() error {
		current, err := f.read()
		if err != nil {
			return err
		}

		next = domain.Price{
			Answer:    answer,
			Decimals:  decimals,
			RoundID:   current.RoundID + 1,
			UpdatedAt: f.clock.Now().UTC().Truncate(time.Second),
		}
		if err := next.Validate(); err != nil {
			return err
		}

		return tomlrepo.WriteFile(f.path, fileSchema{
			Version:   currentSchemaVersion,
			Answer:    next.Answer.String(),
			Decimals:  next.Decimals,
			RoundID:   next.RoundID,
			UpdatedAt: next.UpdatedAt.Format(time.RFC3339),
		})
	})
	if err != nil {
		return domain.Price{}, err
	}

	return next, nil
}

func (f *Feed) read() (domain.Price, error) {
	var file fileSchema
	found, err := tomlrepo.ReadFile(f.path, &file)
	if err != nil {
		return domain.Price{}, err
	}
	if !found {
		return domain.Price{
			Answer:    new(big.Int).Set(DefaultAnswer),
			Decimals:  DefaultDecimals,
			RoundID:   1,
			UpdatedAt: f.clock.Now().UTC(),
		}, nil
	}
	if file.Version > currentSchemaVersion {
		return domain.Price{}, fmt.Errorf("unsupported price feed schema version %d (current %d)", file.Version, currentSchemaVersion)
	}

	answer, ok := new(big.Int).SetString(file.Answer, 10)
	if !ok {
		return domain.Price{}, fmt.Errorf("%w: stored answer %q is not an integer", domain.ErrInvalidPrice, file.Answer)
	}
	updatedAt, err := time.Parse(time.RFC3339, file.UpdatedAt)
	if err != nil {
		return domain.Price{}, fmt.Errorf("decode price feed updated_at: %w", err)
	}

	return domain.Price{
		Answer:    answer,
		Decimals:  file.Decimals,
		RoundID:   file.RoundID,
		UpdatedAt: updatedAt,
	}, nil
}
