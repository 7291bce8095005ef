package toml

import (
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerAddr domain.Address = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	funderB   domain.Address = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	funderC   domain.Address = "0xcccccccccccccccccccccccccccccccccccccccc"
	feedAddr  domain.Address = "0x5fbdb2315678afecb367f032d93f642f64180aa3"
)

func TestLedgerRepositoryRoundTripKeepsFunderOrder(t *testing.T) {
	t.Parallel()

	repo := newLedgerRepo(t, filepath.Join(t.TempDir(), "ledger.toml"))
	ledger := fundedLedger(t, funderC, funderB, funderC)

	require.NoError(t, repo.Save(context.Background(), ledger))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.NoError(t, got.Validate())
	assert.Equal(t, []domain.Address{funderC, funderB}, got.Funders)
	assert.Equal(t, ownerAddr, got.Owner)
	assert.Equal(t, feedAddr, got.PriceFeed)
	assert.Equal(t, domain.DefaultMinimumUSD.String(), got.MinimumUSD.String())
	assert.Equal(t, "2000000000000000000", got.AmountFunded(funderC).String())
	assert.Equal(t, "3000000000000000000", got.Balance.String())
}

func TestLedgerRepositoryDrainedLedgerRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newLedgerRepo(t, filepath.Join(t.TempDir(), "ledger.toml"))
	ledger := fundedLedger(t, funderB)
	_, err := ledger.CheaperWithdraw(ownerAddr, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), ledger))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Drained())
	assert.Empty(t, got.Amounts)
}

func TestLedgerRepositoryMissingFileIsNotDeployed(t *testing.T) {
	t.Parallel()

	repo := newLedgerRepo(t, filepath.Join(t.TempDir(), "missing", "ledger.toml"))

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrLedgerNotFound)
}

func TestLedgerRepositoryWritesPrivateFileWithVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "ledger.toml")
	repo := newLedgerRepo(t, path)

	require.NoError(t, repo.Save(context.Background(), fundedLedger(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "50000000000000000000")
}

func TestLedgerRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.toml")
	require.NoError(t, os.WriteFile(path, []byte("funders = ["), 0o600))
	repo := newLedgerRepo(t, path)

	_, err := repo.Get(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode ledger.toml")
}

func TestLedgerRepositoryRejectsBadAddress(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[ledger]",
		"owner = 'nobody'",
		"price_feed = '0x5fbdb2315678afecb367f032d93f642f64180aa3'",
		"minimum_usd = '1'",
		"balance = '0'",
		"",
	}, "\n")), 0o600))
	repo := newLedgerRepo(t, path)

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidAddress)
	assert.ErrorContains(t, err, "decode ledger file: owner")
}

func TestLedgerRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 999\n"), 0o600))
	repo := newLedgerRepo(t, path)

	_, err := repo.Get(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported ledger schema version")
}

func TestLedgerRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newLedgerRepo(t, filepath.Join(t.TempDir(), "ledger.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, fundedLedger(t))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNormalizePathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := NormalizePath("~/.fundme/ledger.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".fundme", "ledger.toml"), got)

	repo, err := NewLedgerRepository(viper.New())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".fundme", "ledger.toml"), repo.Path())
}

func newLedgerRepo(t *testing.T, path string) *LedgerRepository {
	t.Helper()

	config := viper.New()
	config.Set("ledger.path", path)
	repo, err := NewLedgerRepository(config)
	require.NoError(t, err)
	return repo
}

func fundedLedger(t *testing.T, funders ...domain.Address) domain.Ledger {
	t.Helper()

	ledger, err := domain.NewLedger(ownerAddr, feedAddr, nil)
	require.NoError(t, err)

	price := domain.Price{Answer: big.NewInt(200_000_000_000), Decimals: 8, RoundID: 1}
	for _, funder := range funders {
		value, err := domain.ParseEther("1")
		require.NoError(t, err)
		require.NoError(t, ledger.Fund(funder, value, price))
	}
	return ledger
}
