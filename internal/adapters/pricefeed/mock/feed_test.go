package mock

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/bnema/fundme-cli/internal/ports/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedInitialAnswer(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(now)

	feed := newTestFeed(t, filepath.Join(t.TempDir(), "price_feed.toml"), clock)

	price, err := feed.LatestPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "200000000000", price.Answer.String())
	assert.Equal(t, uint8(8), price.Decimals)
	assert.Equal(t, uint64(1), price.RoundID)
	assert.Equal(t, now, price.UpdatedAt)
	assert.Equal(t, "2000", price.Rate())
	assert.Equal(t, DefaultAddress, feed.Address())
}

func TestFeedUpdateAnswerStartsNewRound(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 9, 30, 15, 0, time.UTC)
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(now)

	path := filepath.Join(t.TempDir(), "price_feed.toml")
	feed := newTestFeed(t, path, clock)

	updated, err := feed.UpdateAnswer(context.Background(), big.NewInt(150_000_000_000), 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), updated.RoundID)

	reopened := newTestFeed(t, path, clock)
	price, err := reopened.LatestPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1500", price.Rate())
	assert.Equal(t, uint64(2), price.RoundID)
	assert.Equal(t, now, price.UpdatedAt)
}

func TestFeedRejectsNonPositiveAnswer(t *testing.T) {
	t.Parallel()

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(time.Now().UTC())

	feed := newTestFeed(t, filepath.Join(t.TempDir(), "price_feed.toml"), clock)

	_, err := feed.UpdateAnswer(context.Background(), big.NewInt(0), 8)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestFeedConfiguredAddress(t *testing.T) {
	t.Parallel()

	config := viper.New()
	config.Set("feed.path", filepath.Join(t.TempDir(), "price_feed.toml"))
	config.Set("feed.address", "0x9FE46736679d2D9a65F0992F2272dE9f3c7fa6e0")

	feed, err := NewFeed(config, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Address("0x9fe46736679d2d9a65f0992f2272de9f3c7fa6e0"), feed.Address())

	config.Set("feed.address", "not-an-address")
	_, err = NewFeed(config, nil)
	require.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func newTestFeed(t *testing.T, path string, clock *mocks.MockClock) *Feed {
	t.Helper()

	config := viper.New()
	config.Set("feed.path", path)
	feed, err := NewFeed(config, clock)
	require.NoError(t, err)
	return feed
}
