package sqlite

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerAddr domain.Address = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	funderB   domain.Address = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestJournalListsNewestFirst(t *testing.T) {
	t.Parallel()

	journal := openTestJournal(t, filepath.Join(t.TempDir(), "journal.db"))
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	amount, ok := new(big.Int).SetString("123456789012345678901234", 10)
	require.True(t, ok)

	require.NoError(t, journal.Record(ctx, domain.Event{Kind: domain.EventDeployed, Actor: ownerAddr, Amount: new(big.Int), At: at}))
	require.NoError(t, journal.Record(ctx, domain.Event{Kind: domain.EventFunded, Actor: funderB, Amount: amount, Funders: 1, At: at.Add(time.Minute)}))
	require.NoError(t, journal.Record(ctx, domain.Event{
		Kind:    domain.EventWithdrawn,
		Actor:   ownerAddr,
		Amount:  amount,
		Funders: 1,
		Variant: domain.WithdrawCheaper,
		At:      at.Add(2 * time.Minute),
	}))

	events, err := journal.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, domain.EventWithdrawn, events[0].Kind)
	assert.Equal(t, domain.WithdrawCheaper, events[0].Variant)
	assert.Equal(t, amount.String(), events[0].Amount.String())
	assert.Equal(t, at.Add(2*time.Minute), events[0].At)
	assert.Equal(t, domain.EventFunded, events[1].Kind)
	assert.Equal(t, funderB, events[1].Actor)
	assert.Equal(t, domain.EventDeployed, events[2].Kind)
	assert.Greater(t, events[0].ID, events[1].ID)

	limited, err := journal.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, events[0].ID, limited[0].ID)
}

func TestJournalSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	first := openTestJournal(t, path)
	require.NoError(t, first.Record(context.Background(), domain.Event{Kind: domain.EventDeployed, Actor: ownerAddr}))
	require.NoError(t, first.Close())

	second := openTestJournal(t, path)
	events, err := second.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "0", events[0].Amount.String())
	assert.False(t, events[0].At.IsZero())
}

func TestJournalEmpty(t *testing.T) {
	t.Parallel()

	events, err := openTestJournal(t, filepath.Join(t.TempDir(), "journal.db")).List(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNoopJournal(t *testing.T) {
	var journal Noop

	require.NoError(t, journal.Record(context.Background(), domain.Event{Kind: domain.EventFunded}))
	events, err := journal.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, events)
	require.NoError(t, journal.Close())
}

func openTestJournal(t *testing.T, path string) *Journal {
	t.Helper()

	journal, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = journal.Close() })
	return journal
}
