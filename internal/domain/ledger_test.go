package domain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerA   Address = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	funderB  Address = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	funderC  Address = "0xcccccccccccccccccccccccccccccccccccccccc"
	mockFeed Address = "0x5fbdb2315678afecb367f032d93f642f64180aa3"
)

func TestNewLedgerValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		owner   Address
		feed    Address
		minimum *big.Int
		wantErr string
	}{
		{name: "valid with default minimum", owner: ownerA, feed: mockFeed},
		{name: "missing owner", feed: mockFeed, wantErr: "owner is required"},
		{name: "missing feed", owner: ownerA, wantErr: "price feed is required"},
		{name: "zero minimum", owner: ownerA, feed: mockFeed, minimum: big.NewInt(0), wantErr: "minimum contribution must be positive"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ledger, err := NewLedger(tc.owner, tc.feed, tc.minimum)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultMinimumUSD.String(), ledger.MinimumUSD.String())
			assert.True(t, ledger.Drained())
		})
	}
}

func TestLedgerValidateDetectsBrokenInvariants(t *testing.T) {
	t.Parallel()

	base := newTestLedger(t)
	require.NoError(t, base.Fund(funderB, ether("1"), testPrice("2000")))

	tests := []struct {
		name    string
		mutate  func(l *Ledger)
		wantErr string
	}{
		{name: "balance drift", mutate: func(l *Ledger) { l.Balance = ether("2") }, wantErr: "do not sum to pool balance"},
		{name: "duplicate funder", mutate: func(l *Ledger) {
			l.Funders = append(l.Funders, funderB)
			l.Amounts[funderC] = new(big.Int)
		}, wantErr: "listed twice"},
		{name: "amount without funder", mutate: func(l *Ledger) { l.Amounts[funderC] = new(big.Int) }, wantErr: "out of sync"},
		{name: "funder without amount", mutate: func(l *Ledger) {
			delete(l.Amounts, funderB)
			l.Amounts[funderC] = ether("1")
		}, wantErr: "has no recorded amount"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ledger := base.Clone()
			tc.mutate(&ledger)
			assert.ErrorContains(t, ledger.Validate(), tc.wantErr)
		})
	}
}

func TestLedgerFundRejectsBelowMinimumWithoutStateChange(t *testing.T) {
	ledger := newTestLedger(t)

	err := ledger.Fund(funderB, ether("0.0001"), testPrice("2000"))
	require.ErrorIs(t, err, ErrInsufficientContribution)
	assert.ErrorContains(t, err, "minimum is 50.00 USD")

	assert.Empty(t, ledger.Funders)
	assert.Empty(t, ledger.Amounts)
	assert.Equal(t, 0, ledger.Balance.Sign())
}

func TestLedgerFundRejectsEmptyValue(t *testing.T) {
	ledger := newTestLedger(t)

	require.ErrorIs(t, ledger.Fund(funderB, nil, testPrice("2000")), ErrInsufficientContribution)
	require.ErrorIs(t, ledger.Fund(funderB, big.NewInt(-1), testPrice("2000")), ErrInvalidAmount)
	require.ErrorIs(t, ledger.Fund(funderB, ether("1"), Price{}), ErrInvalidPrice)
	require.ErrorIs(t, ledger.Fund("", ether("1"), testPrice("2000")), ErrInvalidAddress)
	assert.True(t, ledger.Drained())
}

func TestLedgerFundAcceptsExactMinimum(t *testing.T) {
	ledger := newTestLedger(t)
	price := testPrice("2000")
	minimum := price.MinimumNative(ledger.MinimumUSD)

	require.ErrorIs(t, ledger.Fund(funderB, new(big.Int).Sub(minimum, big.NewInt(1)), price), ErrInsufficientContribution)
	require.NoError(t, ledger.Fund(funderB, minimum, price))
	assert.Equal(t, minimum.String(), ledger.AmountFunded(funderB).String())
}

func TestLedgerFundTracksFundersOnceInFirstContributionOrder(t *testing.T) {
	ledger := newTestLedger(t)
	price := testPrice("2000")

	require.NoError(t, ledger.Fund(funderB, ether("1"), price))
	require.NoError(t, ledger.Fund(funderC, ether("1"), price))
	require.NoError(t, ledger.Fund(funderB, ether("0.5"), price))
	require.NoError(t, ledger.Fund(ownerA, ether("1"), price))

	assert.Equal(t, []Address{funderB, funderC, ownerA}, ledger.Funders)
	assert.Equal(t, ether("1.5").String(), ledger.AmountFunded(funderB).String())
	assert.Equal(t, ether("1").String(), ledger.AmountFunded(funderC).String())
	assert.Equal(t, ether("3.5").String(), ledger.Balance.String())
	assert.Equal(t, 3, ledger.FunderCount())
	require.NoError(t, ledger.Validate())
}

func TestLedgerQueries(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.Fund(funderB, ether("1"), testPrice("2000")))

	funder, err := ledger.Funder(0)
	require.NoError(t, err)
	assert.Equal(t, funderB, funder)

	_, err = ledger.Funder(1)
	require.ErrorIs(t, err, ErrFunderIndexOutOfRange)
	_, err = ledger.Funder(-1)
	require.ErrorIs(t, err, ErrFunderIndexOutOfRange)

	assert.Equal(t, "0", ledger.AmountFunded(funderC).String())

	returned := ledger.AmountFunded(funderB)
	returned.SetInt64(0)
	assert.Equal(t, ether("1").String(), ledger.AmountFunded(funderB).String())
}

func TestLedgerWithdrawVariants(t *testing.T) {
	variants := map[string]func(l *Ledger, caller Address, payout Payout) (*big.Int, error){
		"withdraw":         (*Ledger).Withdraw,
		"cheaper withdraw": (*Ledger).CheaperWithdraw,
	}

	for name, withdraw := range variants {
		withdraw := withdraw
		t.Run(name+" drains pool to owner", func(t *testing.T) {
			ledger := fundedLedger(t)
			var paidTo Address
			var paid *big.Int

			amount, err := withdraw(&ledger, ownerA, func(to Address, amount *big.Int) error {
				paidTo, paid = to, amount
				return nil
			})
			require.NoError(t, err)

			assert.Equal(t, ether("2").String(), amount.String())
			assert.Equal(t, ownerA, paidTo)
			assert.Equal(t, ether("2").String(), paid.String())
			assert.True(t, ledger.Drained())
			assert.Equal(t, "0", ledger.AmountFunded(funderB).String())
			assert.Equal(t, "0", ledger.AmountFunded(funderC).String())
			_, err = ledger.Funder(0)
			require.ErrorIs(t, err, ErrFunderIndexOutOfRange)
			require.NoError(t, ledger.Validate())
		})

		t.Run(name+" rejects non owner", func(t *testing.T) {
			ledger := fundedLedger(t)
			called := false

			_, err := withdraw(&ledger, funderB, func(Address, *big.Int) error {
				called = true
				return nil
			})
			require.ErrorIs(t, err, ErrNotOwner)
			assert.False(t, called)
			assert.Equal(t, []Address{funderB, funderC}, ledger.Funders)
			assert.Equal(t, ether("2").String(), ledger.Balance.String())
		})

		t.Run(name+" restores state when payout fails", func(t *testing.T) {
			ledger := fundedLedger(t)
			before := ledger.Clone()
			cause := errors.New("owner cannot receive")

			_, err := withdraw(&ledger, ownerA, func(Address, *big.Int) error { return cause })
			require.ErrorIs(t, err, ErrTransferFailed)
			require.ErrorIs(t, err, cause)
			assertSameState(t, before, ledger)
		})

		t.Run(name+" resets state before payout and blocks reentry", func(t *testing.T) {
			ledger := fundedLedger(t)

			_, err := withdraw(&ledger, ownerA, func(Address, *big.Int) error {
				assert.Empty(t, ledger.Funders)
				assert.Empty(t, ledger.Amounts)
				assert.Equal(t, 0, ledger.Balance.Sign())

				require.ErrorIs(t, ledger.Fund(funderB, ether("1"), testPrice("2000")), ErrReentrantCall)
				_, reentryErr := ledger.Withdraw(ownerA, nil)
				require.ErrorIs(t, reentryErr, ErrReentrantCall)
				_, reentryErr = ledger.CheaperWithdraw(ownerA, nil)
				require.ErrorIs(t, reentryErr, ErrReentrantCall)
				return nil
			})
			require.NoError(t, err)

			require.NoError(t, ledger.Fund(funderB, ether("1"), testPrice("2000")))
			assert.Equal(t, []Address{funderB}, ledger.Funders)
		})
	}
}

func TestLedgerWithdrawVariantsAreEquivalent(t *testing.T) {
	funders := []Address{
		funderB,
		funderC,
		"0x1111111111111111111111111111111111111111",
		"0x2222222222222222222222222222222222222222",
		"0x3333333333333333333333333333333333333333",
	}

	build := func() Ledger {
		ledger := newTestLedger(t)
		for i, funder := range funders {
			require.NoError(t, ledger.Fund(funder, ether("1"), testPrice("2000")))
			if i%2 == 0 {
				require.NoError(t, ledger.Fund(funder, ether("0.25"), testPrice("2000")))
			}
		}
		return ledger
	}

	standard := build()
	cheaper := build()
	assertSameState(t, standard, cheaper)

	standardAmount, err := standard.Withdraw(ownerA, nil)
	require.NoError(t, err)
	cheaperAmount, err := cheaper.CheaperWithdraw(ownerA, nil)
	require.NoError(t, err)

	assert.Equal(t, standardAmount.String(), cheaperAmount.String())
	assertSameState(t, standard, cheaper)
}

func TestLedgerCycleRepeats(t *testing.T) {
	ledger := fundedLedger(t)

	_, err := ledger.CheaperWithdraw(ownerA, nil)
	require.NoError(t, err)

	require.NoError(t, ledger.Fund(funderC, ether("1"), testPrice("2000")))
	assert.Equal(t, []Address{funderC}, ledger.Funders)
	assert.Equal(t, ether("1").String(), ledger.Balance.String())
}

func TestLedgerCloneIsDeep(t *testing.T) {
	ledger := fundedLedger(t)
	clone := ledger.Clone()

	clone.Amounts[funderB].SetInt64(7)
	clone.Funders[0] = funderC
	clone.Balance.SetInt64(0)

	assert.Equal(t, ether("1").String(), ledger.AmountFunded(funderB).String())
	assert.Equal(t, funderB, ledger.Funders[0])
	assert.Equal(t, ether("2").String(), ledger.Balance.String())
}

func newTestLedger(t *testing.T) Ledger {
	t.Helper()

	ledger, err := NewLedger(ownerA, mockFeed, nil)
	require.NoError(t, err)
	return ledger
}

func fundedLedger(t *testing.T) Ledger {
	t.Helper()

	ledger := newTestLedger(t)
	require.NoError(t, ledger.Fund(funderB, ether("1"), testPrice("2000")))
	require.NoError(t, ledger.Fund(funderC, ether("1"), testPrice("2000")))
	return ledger
}

func assertSameState(t *testing.T, want, got Ledger) {
	t.Helper()

	assert.Equal(t, want.Owner, got.Owner)
	assert.Equal(t, want.PriceFeed, got.PriceFeed)
	assert.Equal(t, want.Funders, got.Funders)
	assert.Equal(t, want.Balance.String(), got.Balance.String())
	require.Len(t, got.Amounts, len(want.Amounts))
	for funder, amount := range want.Amounts {
		assert.Equal(t, amount.String(), got.AmountFunded(funder).String(), "amount for %s", funder)
	}
}
