package domain

import (
	"fmt"
	"math/big"
)

// DefaultMinimumUSD is $50 with 18 decimals.
var DefaultMinimumUSD = new(big.Int).Mul(big.NewInt(50), pow10(NativeDecimals))

// Payout moves the drained pool to its recipient. It runs after the ledger has
// been reset; a non-nil error makes the ledger restore its previous state.
type Payout func(to Address, amount *big.Int) error

// Ledger is the funding pool state for one deployment.
//
// Funders holds every address that contributed in the current cycle, in order
// of first contribution. Amounts has an entry exactly for those addresses and
// its values sum to Balance.
type Ledger struct {
	Owner      Address
	PriceFeed  Address
	MinimumUSD *big.Int
	Funders    []Address
	Amounts    map[Address]*big.Int
	Balance    *big.Int

	entered bool
}

func NewLedger(owner, priceFeed Address, minimumUSD *big.Int) (Ledger, error) {
	if minimumUSD == nil {
		minimumUSD = DefaultMinimumUSD
	}

	ledger := Ledger{
		Owner:      owner,
		PriceFeed:  priceFeed,
		MinimumUSD: new(big.Int).Set(minimumUSD),
		Funders:    []Address{},
		Amounts:    map[Address]*big.Int{},
		Balance:    new(big.Int),
	}
	if err := ledger.Validate(); err != nil {
		return Ledger{}, err
	}

	return ledger, nil
}

func (l Ledger) Validate() error {
	if l.Owner.IsZero() {
		return fmt.Errorf("owner is required")
	}
	if l.PriceFeed.IsZero() {
		return fmt.Errorf("price feed is required")
	}
	if l.MinimumUSD == nil || l.MinimumUSD.Sign() <= 0 {
		return fmt.Errorf("minimum contribution must be positive")
	}
	if len(l.Funders) != len(l.Amounts) {
		return fmt.Errorf("funders (%d) and amounts (%d) are out of sync", len(l.Funders), len(l.Amounts))
	}

	sum := new(big.Int)
	seen := make(map[Address]struct{}, len(l.Funders))
	for _, funder := range l.Funders {
		if _, ok := seen[funder]; ok {
			return fmt.Errorf("funder %s is listed twice", funder)
		}
		seen[funder] = struct{}{}

		amount, ok := l.Amounts[funder]
		if !ok {
			return fmt.Errorf("funder %s has no recorded amount", funder)
		}
		if amount == nil || amount.Sign() < 0 {
			return fmt.Errorf("funder %s has an invalid amount", funder)
		}
		sum.Add(sum, amount)
	}

	if sum.Cmp(l.balance()) != 0 {
		return fmt.Errorf("recorded amounts %s do not sum to pool balance %s", sum, l.balance())
	}

	return nil
}

// Fund records value sent by caller after checking it against the minimum at price.
func (l *Ledger) Fund(caller Address, value *big.Int, price Price) error {
	if l.entered {
		return ErrReentrantCall
	}
	if caller.IsZero() {
		return fmt.Errorf("%w: caller is empty", ErrInvalidAddress)
	}

	value = cloneInt(value)
	if value.Sign() < 0 {
		return fmt.Errorf("%w: negative value", ErrInvalidAmount)
	}
	if err := price.Validate(); err != nil {
		return err
	}
	if !price.MeetsMinimum(value, l.MinimumUSD) {
		return fmt.Errorf("%w: sent %s worth %s USD, minimum is %s USD",
			ErrInsufficientContribution, FormatEther(value), FormatUSD(price.ConversionRate(value)), FormatUSD(l.MinimumUSD))
	}

	if l.Amounts == nil {
		l.Amounts = map[Address]*big.Int{}
	}

	current, ok := l.Amounts[caller]
	if !ok {
		l.Funders = append(l.Funders, caller)
		current = new(big.Int)
	}
	l.Amounts[caller] = new(big.Int).Add(current, value)
	l.Balance = new(big.Int).Add(l.balance(), value)

	return nil
}

// Withdraw drains the pool to the owner, clearing amounts by walking the live
// funder list.
func (l *Ledger) Withdraw(caller Address, payout Payout) (*big.Int, error) {
	if err := l.onlyOwner(caller); err != nil {
		return nil, err
	}

	previous := l.Clone()
	for i := 0; i < len(l.Funders); i++ {
		funder := l.Funders[i]
		delete(l.Amounts, funder)
	}
	l.Funders = []Address{}

	return l.pay(previous, payout)
}

// CheaperWithdraw has the same outcome as Withdraw but reads the funder list
// once into a fixed-length copy before clearing amounts.
func (l *Ledger) CheaperWithdraw(caller Address, payout Payout) (*big.Int, error) {
	if err := l.onlyOwner(caller); err != nil {
		return nil, err
	}

	previous := l.Clone()
	funders := make([]Address, len(l.Funders))
	copy(funders, l.Funders)
	for _, funder := range funders {
		delete(l.Amounts, funder)
	}
	l.Funders = []Address{}

	return l.pay(previous, payout)
}

func (l *Ledger) onlyOwner(caller Address) error {
	if l.entered {
		return ErrReentrantCall
	}
	if caller != l.Owner {
		return ErrNotOwner
	}
	return nil
}

func (l *Ledger) pay(previous Ledger, payout Payout) (*big.Int, error) {
	amount := l.balance()
	l.Balance = new(big.Int)

	if payout == nil {
		return amount, nil
	}

	l.entered = true
	err := payout(l.Owner, new(big.Int).Set(amount))
	l.entered = false
	if err != nil {
		*l = previous
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	return amount, nil
}

// Funder returns the funder at index in contribution order.
func (l Ledger) Funder(index int) (Address, error) {
	if index < 0 || index >= len(l.Funders) {
		return "", fmt.Errorf("%w: index %d, funders %d", ErrFunderIndexOutOfRange, index, len(l.Funders))
	}
	return l.Funders[index], nil
}

// AmountFunded is zero for addresses that did not contribute this cycle.
func (l Ledger) AmountFunded(funder Address) *big.Int {
	if amount, ok := l.Amounts[funder]; ok && amount != nil {
		return new(big.Int).Set(amount)
	}
	return new(big.Int)
}

func (l Ledger) FunderCount() int {
	return len(l.Funders)
}

func (l Ledger) Drained() bool {
	return len(l.Funders) == 0 && l.balance().Sign() == 0
}

func (l Ledger) Clone() Ledger {
	funders := make([]Address, len(l.Funders))
	copy(funders, l.Funders)

	amounts := make(map[Address]*big.Int, len(l.Amounts))
	for funder, amount := range l.Amounts {
		amounts[funder] = cloneInt(amount)
	}

	return Ledger{
		Owner:      l.Owner,
		PriceFeed:  l.PriceFeed,
		MinimumUSD: cloneInt(l.MinimumUSD),
		Funders:    funders,
		Amounts:    amounts,
		Balance:    cloneInt(l.Balance),
	}
}

func (l Ledger) balance() *big.Int {
	return cloneInt(l.Balance)
}
