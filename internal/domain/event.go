package domain

import (
	"math/big"
	"time"
)

type EventKind string

const (
	EventDeployed  EventKind = "deployed"
	EventFunded    EventKind = "funded"
	EventWithdrawn EventKind = "withdrawn"
)

type WithdrawVariant string

const (
	WithdrawStandard WithdrawVariant = "withdraw"
	WithdrawCheaper  WithdrawVariant = "cheaper_withdraw"
)

func (v WithdrawVariant) Valid() bool {
	switch v {
	case WithdrawStandard, WithdrawCheaper:
		return true
	default:
		return false
	}
}

// Event is one journal entry. Funders is the funder count after the event.
type Event struct {
	ID      int64
	Kind    EventKind
	Actor   Address
	Amount  *big.Int
	Funders int
	Variant WithdrawVariant
	At      time.Time
}
