package domain

import "errors"

var (
	ErrNotOwner                 = errors.New("caller is not the owner")
	ErrInsufficientContribution = errors.New("insufficient contribution")
	ErrTransferFailed           = errors.New("transfer failed")
	ErrFunderIndexOutOfRange    = errors.New("funder index out of range")
	ErrReentrantCall            = errors.New("reentrant call")

	ErrLedgerNotFound = errors.New("ledger not deployed")
	ErrLedgerExists   = errors.New("ledger already deployed")

	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidAmount  = errors.New("invalid amount")

	ErrInvalidPrice      = errors.New("invalid price")
	ErrStalePrice        = errors.New("stale price")
	ErrPriceFeedMismatch = errors.New("price feed does not match ledger")

	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTransferRejected  = errors.New("recipient rejected transfer")
	ErrSecretNotFound    = errors.New("secret not found")
)
