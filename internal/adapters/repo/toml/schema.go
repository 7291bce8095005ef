package toml

import "fmt"

const (
	currentLedgerSchemaVersion = 1
	currentWalletSchemaVersion = 1
)

type ledgerFileSchema struct {
	Version int           `toml:"version"`
	Ledger  *ledgerSchema `toml:"ledger,omitempty"`
}

func (s *ledgerFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentLedgerSchemaVersion
	}
}

func (s ledgerFileSchema) validateVersion() error {
	if s.Version > currentLedgerSchemaVersion {
		return fmt.Errorf("unsupported ledger schema version %d (current %d)", s.Version, currentLedgerSchemaVersion)
	}

	return nil
}

// Wei amounts are decimal strings; TOML integers stop at 64 bits.
type ledgerSchema struct {
	Owner      string         `toml:"owner"`
	PriceFeed  string         `toml:"price_feed"`
	MinimumUSD string         `toml:"minimum_usd"`
	Balance    string         `toml:"balance"`
	Funders    []string       `toml:"funders"`
	Amounts    []amountSchema `toml:"amounts"`
}

type amountSchema struct {
	Funder string `toml:"funder"`
	Amount string `toml:"amount"`
}

type walletFileSchema struct {
	Version int            `toml:"version"`
	Wallets []walletSchema `toml:"wallets"`
}

func (s *walletFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentWalletSchemaVersion
	}
}

func (s walletFileSchema) validateVersion() error {
	if s.Version > currentWalletSchemaVersion {
		return fmt.Errorf("unsupported wallets schema version %d (current %d)", s.Version, currentWalletSchemaVersion)
	}

	return nil
}

type walletSchema struct {
	Address         string `toml:"address"`
	Balance         string `toml:"balance"`
	RejectTransfers bool   `toml:"reject_transfers,omitempty"`
}
