package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/cobra"
)

type priceOutput struct {
	Feed      domain.Address `json:"feed"`
	Answer    string         `json:"answer"`
	Decimals  uint8          `json:"decimals"`
	RoundID   uint64         `json:"round_id"`
	Rate      string         `json:"rate"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

func newPriceCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Read the current USD rate from the configured feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var price domain.Price
			read := func(ctx context.Context) error {
				var err error
				price, err = app.service.Price(ctx)
				return err
			}
			if err := runFeedRead(cmd, app, asJSON, read); err != nil {
				return err
			}

			return writePrice(cmd, app.feed.Address(), price, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func toPriceOutput(feed domain.Address, price domain.Price) priceOutput {
	out := priceOutput{
		Feed:     feed,
		Answer:   price.Answer.String(),
		Decimals: price.Decimals,
		RoundID:  price.RoundID,
		Rate:     price.Rate(),
	}
	if !price.UpdatedAt.IsZero() {
		updatedAt := price.UpdatedAt
		out.UpdatedAt = &updatedAt
	}
	return out
}

func writePrice(cmd *cobra.Command, feed domain.Address, price domain.Price, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(toPriceOutput(feed, price))
	}

	updated := "unknown"
	if !price.UpdatedAt.IsZero() {
		updated = price.UpdatedAt.Format(time.RFC3339)
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s USD\nfeed: %s\nround: %d\ndecimals: %d\nupdated: %s\n",
		price.Rate(), feed, price.RoundID, price.Decimals, updated)
	return err
}
