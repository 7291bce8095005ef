package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	statusadapter "github.com/bnema/fundme-cli/internal/adapters/render/status"
	"github.com/bnema/fundme-cli/internal/application"
	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/cobra"
)

type funderOutput struct {
	Address   domain.Address `json:"address"`
	AmountWei string         `json:"amount_wei"`
	Amount    string         `json:"amount_eth"`
}

type statusOutput struct {
	Owner            domain.Address `json:"owner"`
	PriceFeed        domain.Address `json:"price_feed"`
	MinimumUSD       string         `json:"minimum_usd"`
	MinimumNativeWei string         `json:"minimum_native_wei,omitempty"`
	Price            priceOutput    `json:"price"`
	PoolWei          string         `json:"pool_wei"`
	PoolUSD          string         `json:"pool_usd"`
	Funders          []funderOutput `json:"funders"`
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var full bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the pool, the current price and every funder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var status application.Status
			load := func(ctx context.Context) error {
				var err error
				status, err = app.service.Status(ctx)
				return err
			}

			if err := runFeedRead(cmd, app, asJSON, load); err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, status, asJSON, full)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&full, "full", false, "Show full addresses")

	return cmd
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.Status, asJSON, full bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(toStatusOutput(app, status))
	}

	rendered, err := app.statusRenderer(status, statusadapter.RenderOptions{
		Now:           app.now(),
		StaleAfter:    app.maxPriceAge,
		FullAddresses: full,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func toStatusOutput(app *app, status application.Status) statusOutput {
	out := statusOutput{
		Owner:      status.Owner,
		PriceFeed:  status.PriceFeed,
		MinimumUSD: domain.FormatUSD(status.MinimumUSD),
		Price:      toPriceOutput(status.PriceFeed, status.Price),
		PoolWei:    status.Pool.String(),
		PoolUSD:    domain.FormatUSD(status.PoolUSD),
		Funders:    make([]funderOutput, 0, len(status.Funders)),
	}
	if status.MinimumNative != nil {
		out.MinimumNativeWei = status.MinimumNative.String()
	}
	for _, funder := range status.Funders {
		out.Funders = append(out.Funders, funderOutput{
			Address:   funder.Address,
			AmountWei: funder.Amount.String(),
			Amount:    domain.FormatEther(funder.Amount),
		})
	}

	return out
}

// runFeedRead shows a spinner on stderr while a remote feed is queried.
func runFeedRead(cmd *cobra.Command, app *app, quiet bool, read func(context.Context) error) error {
	if quiet || !app.remoteFeed() {
		return read(cmd.Context())
	}
	return runPriceFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), feedSource(app.cfg.GetString("feed.url")), read)
}

func feedSource(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "the price feed"
	}
	return parsed.Host
}
