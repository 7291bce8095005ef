package cmd

import (
	"fmt"

	"github.com/bnema/fundme-cli/internal/application"
	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newDeployCmd(app *app) *cobra.Command {
	var owner string
	var priceFeed string
	var minimumUSD string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create the ledger with an owner and a price feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ownerAddr, err := parseAddressArg("--owner", owner)
			if err != nil {
				return err
			}

			var feedAddr domain.Address
			if priceFeed != "" {
				feedAddr, err = parseAddressArg("--price-feed", priceFeed)
				if err != nil {
					return err
				}
			}

			minimum, err := domain.ParseUSD(minimumUSD)
			if err != nil {
				return fmt.Errorf("--minimum-usd: %w", err)
			}

			ledger, err := app.service.Deploy(cmd.Context(), application.DeployCommand{
				Owner:      ownerAddr,
				PriceFeed:  feedAddr,
				MinimumUSD: minimum,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deployed ledger\nowner: %s\nprice feed: %s\nminimum: $%s\n",
				ledger.Owner, ledger.PriceFeed, domain.FormatUSD(ledger.MinimumUSD))
			return err
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner address allowed to withdraw")
	cmd.Flags().StringVar(&priceFeed, "price-feed", "", "Price feed address (default: the configured feed)")
	cmd.Flags().StringVar(&minimumUSD, "minimum-usd", app.cfg.GetString("ledger.minimum_usd"), "Minimum contribution in USD")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}
