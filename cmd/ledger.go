package cmd

import (
	"fmt"
	"strconv"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLedgerCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Query ledger state",
	}

	cmd.AddCommand(
		newLedgerOwnerCmd(app),
		newLedgerPriceFeedCmd(app),
		newLedgerFundersCmd(app),
		newLedgerFunderCmd(app),
		newLedgerAmountCmd(app),
	)

	return cmd
}

func newLedgerOwnerCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "owner",
		Short: "Print the owner address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := app.service.Owner(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), owner)
			return err
		},
	}
}

func newLedgerPriceFeedCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "price-feed",
		Short: "Print the price feed address the ledger was deployed with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			feed, err := app.service.PriceFeed(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), feed)
			return err
		},
	}
}

func newLedgerFundersCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "funders",
		Short: "List funders of the current cycle in contribution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			contributions, err := app.service.Contributions(cmd.Context())
			if err != nil {
				return err
			}

			for i, funder := range contributions {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", i, funder.Address, domain.FormatEther(funder.Amount)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newLedgerFunderCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "funder <index>",
		Short: "Print the funder at index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index %q: %w", args[0], err)
			}

			funder, err := app.service.Funder(cmd.Context(), index)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), funder)
			return err
		},
	}
}

func newLedgerAmountCmd(app *app) *cobra.Command {
	var wei bool

	cmd := &cobra.Command{
		Use:   "amount <address>",
		Short: "Print how much an address funded this cycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			funder, err := parseAddressArg("address", args[0])
			if err != nil {
				return err
			}

			amount, err := app.service.AmountFunded(cmd.Context(), funder)
			if err != nil {
				return err
			}

			if wei {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), amount.String())
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), domain.FormatEther(amount))
			return err
		},
	}

	cmd.Flags().BoolVar(&wei, "wei", false, "Print the amount in wei")

	return cmd
}
