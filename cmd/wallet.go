package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newWalletCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage local native balances",
	}

	cmd.AddCommand(
		newWalletShowCmd(app),
		newWalletListCmd(app),
		newWalletCreditCmd(app),
		newWalletRejectCmd(app),
	)

	return cmd
}

func newWalletShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <address>",
		Short: "Print a wallet balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseAddressArg("address", args[0])
			if err != nil {
				return err
			}

			entry, err := app.wallets.Lookup(cmd.Context(), address)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\nbalance: %s ETH\nrejects transfers: %t\n",
				entry.Address, domain.FormatEther(entry.Balance), entry.RejectTransfers)
			return err
		},
	}
}

func newWalletListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every known wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.wallets.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no wallets")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, entry := range entries {
				flag := ""
				if entry.RejectTransfers {
					flag = "rejects transfers"
				}
				fmt.Fprintf(w, "%s\t%s ETH\t%s\n", entry.Address, domain.FormatEther(entry.Balance), flag)
			}
			return w.Flush()
		},
	}
}

func newWalletCreditCmd(app *app) *cobra.Command {
	var rawAddress string
	var value string

	cmd := &cobra.Command{
		Use:   "credit",
		Short: "Add native balance to a wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			address, err := parseAddressArg("--address", rawAddress)
			if err != nil {
				return err
			}
			amount, err := domain.ParseEther(value)
			if err != nil {
				return fmt.Errorf("--value: %w", err)
			}

			if err := app.wallets.Mint(cmd.Context(), address, amount); err != nil {
				return err
			}

			balance, err := app.wallets.BalanceOf(cmd.Context(), address)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "credited %s ETH to %s\nbalance: %s ETH\n",
				domain.FormatEther(amount), address, domain.FormatEther(balance))
			return err
		},
	}

	cmd.Flags().StringVar(&rawAddress, "address", "", "Wallet address")
	cmd.Flags().StringVar(&value, "value", "", "Amount in ETH")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newWalletRejectCmd(app *app) *cobra.Command {
	var rawAddress string
	var off bool

	cmd := &cobra.Command{
		Use:   "reject",
		Short: "Make a wallet refuse incoming transfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			address, err := parseAddressArg("--address", rawAddress)
			if err != nil {
				return err
			}

			if err := app.wallets.SetRejectTransfers(cmd.Context(), address, !off); err != nil {
				return err
			}

			state := "now rejects"
			if off {
				state = "accepts"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s incoming transfers\n", address, state)
			return err
		},
	}

	cmd.Flags().StringVar(&rawAddress, "address", "", "Wallet address")
	cmd.Flags().BoolVar(&off, "off", false, "Accept transfers again")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}
