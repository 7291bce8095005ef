package cmd

import (
	"fmt"

	"github.com/bnema/fundme-cli/internal/application"
	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newWithdrawCmd(app *app) *cobra.Command {
	var from string
	var cheaper bool

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Drain the pool to the owner and reset all contributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variant := domain.WithdrawStandard
			if cheaper {
				variant = domain.WithdrawCheaper
			}
			return runWithdraw(cmd, app, from, variant)
		},
	}

	addFromFlag(cmd, &from)
	cmd.Flags().BoolVar(&cheaper, "cheaper", false, "Clear contributions from a single copy of the funder list")

	return cmd
}

func newCheaperWithdrawCmd(app *app) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "cheaper-withdraw",
		Short: "Same as withdraw --cheaper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithdraw(cmd, app, from, domain.WithdrawCheaper)
		},
	}

	addFromFlag(cmd, &from)

	return cmd
}

func runWithdraw(cmd *cobra.Command, app *app, from string, variant domain.WithdrawVariant) error {
	caller, err := parseCaller(from)
	if err != nil {
		return err
	}

	result, err := app.service.Withdraw(cmd.Context(), application.WithdrawCommand{Caller: caller, Variant: variant})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "withdrew %s ETH to %s\nfunders cleared: %d\n",
		domain.FormatEther(result.Amount), result.Owner, result.Funders)
	return err
}
