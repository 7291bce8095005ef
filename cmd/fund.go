package cmd

import (
	"fmt"

	"github.com/bnema/fundme-cli/internal/application"
	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newFundCmd(app *app) *cobra.Command {
	var from string
	var value string

	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Send native value to the pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			caller, err := parseCaller(from)
			if err != nil {
				return err
			}
			amount, err := domain.ParseEther(value)
			if err != nil {
				return fmt.Errorf("--value: %w", err)
			}

			result, err := app.service.Fund(cmd.Context(), application.FundCommand{Caller: caller, Value: amount})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "funded %s ETH ($%s) from %s\n",
				domain.FormatEther(result.Value), domain.FormatUSD(result.ValueUSD), result.Funder); err != nil {
				return err
			}
			if result.NewFunder {
				if _, err := fmt.Fprintln(out, "new funder this cycle"); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(out, "total funded: %s ETH\npool: %s ETH\n",
				domain.FormatEther(result.Total), domain.FormatEther(result.Pool))
			return err
		},
	}

	addFromFlag(cmd, &from)
	cmd.Flags().StringVar(&value, "value", "", "Amount in ETH, e.g. 0.1")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}
