package cmd

import "github.com/spf13/cobra"

func Execute() error {
	rootCmd, closeApp := newRootCmd()
	defer closeApp()

	return rootCmd.Execute()
}

func newRootCmd() (*cobra.Command, func()) {
	rootCmd := &cobra.Command{
		Use:           "fm",
		Short:         "FundMe ledger CLI (fm): a shared funding pool with a USD minimum",
		Long:          "fm runs a FundMe ledger: anyone can fund the pool with at least the minimum USD value at the oracle rate, and only the owner can withdraw the whole pool.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.AddCommand(newVersionCmd())

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, func() {}
	}

	rootCmd.AddCommand(
		newDeployCmd(app),
		newFundCmd(app),
		newWithdrawCmd(app),
		newCheaperWithdrawCmd(app),
		newLedgerCmd(app),
		newStatusCmd(app),
		newPriceCmd(app),
		newHistoryCmd(app),
		newFeedCmd(app),
		newWalletCmd(app),
	)

	return rootCmd, func() { _ = app.close() }
}
