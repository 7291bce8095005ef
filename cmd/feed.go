package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/cobra"
)

var errFeedNotWritable = errors.New("feed set requires feed.kind = " + feedKindMock)

func newFeedCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Inspect and manage the price feed",
	}

	cmd.AddCommand(
		newFeedShowCmd(app),
		newFeedSetCmd(app),
		newFeedAuthCmd(app),
	)

	return cmd
}

func newFeedShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the configured feed and its latest answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var price domain.Price
			read := func(ctx context.Context) error {
				var err error
				price, err = app.service.Price(ctx)
				return err
			}
			if err := runFeedRead(cmd, app, false, read); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "kind: %s\n", strings.ToLower(app.cfg.GetString("feed.kind"))); err != nil {
				return err
			}
			return writePrice(cmd, app.feed.Address(), price, false)
		},
	}
}

func newFeedSetCmd(app *app) *cobra.Command {
	var answer string
	var decimals uint8

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Publish a new answer to the local mock feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.mockFeed == nil {
				return errFeedNotWritable
			}

			value, ok := new(big.Int).SetString(strings.TrimSpace(answer), 10)
			if !ok {
				return fmt.Errorf("--answer: %w: %q", domain.ErrInvalidPrice, answer)
			}

			if !cmd.Flags().Changed("decimals") {
				current, err := app.mockFeed.LatestPrice(cmd.Context())
				if err != nil {
					return err
				}
				decimals = current.Decimals
			}

			price, err := app.mockFeed.UpdateAnswer(cmd.Context(), value, decimals)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "feed answer set to %s USD (round %d)\n", price.Rate(), price.RoundID)
			return err
		},
	}

	cmd.Flags().StringVar(&answer, "answer", "", "Raw feed answer scaled by --decimals, e.g. 200000000000")
	cmd.Flags().Uint8Var(&decimals, "decimals", 0, "Answer decimals (default keeps the current value)")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}

func newFeedAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API key sent to the http feed",
	}

	cmd.AddCommand(newFeedAuthSetCmd(app), newFeedAuthRemoveCmd(app))

	return cmd
}

func newFeedAuthSetCmd(app *app) *cobra.Command {
	var secretValue string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the feed API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref := app.cfg.GetString("feed.api_key_ref")
			if err := app.secretStore.Put(cmd.Context(), ref, secretValue); err != nil {
				return fmt.Errorf("store feed api key: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "stored feed api key at %s\n", ref)
			return err
		},
	}

	cmd.Flags().StringVar(&secretValue, "secret-value", "", "API key value")
	_ = cmd.MarkFlagRequired("secret-value")

	return cmd
}

func newFeedAuthRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Delete the stored feed API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref := app.cfg.GetString("feed.api_key_ref")
			if err := app.secretStore.Delete(cmd.Context(), ref); err != nil {
				return fmt.Errorf("remove feed api key: %w", err)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "removed feed api key")
			return err
		},
	}
}
