package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/cobra"
)

type historyEntry struct {
	ID        int64                  `json:"id"`
	Kind      domain.EventKind       `json:"kind"`
	Actor     domain.Address         `json:"actor"`
	AmountWei string                 `json:"amount_wei"`
	Funders   int                    `json:"funders"`
	Variant   domain.WithdrawVariant `json:"variant,omitempty"`
	At        time.Time              `json:"at"`
}

func newHistoryCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled ledger events, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			events, err := app.service.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				out := make([]historyEntry, 0, len(events))
				for _, event := range events {
					out = append(out, historyEntry{
						ID:        event.ID,
						Kind:      event.Kind,
						Actor:     event.Actor,
						AmountWei: event.Amount.String(),
						Funders:   event.Funders,
						Variant:   event.Variant,
						At:        event.At,
					})
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if len(events) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no events")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, event := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s ETH\t%s\n",
					event.At.Local().Format(time.DateTime), eventLabel(event), event.Actor, domain.FormatEther(event.Amount), fundersLabel(event))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func eventLabel(event domain.Event) string {
	if event.Kind == domain.EventWithdrawn && event.Variant != "" {
		return fmt.Sprintf("%s (%s)", event.Kind, event.Variant)
	}
	return string(event.Kind)
}

func fundersLabel(event domain.Event) string {
	if event.Kind == domain.EventDeployed {
		return "-"
	}
	return fmt.Sprintf("funders=%d", event.Funders)
}
