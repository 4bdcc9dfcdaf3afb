package main

import (
	"fmt"
	"time"

	"github.com/calloway/tally/internal/cli"
	"github.com/calloway/tally/internal/export"
	"github.com/calloway/tally/internal/service"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		output string
		from   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export accounts and transactions to an XLSX workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter := service.TransactionFilter{}
			if from != "" {
				t, err := parseDateFlag(from, "from")
				if err != nil {
					return err
				}
				filter.From = &t
			}
			if to != "" {
				t, err := parseDateFlag(to, "to")
				if err != nil {
					return err
				}
				t = t.Add(24*time.Hour - time.Nanosecond)
				filter.To = &t
			}

			store, svc, user, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			accounts, err := svc.ListAccounts(ctx, user.ID)
			if err != nil {
				return err
			}

			transactions, err := svc.ListTransactions(ctx, user.ID, filter)
			if err != nil {
				return err
			}

			if err := export.WriteStatement(output, accounts, transactions); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d accounts and %d transactions to %s",
				len(accounts), len(transactions), output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "tally.xlsx", "output file path")
	cmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD (inclusive)")

	return cmd
}
