package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/calloway/tally/internal/cli"

	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show a spending summary",
		Long:  `Summarize accounts, net worth, expenses by category, and monthly totals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			now := time.Now().UTC()
			end := now
			start := now.AddDate(-1, 0, 0)
			if from != "" {
				t, err := parseDateFlag(from, "from")
				if err != nil {
					return err
				}
				start = t
			}
			if to != "" {
				t, err := parseDateFlag(to, "to")
				if err != nil {
					return err
				}
				end = t.Add(24*time.Hour - time.Nanosecond)
			}

			store, svc, user, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary, err := svc.Summary(ctx, user.ID, start, end)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Accounts"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, account := range summary.Accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\n", account.Name, account.Type, account.Amount)
			}
			fmt.Fprintf(w, "%s\t\t%s\n", cli.HeaderStyle.Render("Net worth"), summary.NetWorth)
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to render accounts: %w", err)
			}

			if len(summary.ByCategory) > 0 {
				fmt.Println()
				fmt.Println(cli.FormatTitle("Expenses by category"))
				w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, row := range summary.ByCategory {
					fmt.Fprintf(w, "%s\t%s\n", row.Category, cli.ExpenseStyle.Render(row.Total.String()))
				}
				if err := w.Flush(); err != nil {
					return fmt.Errorf("failed to render categories: %w", err)
				}
			}

			if len(summary.ByMonth) > 0 {
				fmt.Println()
				fmt.Println(cli.FormatTitle("Monthly totals"))
				w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					cli.HeaderStyle.Render("Month"),
					cli.HeaderStyle.Render("Credits"),
					cli.HeaderStyle.Render("Expenses"),
					cli.HeaderStyle.Render("Net"))
				for _, row := range summary.ByMonth {
					net := row.Credits.Add(row.Expenses.Neg())
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						row.Month,
						cli.CreditStyle.Render(row.Credits.String()),
						cli.ExpenseStyle.Render(row.Expenses.String()),
						net)
				}
				if err := w.Flush(); err != nil {
					return fmt.Errorf("failed to render months: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD (default: one year ago)")
	cmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD (default: today)")

	return cmd
}
