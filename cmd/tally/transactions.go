package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/calloway/tally/internal/cli"
	"github.com/calloway/tally/internal/ledger"
	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/service"

	"github.com/spf13/cobra"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `Record, list, edit, and delete credit and expense transactions.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(editTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

type txFlags struct {
	amount      string
	txType      string
	category    string
	description string
	date        string
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount, e.g. 12.50 (required)")
	cmd.Flags().StringVar(&f.txType, "type", "", "credit or expense (required)")
	cmd.Flags().StringVar(&f.category, "category", "", "category (required for expenses)")
	cmd.Flags().StringVar(&f.description, "description", "", "free-form description")
	cmd.Flags().StringVar(&f.date, "date", "", "date YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("type")
}

func (f *txFlags) parse() (model.Money, model.TransactionType, time.Time, error) {
	amount, err := parseAmountFlag(f.amount)
	if err != nil {
		return model.Money{}, "", time.Time{}, err
	}

	txType, err := model.ParseTransactionType(f.txType)
	if err != nil {
		return model.Money{}, "", time.Time{}, err
	}

	date := time.Now().UTC()
	if f.date != "" {
		date, err = parseDateFlag(f.date, "transaction")
		if err != nil {
			return model.Money{}, "", time.Time{}, err
		}
	}

	return amount, txType, date, nil
}

func addTxCmd() *cobra.Command {
	var (
		accountID string
		flags     txFlags
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			amount, txType, date, err := flags.parse()
			if err != nil {
				return err
			}

			store, svc, user, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn, err := svc.CreateTransaction(ctx, user.ID, ledger.TransactionInput{
				AccountID:   accountID,
				Amount:      amount,
				Type:        txType,
				Category:    flags.category,
				Description: flags.description,
				Date:        date,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s (%s)", txn.Type, txn.Amount, txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id (required)")
	_ = cmd.MarkFlagRequired("account")
	flags.register(cmd)

	return cmd
}

func listTxCmd() *cobra.Command {
	var (
		accountID string
		txType    string
		from      string
		to        string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter := service.TransactionFilter{
				AccountID: accountID,
				Limit:     limit,
			}
			if txType != "" {
				parsed, err := model.ParseTransactionType(txType)
				if err != nil {
					return err
				}
				filter.Type = parsed
			}
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
				// Include the whole day on the inclusive upper bound.
				t = t.Add(24*time.Hour - time.Nanosecond)
				filter.To = &t
			}

			store, svc, user, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := svc.ListTransactions(ctx, user.ID, filter)
			if err != nil {
				return err
			}

			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions match."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Description"))

			for _, txn := range transactions {
				amount := cli.CreditStyle.Render("+" + txn.Amount.String())
				if txn.Type == model.TypeExpense {
					amount = cli.ExpenseStyle.Render("-" + txn.Amount.String())
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					txn.ID,
					txn.Date.Format("2006-01-02"),
					txn.Type,
					amount,
					txn.Category,
					txn.Description)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "filter by account id")
	cmd.Flags().StringVar(&txType, "type", "", "filter by type (credit, expense)")
	cmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD (inclusive)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows to return (0 = all)")

	return cmd
}

func editTxCmd() *cobra.Command {
	var flags txFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rewrite a transaction",
		Long: `Replace a transaction's fields. The account balance is reconciled:
the old effect is reversed before the new one is applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, txType, date, err := flags.parse()
			if err != nil {
				return err
			}

			store, svc, user, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn, err := svc.UpdateTransaction(ctx, user.ID, args[0], ledger.TransactionUpdate{
				Amount:      amount,
				Type:        txType,
				Category:    flags.category,
				Description: flags.description,
				Date:        date,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated %s of %s", txn.Type, txn.Amount)))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction and reverse its balance effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, svc, user, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := svc.DeleteTransaction(ctx, user.ID, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transaction deleted"))
			return nil
		},
	}
}
