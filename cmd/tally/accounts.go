package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/calloway/tally/internal/cli"
	"github.com/calloway/tally/internal/ledger"
	"github.com/calloway/tally/internal/model"

	"github.com/spf13/cobra"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `List, add, update, and delete the accounts money is tracked in.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(updateAccountCmd())
	cmd.AddCommand(deleteAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts with balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, svc, user, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			accounts, err := svc.ListAccounts(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if len(accounts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No accounts found. Use 'tally accounts add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Balance"))

			var total model.Money
			for _, account := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					account.ID, account.Name, account.Type, account.Amount)
				total = total.Add(account.Amount)
			}
			fmt.Fprintf(w, "\t\t%s\t%s\n", cli.HeaderStyle.Render("Net worth"), total)

			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	var (
		name        string
		accountType string
		initial     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new account",
		Long: `Create an account. A positive --initial amount is recorded as an
"Initial Balance" credit transaction so the balance stays reconciled
with the account's history.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			parsedType, err := model.ParseAccountType(accountType)
			if err != nil {
				return err
			}

			in := ledger.AccountInput{Name: name, Type: parsedType}
			if initial != "" {
				amount, parseErr := parseAmountFlag(initial)
				if parseErr != nil {
					return parseErr
				}
				in.Initial = amount
			}

			store, svc, user, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			account, err := svc.CreateAccount(ctx, user.ID, in)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created account %s (%s)", account.Name, account.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&accountType, "type", "Bank", "account type (Bank, Cash, Wallet, Other)")
	cmd.Flags().StringVar(&initial, "initial", "", "initial balance, e.g. 250.00")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func updateAccountCmd() *cobra.Command {
	var (
		name        string
		accountType string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or retype an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			parsedType, err := model.ParseAccountType(accountType)
			if err != nil {
				return err
			}

			store, svc, user, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			account, err := svc.UpdateAccount(ctx, user.ID, args[0], name, parsedType)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated account %s", account.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new account name (required)")
	cmd.Flags().StringVar(&accountType, "type", "Bank", "new account type")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func deleteAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account and its transaction history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, svc, user, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := svc.DeleteAccount(ctx, user.ID, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Account deleted"))
			return nil
		},
	}
}
