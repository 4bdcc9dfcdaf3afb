package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/calloway/tally/internal/cli"
	"github.com/calloway/tally/internal/config"

	"github.com/spf13/cobra"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the ledger identity",
	}

	cmd.AddCommand(registerCmd())
	cmd.AddCommand(whoamiCmd())

	return cmd
}

func registerCmd() *cobra.Command {
	var (
		name  string
		email string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Long: `Create a new user with a default zero-balance Bank account and
store the issued bearer token for later commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			authenticator, err := initAuth(store)
			if err != nil {
				return err
			}

			user, token, err := authenticator.Register(ctx, name, email)
			if err != nil {
				return err
			}

			tokenPath := config.DefaultTokenPath()
			if err := os.MkdirAll(filepath.Dir(tokenPath), 0700); err != nil {
				return fmt.Errorf("failed to create token directory: %w", err)
			}
			if err := os.WriteFile(tokenPath, []byte(token), 0600); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Registered %s (%s)", user.Name, user.Email)))
			fmt.Println(cli.SubtleStyle.Render("Token stored at " + tokenPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "user name (required)")
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user, err := requireOwner(ctx, store)
			if err != nil {
				return err
			}

			fmt.Printf("%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}
