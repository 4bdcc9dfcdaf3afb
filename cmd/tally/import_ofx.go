package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/calloway/tally/internal/cli"
	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/ofx"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "import-ofx <file>...",
		Short: "Import bank statements from OFX/QFX files",
		Long: `Parse OFX or QFX statement downloads and record their transactions.
Entries already imported are skipped, so re-running on the same file is safe.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var files []string
			for _, arg := range args {
				matches, err := filepath.Glob(arg)
				if err != nil {
					return fmt.Errorf("invalid file pattern %q: %w", arg, err)
				}
				if len(matches) == 0 {
					return fmt.Errorf("no files match %q", arg)
				}
				files = append(files, matches...)
			}

			store, svc, user, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			parser := ofx.NewParser()
			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetDescription("Importing statements"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish())

			var imported, skipped int
			for _, file := range files {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", file, err)
				}

				entries, err := parser.ParseFile(ctx, f)
				_ = f.Close()
				if err != nil {
					return fmt.Errorf("failed to parse %s: %w", file, err)
				}

				result, err := svc.ImportStatement(ctx, user.ID, accountID, entries)
				if err != nil {
					return fmt.Errorf("failed to import %s: %w", file, err)
				}

				imported += result.Imported
				skipped += result.Skipped
				_ = bar.Add(1)
			}

			common.LogInfo("statement import finished", common.Fields{
				"files":    len(files),
				"imported": imported,
				"skipped":  skipped,
			})
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d duplicates skipped)", imported, skipped)))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account to import into (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
