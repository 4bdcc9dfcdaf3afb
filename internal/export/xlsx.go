// Package export writes ledger data to spreadsheet files.
package export

import (
	"fmt"

	"github.com/calloway/tally/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	accountsSheet     = "Accounts"
	transactionsSheet = "Transactions"
)

// WriteStatement writes the owner's accounts and transactions to an
// .xlsx workbook at path, one sheet each.
func WriteStatement(path string, accounts []model.Account, transactions []model.Transaction) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// excelize starts with a default sheet; rename it instead of
	// leaving an empty "Sheet1" behind.
	if err := f.SetSheetName("Sheet1", accountsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(transactionsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeAccounts(f, accounts); err != nil {
		return err
	}
	if err := writeTransactions(f, transactions); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeAccounts(f *excelize.File, accounts []model.Account) error {
	header := []any{"Name", "Type", "Balance"}
	if err := f.SetSheetRow(accountsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write accounts header: %w", err)
	}

	for i, account := range accounts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell: %w", err)
		}
		row := []any{account.Name, string(account.Type), account.Amount.String()}
		if err := f.SetSheetRow(accountsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write account row: %w", err)
		}
	}
	return nil
}

func writeTransactions(f *excelize.File, transactions []model.Transaction) error {
	header := []any{"Date", "Type", "Amount", "Category", "Description", "Account"}
	if err := f.SetSheetRow(transactionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write transactions header: %w", err)
	}

	for i, txn := range transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell: %w", err)
		}
		row := []any{
			txn.Date.Format("2006-01-02"),
			string(txn.Type),
			txn.Amount.String(),
			txn.Category,
			txn.Description,
			txn.AccountID,
		}
		if err := f.SetSheetRow(transactionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write transaction row: %w", err)
		}
	}
	return nil
}
