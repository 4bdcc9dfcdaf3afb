package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/service"
)

const importedCategory = "Imported"

// ImportResult summarizes a statement import.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportStatement records parsed statement entries against the account.
// Positive amounts become credits, negative amounts expenses. Entries
// already imported (matched by hash) are skipped. The whole batch is a
// single unit of work so the balance invariant holds afterwards no
// matter where a failure lands.
func (s *Service) ImportStatement(ctx context.Context, owner, accountID string, entries []model.StatementEntry) (ImportResult, error) {
	var result ImportResult
	err := s.inTx(ctx, func(tx service.Transaction) error {
		// The account is resolved even for an empty statement, so an
		// unknown or foreign account still reads as NotFound.
		account, err := tx.GetAccount(ctx, owner, accountID)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			txn, err := statementTransaction(owner, account.ID, entry)
			if err != nil {
				return err
			}

			seen, err := tx.HasImportHash(ctx, owner, txn.ImportHash)
			if err != nil {
				return err
			}
			if seen {
				result.Skipped++
				continue
			}

			if err := tx.CreateTransaction(ctx, txn); err != nil {
				return fmt.Errorf("import entry %s: %w", entry.FiTID, err)
			}
			if err := reconcile(ctx, tx, owner, account.ID, txn.Effect()); err != nil {
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	slog.Info("Statement imported",
		"account_id", accountID,
		"imported", result.Imported,
		"skipped", result.Skipped)
	return result, nil
}

func statementTransaction(owner, accountID string, entry model.StatementEntry) (*model.Transaction, error) {
	if entry.Amount.IsZero() {
		return nil, fmt.Errorf("%w: statement entry %s has zero amount", common.ErrValidation, entry.FiTID)
	}
	if entry.Date.IsZero() {
		return nil, fmt.Errorf("%w: statement entry %s has no date", common.ErrValidation, entry.FiTID)
	}

	txnType := model.TypeCredit
	amount := entry.Amount
	if amount.Cents < 0 {
		txnType = model.TypeExpense
		amount = amount.Neg()
	}

	description := strings.TrimSpace(entry.Description)
	if description == "" {
		description = "Imported statement entry"
	}

	txn := &model.Transaction{
		ID:          newID(),
		AccountID:   accountID,
		OwnerID:     owner,
		Amount:      amount,
		Type:        txnType,
		Description: description,
		Date:        entry.Date,
		CreatedAt:   time.Now().UTC(),
	}
	if txnType == model.TypeExpense {
		txn.Category = importedCategory
	}
	txn.ImportHash = txn.GenerateImportHash(entry.FiTID)
	return txn, nil
}
