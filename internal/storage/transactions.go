package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/service"
)

// GetTransaction retrieves a single transaction scoped to the owner.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, owner, id string) (*model.Transaction, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getTransactionTx(ctx, s.db, owner, id)
}

func getTransactionTx(ctx context.Context, q queryable, owner, id string) (*model.Transaction, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, account_id, owner_id, amount_cents, type, category,
		       description, date, created_at, import_hash
		FROM transactions
		WHERE id = ? AND owner_id = ?
	`, id, owner)

	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return txn, nil
}

// CreateTransaction inserts a new transaction record.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	return createTransactionTx(ctx, s.db, txn)
}

func createTransactionTx(ctx context.Context, q queryable, txn *model.Transaction) error {
	createdAt := txn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var importHash any
	if txn.ImportHash != "" {
		importHash = txn.ImportHash
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO transactions (
			id, account_id, owner_id, amount_cents, type, category,
			description, date, created_at, import_hash
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, txn.ID, txn.AccountID, txn.OwnerID, txn.Amount.Cents, string(txn.Type),
		txn.Category, txn.Description, txn.Date, createdAt, importHash)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
	}
	return nil
}

// UpdateTransaction rewrites the mutable fields of an existing
// transaction, scoped to its owner.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	return updateTransactionTx(ctx, s.db, txn)
}

func updateTransactionTx(ctx context.Context, q queryable, txn *model.Transaction) error {
	result, err := q.ExecContext(ctx, `
		UPDATE transactions
		SET amount_cents = ?, type = ?, category = ?, description = ?, date = ?
		WHERE id = ? AND owner_id = ?
	`, txn.Amount.Cents, string(txn.Type), txn.Category, txn.Description,
		txn.Date, txn.ID, txn.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return requireRowAffected(result)
}

// DeleteTransaction removes a single transaction scoped to the owner.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, owner, id string) error {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return deleteTransactionTx(ctx, s.db, owner, id)
}

func deleteTransactionTx(ctx context.Context, q queryable, owner, id string) error {
	result, err := q.ExecContext(ctx, `
		DELETE FROM transactions
		WHERE id = ? AND owner_id = ?
	`, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireRowAffected(result)
}

// DeleteAccountTransactions removes every transaction referencing the
// account, returning how many rows went away. Zero is not an error; an
// account may simply have no history.
func (s *SQLiteStorage) DeleteAccountTransactions(ctx context.Context, owner, accountID string) (int64, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return 0, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return 0, err
	}
	return deleteAccountTransactionsTx(ctx, s.db, owner, accountID)
}

func deleteAccountTransactionsTx(ctx context.Context, q queryable, owner, accountID string) (int64, error) {
	result, err := q.ExecContext(ctx, `
		DELETE FROM transactions
		WHERE account_id = ? AND owner_id = ?
	`, accountID, owner)
	if err != nil {
		return 0, fmt.Errorf("failed to delete account transactions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}

// ListTransactions returns the owner's transactions matching the filter,
// sorted by date descending with a stable tiebreak.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, owner string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	return listTransactionsTx(ctx, s.db, owner, filter)
}

func listTransactionsTx(ctx context.Context, q queryable, owner string, filter service.TransactionFilter) ([]model.Transaction, error) {
	query := `
		SELECT id, account_id, owner_id, amount_cents, type, category,
		       description, date, created_at, import_hash
		FROM transactions
		WHERE owner_id = ?
	`
	args := []any{owner}

	if filter.AccountID != "" {
		query += " AND account_id = ?"
		args = append(args, filter.AccountID)
	}
	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, string(filter.Type))
	}
	if filter.From != nil {
		query += " AND date >= ?"
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += " AND date <= ?"
		args = append(args, *filter.To)
	}

	query += " ORDER BY date DESC, created_at DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		transactions = append(transactions, *txn)
	}

	return transactions, rows.Err()
}

// HasImportHash reports whether an imported statement entry with this
// hash already exists for the owner.
func (s *SQLiteStorage) HasImportHash(ctx context.Context, owner, hash string) (bool, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return false, err
	}
	if err := validateString(hash, "hash"); err != nil {
		return false, err
	}
	return hasImportHashTx(ctx, s.db, owner, hash)
}

func hasImportHashTx(ctx context.Context, q queryable, owner, hash string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM transactions
			WHERE owner_id = ? AND import_hash = ?
		)
	`, owner, hash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check import hash: %w", err)
	}
	return exists, nil
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var txnType string
	var category, description, importHash sql.NullString

	err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&txn.OwnerID,
		&txn.Amount.Cents,
		&txnType,
		&category,
		&description,
		&txn.Date,
		&txn.CreatedAt,
		&importHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Type = model.TransactionType(txnType)
	if category.Valid {
		txn.Category = category.String
	}
	if description.Valid {
		txn.Description = description.String
	}
	if importHash.Valid {
		txn.ImportHash = importHash.String
	}

	return &txn, nil
}
