package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/model"
)

// ListAccounts returns all accounts belonging to the owner, oldest first.
func (s *SQLiteStorage) ListAccounts(ctx context.Context, owner string) ([]model.Account, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	return listAccountsTx(ctx, s.db, owner)
}

func listAccountsTx(ctx context.Context, q queryable, owner string) ([]model.Account, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, owner_id, name, type, amount_cents, created_at, updated_at
		FROM accounts
		WHERE owner_id = ?
		ORDER BY created_at ASC, id ASC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		accounts = append(accounts, *account)
	}

	return accounts, rows.Err()
}

// GetAccount retrieves a single account scoped to the owner.
func (s *SQLiteStorage) GetAccount(ctx context.Context, owner, id string) (*model.Account, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getAccountTx(ctx, s.db, owner, id)
}

func getAccountTx(ctx context.Context, q queryable, owner, id string) (*model.Account, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, owner_id, name, type, amount_cents, created_at, updated_at
		FROM accounts
		WHERE id = ? AND owner_id = ?
	`, id, owner)

	account, err := scanAccountRow(row)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// CreateAccount inserts a new account record.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}
	return createAccountTx(ctx, s.db, account)
}

func createAccountTx(ctx context.Context, q queryable, account *model.Account) error {
	now := time.Now().UTC()
	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO accounts (id, owner_id, name, type, amount_cents, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, account.ID, account.OwnerID, account.Name, string(account.Type),
		account.Amount.Cents, createdAt, now)
	if err != nil {
		return fmt.Errorf("failed to insert account %s: %w", account.ID, err)
	}
	return nil
}

// UpdateAccountDetails renames or retypes an account. The cached balance
// is deliberately not touchable through this path.
func (s *SQLiteStorage) UpdateAccountDetails(ctx context.Context, owner, id, name string, accountType model.AccountType) error {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}
	return updateAccountDetailsTx(ctx, s.db, owner, id, name, accountType)
}

func updateAccountDetailsTx(ctx context.Context, q queryable, owner, id, name string, accountType model.AccountType) error {
	result, err := q.ExecContext(ctx, `
		UPDATE accounts
		SET name = ?, type = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`, name, string(accountType), time.Now().UTC(), id, owner)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return requireRowAffected(result)
}

// ApplyBalanceDelta atomically adjusts the account's cached balance with
// a single in-store increment. There is no client-side read of the old
// value, so concurrent deltas to the same account serialize in SQLite
// and no update is lost.
func (s *SQLiteStorage) ApplyBalanceDelta(ctx context.Context, owner, accountID string, delta model.Money) error {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return err
	}
	return applyBalanceDeltaTx(ctx, s.db, owner, accountID, delta)
}

func applyBalanceDeltaTx(ctx context.Context, q queryable, owner, accountID string, delta model.Money) error {
	result, err := q.ExecContext(ctx, `
		UPDATE accounts
		SET amount_cents = amount_cents + ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`, delta.Cents, time.Now().UTC(), accountID, owner)
	if err != nil {
		return fmt.Errorf("failed to apply balance delta: %w", err)
	}
	return requireRowAffected(result)
}

// DeleteAccount removes the account row. Cascading transaction deletion
// is the engine's responsibility, inside the same unit of work.
func (s *SQLiteStorage) DeleteAccount(ctx context.Context, owner, id string) error {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return deleteAccountTx(ctx, s.db, owner, id)
}

func deleteAccountTx(ctx context.Context, q queryable, owner, id string) error {
	result, err := q.ExecContext(ctx, `
		DELETE FROM accounts
		WHERE id = ? AND owner_id = ?
	`, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireRowAffected(result)
}

// requireRowAffected maps "no rows touched" to ErrNotFound. Under owner
// scoping that covers both absent rows and rows owned by someone else.
func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var account model.Account
	var accountType string
	err := row.Scan(
		&account.ID,
		&account.OwnerID,
		&account.Name,
		&accountType,
		&account.Amount.Cents,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	account.Type = model.AccountType(accountType)
	return &account, nil
}

func scanAccountRow(row *sql.Row) (*model.Account, error) {
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return account, nil
}
