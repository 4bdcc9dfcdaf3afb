package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/service"
)

// sqliteTransaction wraps sql.Tx to implement service.Transaction. Every
// method delegates to the shared query helpers with the transaction as
// the executor, so reads inside a unit of work see its own writes.
type sqliteTransaction struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTransaction) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTransaction) Rollback() error {
	return t.tx.Rollback()
}

func (t *sqliteTransaction) CreateUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUser(user); err != nil {
		return err
	}
	return createUserTx(ctx, t.tx, user)
}

func (t *sqliteTransaction) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getUserByIDTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}
	return getUserByEmailTx(ctx, t.tx, email)
}

func (t *sqliteTransaction) ListAccounts(ctx context.Context, owner string) ([]model.Account, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	return listAccountsTx(ctx, t.tx, owner)
}

func (t *sqliteTransaction) GetAccount(ctx context.Context, owner, id string) (*model.Account, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getAccountTx(ctx, t.tx, owner, id)
}

func (t *sqliteTransaction) CreateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}
	return createAccountTx(ctx, t.tx, account)
}

func (t *sqliteTransaction) UpdateAccountDetails(ctx context.Context, owner, id, name string, accountType model.AccountType) error {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}
	return updateAccountDetailsTx(ctx, t.tx, owner, id, name, accountType)
}

func (t *sqliteTransaction) ApplyBalanceDelta(ctx context.Context, owner, accountID string, delta model.Money) error {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return err
	}
	return applyBalanceDeltaTx(ctx, t.tx, owner, accountID, delta)
}

func (t *sqliteTransaction) DeleteAccount(ctx context.Context, owner, id string) error {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return deleteAccountTx(ctx, t.tx, owner, id)
}

func (t *sqliteTransaction) GetTransaction(ctx context.Context, owner, id string) (*model.Transaction, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getTransactionTx(ctx, t.tx, owner, id)
}

func (t *sqliteTransaction) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	return createTransactionTx(ctx, t.tx, txn)
}

func (t *sqliteTransaction) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	return updateTransactionTx(ctx, t.tx, txn)
}

func (t *sqliteTransaction) DeleteTransaction(ctx context.Context, owner, id string) error {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return deleteTransactionTx(ctx, t.tx, owner, id)
}

func (t *sqliteTransaction) DeleteAccountTransactions(ctx context.Context, owner, accountID string) (int64, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return 0, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return 0, err
	}
	return deleteAccountTransactionsTx(ctx, t.tx, owner, accountID)
}

func (t *sqliteTransaction) ListTransactions(ctx context.Context, owner string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	return listTransactionsTx(ctx, t.tx, owner, filter)
}

func (t *sqliteTransaction) HasImportHash(ctx context.Context, owner, hash string) (bool, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return false, err
	}
	if err := validateString(hash, "hash"); err != nil {
		return false, err
	}
	return hasImportHashTx(ctx, t.tx, owner, hash)
}

func (t *sqliteTransaction) NetWorth(ctx context.Context, owner string) (model.Money, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return model.Money{}, err
	}
	return netWorthTx(ctx, t.tx, owner)
}

func (t *sqliteTransaction) ExpensesByCategory(ctx context.Context, owner string, from, to time.Time) ([]service.CategoryTotal, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	return expensesByCategoryTx(ctx, t.tx, owner, from, to)
}

func (t *sqliteTransaction) TotalsByMonth(ctx context.Context, owner string, from, to time.Time) ([]service.MonthTotal, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	return totalsByMonthTx(ctx, t.tx, owner, from, to)
}

func (t *sqliteTransaction) Migrate(_ context.Context) error {
	// Migrations should not be run within a transaction
	return fmt.Errorf("migrations cannot be run within a transaction")
}

func (t *sqliteTransaction) BeginTx(_ context.Context) (service.Transaction, error) {
	// Nested transactions not supported
	return nil, fmt.Errorf("nested transactions not supported")
}

func (t *sqliteTransaction) Close() error {
	// Transactions should be committed or rolled back, not closed
	return fmt.Errorf("transactions must be committed or rolled back, not closed")
}
