// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/calloway/tally/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// From and To are inclusive on both ends. Zero values mean "no filter".
type TransactionFilter struct {
	From      *time.Time
	To        *time.Time
	AccountID string
	Type      model.TransactionType
	Limit     int
	Offset    int
}

// Storage defines the contract for the persistence layer. Every account
// and transaction operation takes the owner explicitly; there is no way
// to issue an unscoped query.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Account operations
	ListAccounts(ctx context.Context, owner string) ([]model.Account, error)
	GetAccount(ctx context.Context, owner, id string) (*model.Account, error)
	CreateAccount(ctx context.Context, account *model.Account) error
	UpdateAccountDetails(ctx context.Context, owner, id, name string, accountType model.AccountType) error
	// ApplyBalanceDelta atomically increments the account's cached
	// balance in the store. It never reads the balance client-side, so
	// concurrent deltas to the same account cannot lose updates.
	ApplyBalanceDelta(ctx context.Context, owner, accountID string, delta model.Money) error
	DeleteAccount(ctx context.Context, owner, id string) error

	// Transaction operations
	GetTransaction(ctx context.Context, owner, id string) (*model.Transaction, error)
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, owner, id string) error
	DeleteAccountTransactions(ctx context.Context, owner, accountID string) (int64, error)
	ListTransactions(ctx context.Context, owner string, filter TransactionFilter) ([]model.Transaction, error)
	HasImportHash(ctx context.Context, owner, hash string) (bool, error)

	// Dashboard aggregates
	NetWorth(ctx context.Context, owner string) (model.Money, error)
	ExpensesByCategory(ctx context.Context, owner string, from, to time.Time) ([]CategoryTotal, error)
	TotalsByMonth(ctx context.Context, owner string, from, to time.Time) ([]MonthTotal, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction. Mutations that touch
// both a transaction record and its account's balance run inside one of
// these so they commit or roll back together.
type Transaction interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within the transaction
	Storage
}

// CategoryTotal is an aggregated expense sum for one category.
type CategoryTotal struct {
	Category string
	Total    model.Money
}

// MonthTotal holds credit and expense sums for one calendar month.
type MonthTotal struct {
	Month    string // "2006-01"
	Credits  model.Money
	Expenses model.Money
}

// Summary is the dashboard view of an owner's finances.
type Summary struct {
	Accounts   []model.Account
	ByCategory []CategoryTotal
	ByMonth    []MonthTotal
	NetWorth   model.Money
}
