// Package ledger implements the balance reconciliation engine: the
// operations that keep every account's cached balance equal to the
// signed sum of its transactions, under strict per-owner scoping.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/service"

	"github.com/google/uuid"
)

// Categories used for transactions the engine creates on its own.
const initialBalanceCategory = "Initial Balance"

// Service exposes the core ledger operations. All methods take the
// already-authenticated owner; the service never trusts an owner field
// arriving inside input payloads.
type Service struct {
	store service.Storage
}

// New creates a ledger service on top of the given storage.
func New(store service.Storage) *Service {
	return &Service{store: store}
}

// AccountInput describes a new account.
type AccountInput struct {
	Name    string
	Type    model.AccountType
	Initial model.Money
}

func (in *AccountInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: account name is required", common.ErrValidation)
	}
	switch in.Type {
	case model.AccountBank, model.AccountCash, model.AccountWallet, model.AccountOther:
	default:
		return fmt.Errorf("%w: unknown account type %q", common.ErrValidation, in.Type)
	}
	if in.Initial.Cents < 0 {
		return fmt.Errorf("%w: initial amount cannot be negative", common.ErrValidation)
	}
	return nil
}

// TransactionInput describes a new transaction.
type TransactionInput struct {
	Date        time.Time
	AccountID   string
	Category    string
	Description string
	Type        model.TransactionType
	Amount      model.Money
}

func (in *TransactionInput) validate() error {
	if strings.TrimSpace(in.AccountID) == "" {
		return fmt.Errorf("%w: account id is required", common.ErrValidation)
	}
	return validateTransactionFields(in.Amount, in.Type, in.Category, in.Date)
}

// TransactionUpdate carries the mutable fields of an existing
// transaction. The account a transaction belongs to never changes.
type TransactionUpdate struct {
	Date        time.Time
	Category    string
	Description string
	Type        model.TransactionType
	Amount      model.Money
}

func (in *TransactionUpdate) validate() error {
	return validateTransactionFields(in.Amount, in.Type, in.Category, in.Date)
}

func validateTransactionFields(amount model.Money, txnType model.TransactionType, category string, date time.Time) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", common.ErrValidation)
	}
	switch txnType {
	case model.TypeCredit, model.TypeExpense:
	default:
		return fmt.Errorf("%w: transaction type must be credit or expense", common.ErrValidation)
	}
	if txnType == model.TypeExpense && strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: category is required for expenses", common.ErrValidation)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", common.ErrValidation)
	}
	return nil
}

// inTx runs fn inside a storage transaction, rolling back on any error.
func (s *Service) inTx(ctx context.Context, fn func(tx service.Transaction) error) error {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger transaction: %w", err)
	}
	return nil
}

// reconcile applies a balance delta inside a unit of work. The account
// was already resolved in the same transaction, so zero affected rows
// means the paired write cannot be completed; that aborts the whole
// operation rather than leaving a transaction without its balance
// effect.
func reconcile(ctx context.Context, tx service.Transaction, owner, accountID string, delta model.Money) error {
	if err := tx.ApplyBalanceDelta(ctx, owner, accountID, delta); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: account %s disappeared during mutation", common.ErrConsistency, accountID)
		}
		return fmt.Errorf("apply balance delta: %w", err)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}
