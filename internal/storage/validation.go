// Package storage provides the data persistence layer for the tally application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/calloway/tally/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidAccount     = errors.New("invalid account")
	ErrInvalidUser        = errors.New("invalid user")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateOwnerScope guards every owner-scoped call. The owner parameter
// is mandatory by signature; an empty value here is a programming error,
// never a broader query.
func validateOwnerScope(ctx context.Context, owner string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return validateString(owner, "owner")
}

// validateUser validates a user record.
func validateUser(user *model.User) error {
	if user == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}
	if user.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidUser)
	}
	if strings.TrimSpace(user.Email) == "" {
		return fmt.Errorf("%w: missing email", ErrInvalidUser)
	}
	return nil
}

// validateAccount validates an account record.
func validateAccount(account *model.Account) error {
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if account.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAccount)
	}
	if account.OwnerID == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidAccount)
	}
	if strings.TrimSpace(account.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidAccount)
	}
	switch account.Type {
	case model.AccountBank, model.AccountCash, model.AccountWallet, model.AccountOther:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAccount, account.Type)
	}
	return nil
}

// validateTransaction validates a transaction record.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.OwnerID == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidTransaction)
	}
	if txn.AccountID == "" {
		return fmt.Errorf("%w: missing account ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	switch txn.Type {
	case model.TypeCredit, model.TypeExpense:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txn.Type)
	}
	if !txn.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	return nil
}
