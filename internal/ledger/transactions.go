package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/service"
)

// CreateTransaction records a credit or expense against one of the
// owner's accounts and applies its effect to the account's cached
// balance. Both writes happen in one storage transaction: either the
// transaction exists and the balance reflects it, or neither happened.
func (s *Service) CreateTransaction(ctx context.Context, owner string, in TransactionInput) (*model.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	txn := &model.Transaction{
		ID:          newID(),
		AccountID:   in.AccountID,
		OwnerID:     owner,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.inTx(ctx, func(tx service.Transaction) error {
		// Resolve owner-scoped before writing anything; an account that
		// is absent or owned by someone else is the same NotFound.
		account, err := tx.GetAccount(ctx, owner, in.AccountID)
		if err != nil {
			return err
		}

		if err := tx.CreateTransaction(ctx, txn); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		return reconcile(ctx, tx, owner, account.ID, txn.Effect())
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Transaction recorded",
		"transaction_id", txn.ID,
		"account_id", txn.AccountID,
		"type", string(txn.Type),
		"amount_cents", txn.Amount.Cents)
	return txn, nil
}

// UpdateTransaction rewrites a transaction's fields and reconciles the
// account balance: the old effect is reversed in full before the new
// effect is applied, since old and new may sit on opposite sides of
// zero. Net result equals recomputing the delta directly.
func (s *Service) UpdateTransaction(ctx context.Context, owner, id string, in TransactionUpdate) (*model.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var updated *model.Transaction
	err := s.inTx(ctx, func(tx service.Transaction) error {
		old, err := tx.GetTransaction(ctx, owner, id)
		if err != nil {
			return err
		}

		// Defensive: the account should exist whenever its transaction
		// does, but surface NotFound rather than corrupt a balance.
		account, err := tx.GetAccount(ctx, owner, old.AccountID)
		if err != nil {
			return err
		}

		if err := reconcile(ctx, tx, owner, account.ID, old.Effect().Neg()); err != nil {
			return err
		}

		next := *old
		next.Amount = in.Amount
		next.Type = in.Type
		next.Category = in.Category
		next.Description = in.Description
		next.Date = in.Date

		if err := reconcile(ctx, tx, owner, account.ID, next.Effect()); err != nil {
			return err
		}

		if err := tx.UpdateTransaction(ctx, &next); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Transaction updated", "transaction_id", id)
	return updated, nil
}

// DeleteTransaction removes a transaction and reverses its effect on
// the account balance. If the account was already deleted separately,
// the reversal is skipped: an orphaned transaction has no balance to
// maintain.
func (s *Service) DeleteTransaction(ctx context.Context, owner, id string) error {
	err := s.inTx(ctx, func(tx service.Transaction) error {
		old, err := tx.GetTransaction(ctx, owner, id)
		if err != nil {
			return err
		}

		if err := tx.DeleteTransaction(ctx, owner, id); err != nil {
			return err
		}

		err = tx.ApplyBalanceDelta(ctx, owner, old.AccountID, old.Effect().Neg())
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("reverse balance effect: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("Transaction deleted", "transaction_id", id)
	return nil
}

// ListTransactions returns the owner's transactions matching the
// filter, newest first.
func (s *Service) ListTransactions(ctx context.Context, owner string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: from date is after to date", common.ErrValidation)
	}
	if filter.Type != "" {
		switch filter.Type {
		case model.TypeCredit, model.TypeExpense:
		default:
			return nil, fmt.Errorf("%w: transaction type must be credit or expense", common.ErrValidation)
		}
	}
	return s.store.ListTransactions(ctx, owner, filter)
}

// GetTransaction returns one transaction, owner-scoped.
func (s *Service) GetTransaction(ctx context.Context, owner, id string) (*model.Transaction, error) {
	return s.store.GetTransaction(ctx, owner, id)
}
