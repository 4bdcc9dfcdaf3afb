package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/service"
)

// ListAccounts returns all of the owner's accounts.
func (s *Service) ListAccounts(ctx context.Context, owner string) ([]model.Account, error) {
	return s.store.ListAccounts(ctx, owner)
}

// GetAccount returns one account, owner-scoped.
func (s *Service) GetAccount(ctx context.Context, owner, id string) (*model.Account, error) {
	return s.store.GetAccount(ctx, owner, id)
}

// CreateAccount creates an account for the owner. A positive initial
// amount is recorded as a synthetic "Initial Balance" credit transaction
// in the same unit of work, so the balance invariant holds from the
// account's first moment.
func (s *Service) CreateAccount(ctx context.Context, owner string, in AccountInput) (*model.Account, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &model.Account{
		ID:        newID(),
		OwnerID:   owner,
		Name:      in.Name,
		Type:      in.Type,
		Amount:    in.Initial,
		CreatedAt: now,
	}

	err := s.inTx(ctx, func(tx service.Transaction) error {
		if err := tx.CreateAccount(ctx, account); err != nil {
			return fmt.Errorf("create account: %w", err)
		}

		if in.Initial.IsPositive() {
			seed := &model.Transaction{
				ID:          newID(),
				AccountID:   account.ID,
				OwnerID:     owner,
				Amount:      in.Initial,
				Type:        model.TypeCredit,
				Category:    initialBalanceCategory,
				Description: "Initial balance on account creation",
				Date:        now,
				CreatedAt:   now,
			}
			if err := tx.CreateTransaction(ctx, seed); err != nil {
				return fmt.Errorf("create initial balance transaction: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Account created",
		"account_id", account.ID,
		"type", string(account.Type),
		"initial_cents", in.Initial.Cents)
	return account, nil
}

// UpdateAccount renames or retypes an account. The cached balance is not
// reachable through this path.
func (s *Service) UpdateAccount(ctx context.Context, owner, id, name string, accountType model.AccountType) (*model.Account, error) {
	in := AccountInput{Name: name, Type: accountType}
	if err := in.validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateAccountDetails(ctx, owner, id, name, accountType); err != nil {
		return nil, err
	}
	return s.store.GetAccount(ctx, owner, id)
}

// DeleteAccount removes an account together with its whole transaction
// history. No reconciliation is needed: the cached balance and the
// transactions that back it are removed in the same unit of work.
func (s *Service) DeleteAccount(ctx context.Context, owner, id string) error {
	var removed int64
	err := s.inTx(ctx, func(tx service.Transaction) error {
		if err := tx.DeleteAccount(ctx, owner, id); err != nil {
			return err
		}

		n, err := tx.DeleteAccountTransactions(ctx, owner, id)
		if err != nil {
			return fmt.Errorf("cascade delete transactions: %w", err)
		}
		removed = n
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Account deleted", "account_id", id, "transactions_removed", removed)
	return nil
}
