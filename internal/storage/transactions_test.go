package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/service"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionCRUD(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	seedUser(t, store, "user-1")
	seedAccount(t, store, "user-1", "acct-1", 0)

	txn := &model.Transaction{
		ID:          "txn-1",
		AccountID:   "acct-1",
		OwnerID:     "user-1",
		Amount:      model.Money{Cents: 2500},
		Type:        model.TypeExpense,
		Category:    "Food",
		Description: "Groceries",
		Date:        day(2024, 3, 15),
	}
	if err := store.CreateTransaction(ctx, txn); err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	got, err := store.GetTransaction(ctx, "user-1", "txn-1")
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if got.Amount.Cents != 2500 || got.Type != model.TypeExpense || got.Category != "Food" {
		t.Errorf("unexpected transaction: %+v", got)
	}
	if !got.Date.Equal(day(2024, 3, 15)) {
		t.Errorf("Date = %v, want 2024-03-15", got.Date)
	}

	got.Amount = model.Money{Cents: 3000}
	got.Category = "Dining"
	if err := store.UpdateTransaction(ctx, got); err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}
	got, err = store.GetTransaction(ctx, "user-1", "txn-1")
	if err != nil {
		t.Fatalf("GetTransaction after update failed: %v", err)
	}
	if got.Amount.Cents != 3000 || got.Category != "Dining" {
		t.Errorf("update not applied: %+v", got)
	}

	if err := store.DeleteTransaction(ctx, "user-1", "txn-1"); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	if _, err := store.GetTransaction(ctx, "user-1", "txn-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTransactionOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	seedUser(t, store, "alice")
	seedUser(t, store, "bob")
	seedAccount(t, store, "alice", "acct-alice", 0)
	seedTransaction(t, store, &model.Transaction{
		ID: "txn-1", AccountID: "acct-alice", OwnerID: "alice",
		Amount: model.Money{Cents: 100}, Type: model.TypeCredit,
	})

	if _, err := store.GetTransaction(ctx, "bob", "txn-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("cross-owner get: expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteTransaction(ctx, "bob", "txn-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("cross-owner delete: expected ErrNotFound, got %v", err)
	}

	hijack := &model.Transaction{
		ID: "txn-1", AccountID: "acct-alice", OwnerID: "bob",
		Amount: model.Money{Cents: 999}, Type: model.TypeCredit,
		Date: day(2024, 1, 1),
	}
	if err := store.UpdateTransaction(ctx, hijack); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("cross-owner update: expected ErrNotFound, got %v", err)
	}

	list, err := store.ListTransactions(ctx, "bob", service.TransactionFilter{})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("bob should see no transactions, got %d", len(list))
	}
}

func TestListTransactionsFilters(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	seedUser(t, store, "user-1")
	seedAccount(t, store, "user-1", "acct-1", 0)
	seedAccount(t, store, "user-1", "acct-2", 0)

	seedTransaction(t, store, &model.Transaction{
		ID: "txn-jan", AccountID: "acct-1", OwnerID: "user-1",
		Amount: model.Money{Cents: 1000}, Type: model.TypeCredit,
		Date: day(2024, 1, 10),
	})
	seedTransaction(t, store, &model.Transaction{
		ID: "txn-feb", AccountID: "acct-1", OwnerID: "user-1",
		Amount: model.Money{Cents: 2000}, Type: model.TypeExpense, Category: "Rent",
		Date: day(2024, 2, 1),
	})
	seedTransaction(t, store, &model.Transaction{
		ID: "txn-mar", AccountID: "acct-2", OwnerID: "user-1",
		Amount: model.Money{Cents: 3000}, Type: model.TypeExpense, Category: "Food",
		Date: day(2024, 3, 5),
	})

	t.Run("no filter returns all, newest first", func(t *testing.T) {
		list, err := store.ListTransactions(ctx, "user-1", service.TransactionFilter{})
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(list))
		}
		for i, want := range []string{"txn-mar", "txn-feb", "txn-jan"} {
			if list[i].ID != want {
				t.Errorf("list[%d].ID = %s, want %s", i, list[i].ID, want)
			}
		}
	})

	t.Run("filter by account", func(t *testing.T) {
		list, err := store.ListTransactions(ctx, "user-1", service.TransactionFilter{AccountID: "acct-2"})
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(list) != 1 || list[0].ID != "txn-mar" {
			t.Errorf("unexpected result: %+v", list)
		}
	})

	t.Run("filter by type", func(t *testing.T) {
		list, err := store.ListTransactions(ctx, "user-1", service.TransactionFilter{Type: model.TypeExpense})
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(list))
		}
	})

	t.Run("date range is inclusive on both ends", func(t *testing.T) {
		from := day(2024, 2, 1)
		to := day(2024, 3, 5)
		list, err := store.ListTransactions(ctx, "user-1", service.TransactionFilter{From: &from, To: &to})
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(list))
		}
		if list[0].ID != "txn-mar" || list[1].ID != "txn-feb" {
			t.Errorf("unexpected window: %s, %s", list[0].ID, list[1].ID)
		}
	})

	t.Run("limit and offset", func(t *testing.T) {
		list, err := store.ListTransactions(ctx, "user-1", service.TransactionFilter{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(list) != 1 || list[0].ID != "txn-feb" {
			t.Errorf("unexpected page: %+v", list)
		}
	})
}

func TestDeleteAccountTransactions(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	seedUser(t, store, "user-1")
	seedAccount(t, store, "user-1", "acct-1", 0)
	seedAccount(t, store, "user-1", "acct-2", 0)

	for i, id := range []string{"txn-a", "txn-b"} {
		seedTransaction(t, store, &model.Transaction{
			ID: id, AccountID: "acct-1", OwnerID: "user-1",
			Amount: model.Money{Cents: int64(100 * (i + 1))}, Type: model.TypeCredit,
		})
	}
	seedTransaction(t, store, &model.Transaction{
		ID: "txn-keep", AccountID: "acct-2", OwnerID: "user-1",
		Amount: model.Money{Cents: 500}, Type: model.TypeCredit,
	})

	count, err := store.DeleteAccountTransactions(ctx, "user-1", "acct-1")
	if err != nil {
		t.Fatalf("DeleteAccountTransactions failed: %v", err)
	}
	if count != 2 {
		t.Errorf("deleted %d rows, want 2", count)
	}

	// Deleting an empty account is not an error.
	count, err = store.DeleteAccountTransactions(ctx, "user-1", "acct-1")
	if err != nil {
		t.Fatalf("second DeleteAccountTransactions failed: %v", err)
	}
	if count != 0 {
		t.Errorf("deleted %d rows, want 0", count)
	}

	if _, err := store.GetTransaction(ctx, "user-1", "txn-keep"); err != nil {
		t.Errorf("other account's transaction should survive: %v", err)
	}
}

func TestHasImportHash(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	seedUser(t, store, "user-1")
	seedUser(t, store, "user-2")
	seedAccount(t, store, "user-1", "acct-1", 0)
	seedTransaction(t, store, &model.Transaction{
		ID: "txn-1", AccountID: "acct-1", OwnerID: "user-1",
		Amount: model.Money{Cents: 100}, Type: model.TypeCredit,
		ImportHash: "abc123",
	})

	exists, err := store.HasImportHash(ctx, "user-1", "abc123")
	if err != nil {
		t.Fatalf("HasImportHash failed: %v", err)
	}
	if !exists {
		t.Error("expected hash to exist")
	}

	exists, err = store.HasImportHash(ctx, "user-1", "other")
	if err != nil {
		t.Fatalf("HasImportHash failed: %v", err)
	}
	if exists {
		t.Error("unknown hash should not exist")
	}

	// Hashes are scoped per owner.
	exists, err = store.HasImportHash(ctx, "user-2", "abc123")
	if err != nil {
		t.Fatalf("HasImportHash failed: %v", err)
	}
	if exists {
		t.Error("hash should not leak across owners")
	}
}
