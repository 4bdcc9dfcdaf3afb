package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/calloway/tally/internal/model"
)

func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func seedUser(t *testing.T, store *SQLiteStorage, id string) *model.User {
	t.Helper()
	user := &model.User{
		ID:    id,
		Name:  "Test User " + id,
		Email: id + "@example.com",
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user %s: %v", id, err)
	}
	return user
}

func seedAccount(t *testing.T, store *SQLiteStorage, owner, id string, cents int64) *model.Account {
	t.Helper()
	account := &model.Account{
		ID:      id,
		OwnerID: owner,
		Name:    "Account " + id,
		Type:    model.AccountBank,
		Amount:  model.Money{Cents: cents},
	}
	if err := store.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("Failed to seed account %s: %v", id, err)
	}
	return account
}

func seedTransaction(t *testing.T, store *SQLiteStorage, txn *model.Transaction) *model.Transaction {
	t.Helper()
	if txn.Date.IsZero() {
		txn.Date = time.Now().UTC()
	}
	if err := store.CreateTransaction(context.Background(), txn); err != nil {
		t.Fatalf("Failed to seed transaction %s: %v", txn.ID, err)
	}
	return txn
}
