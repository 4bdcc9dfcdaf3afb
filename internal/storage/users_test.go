package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/model"
)

func TestUserCRUD(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	user := &model.User{ID: "user-1", Name: "Ada", Email: "Ada@Example.com"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := store.GetUserByID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if got.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", got.Name)
	}
	if got.Email != "ada@example.com" {
		t.Errorf("Email = %q, want lowercased", got.Email)
	}

	// Lookup by email is case-insensitive.
	got, err = store.GetUserByEmail(ctx, "ADA@example.COM")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != "user-1" {
		t.Errorf("ID = %q, want user-1", got.ID)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	first := &model.User{ID: "user-1", Name: "Ada", Email: "ada@example.com"}
	if err := store.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	second := &model.User{ID: "user-2", Name: "Imposter", Email: "ADA@example.com"}
	err := store.CreateUser(ctx, second)
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("expected ErrDuplicateEntry, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetUserByID: expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetUserByEmail: expected ErrNotFound, got %v", err)
	}
}
