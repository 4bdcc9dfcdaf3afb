package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/model"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// CreateUser inserts a new user record.
func (s *SQLiteStorage) CreateUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUser(user); err != nil {
		return err
	}
	return createUserTx(ctx, s.db, user)
}

func createUserTx(ctx context.Context, q queryable, user *model.User) error {
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO users (id, name, email, created_at)
		VALUES (?, ?, ?, ?)
	`, user.ID, user.Name, strings.ToLower(user.Email), createdAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%w: email %s", common.ErrDuplicateEntry, user.Email)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getUserByIDTx(ctx, s.db, id)
}

func getUserByIDTx(ctx context.Context, q queryable, id string) (*model.User, error) {
	var user model.User
	err := q.QueryRowContext(ctx, `
		SELECT id, name, email, created_at
		FROM users
		WHERE id = ?
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStorage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}
	return getUserByEmailTx(ctx, s.db, email)
}

func getUserByEmailTx(ctx context.Context, q queryable, email string) (*model.User, error) {
	var user model.User
	err := q.QueryRowContext(ctx, `
		SELECT id, name, email, created_at
		FROM users
		WHERE email = ?
	`, strings.ToLower(email)).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}
