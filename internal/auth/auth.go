// Package auth is the access boundary: it turns a bearer credential
// into exactly one user identity, or fails with Unauthenticated. Every
// core operation downstream is scoped to the identity resolved here.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// Claims is the JWT payload carried by issued tokens.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies bearer tokens backed by the user
// store.
type Authenticator struct {
	store  service.Storage
	secret []byte
	ttl    time.Duration
}

// NewAuthenticator creates an authenticator with the given signing
// secret.
func NewAuthenticator(store service.Storage, secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("auth secret cannot be empty")
	}
	return &Authenticator{
		store:  store,
		secret: []byte(secret),
		ttl:    defaultTokenTTL,
	}, nil
}

// IssueToken signs a bearer token for the user.
func (a *Authenticator) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves a bearer credential to a user. A leading
// "Bearer " prefix is tolerated. Any failure, including an unknown
// user, comes back as Unauthenticated.
func (a *Authenticator) Authenticate(ctx context.Context, credential string) (*model.User, error) {
	credential = strings.TrimSpace(credential)
	if rest, ok := strings.CutPrefix(credential, "Bearer "); ok {
		credential = rest
	}
	if credential == "" {
		return nil, fmt.Errorf("%w: missing credential", common.ErrUnauthenticated)
	}

	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("%w: invalid claims", common.ErrUnauthenticated)
	}

	user, err := a.store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", common.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

// Register creates a user together with their default zero-balance Bank
// account, in one unit of work, and returns a signed token for the new
// identity.
func (a *Authenticator) Register(ctx context.Context, name, email string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, "", fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: a valid email is required", common.ErrValidation)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
	}

	tx, err := a.store.BeginTx(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("begin registration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	defaultAccount := &model.Account{
		ID:        uuid.NewString(),
		OwnerID:   user.ID,
		Name:      "Default Account",
		Type:      model.AccountBank,
		CreatedAt: now,
	}
	if err := tx.CreateAccount(ctx, defaultAccount); err != nil {
		return nil, "", fmt.Errorf("create default account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("commit registration: %w", err)
	}

	token, err := a.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	slog.Info("User registered", "user_id", user.ID)
	return user, token, nil
}
