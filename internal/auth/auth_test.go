package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/storage"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *storage.SQLiteStorage) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))

	authn, err := NewAuthenticator(store, "test-secret")
	require.NoError(t, err)
	return authn, store
}

func TestNewAuthenticatorRequiresSecret(t *testing.T) {
	_, store := newTestAuthenticator(t)
	_, err := NewAuthenticator(store, "")
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	authn, store := newTestAuthenticator(t)

	user, token, err := authn.Register(ctx, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.NotEmpty(t, token)

	// The token round-trips back to the same identity.
	resolved, err := authn.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	// Registration seeds a default zero-balance Bank account.
	accounts, err := store.ListAccounts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Default Account", accounts[0].Name)
	assert.Equal(t, model.AccountBank, accounts[0].Type)
	assert.True(t, accounts[0].Amount.IsZero())
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	authn, _ := newTestAuthenticator(t)

	_, _, err := authn.Register(ctx, "", "ada@example.com")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, _, err = authn.Register(ctx, "Ada", "")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, _, err = authn.Register(ctx, "Ada", "not-an-email")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	authn, store := newTestAuthenticator(t)

	_, _, err := authn.Register(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	_, _, err = authn.Register(ctx, "Imposter", "ada@example.com")
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	// The failed registration left no half-created account behind.
	user, err := store.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	authn, _ := newTestAuthenticator(t)

	user, token, err := authn.Register(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	t.Run("bare token", func(t *testing.T) {
		resolved, err := authn.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("bearer prefix", func(t *testing.T) {
		resolved, err := authn.Authenticate(ctx, "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("empty credential", func(t *testing.T) {
		_, err := authn.Authenticate(ctx, "")
		assert.ErrorIs(t, err, common.ErrUnauthenticated)
	})

	t.Run("garbage credential", func(t *testing.T) {
		_, err := authn.Authenticate(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, common.ErrUnauthenticated)
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		forged := signToken(t, "other-secret", user.ID, time.Hour)
		_, err := authn.Authenticate(ctx, forged)
		assert.ErrorIs(t, err, common.ErrUnauthenticated)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := signToken(t, "test-secret", user.ID, -time.Hour)
		_, err := authn.Authenticate(ctx, expired)
		assert.ErrorIs(t, err, common.ErrUnauthenticated)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		ghost := signToken(t, "test-secret", "no-such-user", time.Hour)
		_, err := authn.Authenticate(ctx, ghost)
		assert.ErrorIs(t, err, common.ErrUnauthenticated)
	})
}

func signToken(t *testing.T, secret, userID string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
