package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/calloway/tally/internal/auth"
	"github.com/calloway/tally/internal/common"
	"github.com/calloway/tally/internal/config"
	"github.com/calloway/tally/internal/ledger"
	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/service"
	"github.com/calloway/tally/internal/storage"

	"github.com/spf13/viper"
)

// fallbackSecret signs tokens when auth.secret is not configured. The
// database and the tokens both live on the same machine, so this only
// guards against accidental cross-install token reuse.
const fallbackSecret = "tally-local-dev-secret"

// initStorage initializes storage with migrations applied.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func initAuth(store service.Storage) (*auth.Authenticator, error) {
	secret := viper.GetString("auth.secret")
	if secret == "" {
		secret = fallbackSecret
	}
	return auth.NewAuthenticator(store, secret)
}

// requireOwner resolves the caller's identity from the configured
// bearer token. Everything past this point is scoped to that owner.
func requireOwner(ctx context.Context, store service.Storage) (*model.User, error) {
	authenticator, err := initAuth(store)
	if err != nil {
		return nil, err
	}

	token := viper.GetString("auth.token")
	if token == "" {
		raw, readErr := os.ReadFile(config.DefaultTokenPath())
		if readErr == nil {
			token = strings.TrimSpace(string(raw))
		}
	}
	if token == "" {
		return nil, common.NewUserError("no credential found; run 'tally auth register' first", nil)
	}

	user, err := authenticator.Authenticate(ctx, token)
	if err != nil {
		return nil, common.NewUserError("credential rejected; run 'tally auth register' again", err)
	}
	return user, nil
}

// initLedger wires storage together with the engine and resolves the
// owner. The caller must Close the returned storage.
func initLedger(ctx context.Context) (service.Storage, *ledger.Service, *model.User, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	user, err := requireOwner(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, nil, err
	}

	return store, ledger.New(store), user, nil
}

func parseDateFlag(value, flagName string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q (want YYYY-MM-DD)", flagName, value)
	}
	return t, nil
}

func parseAmountFlag(value string) (model.Money, error) {
	amount, err := model.ParseMoney(value)
	if err != nil {
		return model.Money{}, fmt.Errorf("invalid amount: %w", err)
	}
	return amount, nil
}
