// Package model defines the domain types shared across the application.
package model

import (
	"fmt"
	"strings"
	"time"
)

// AccountType classifies where an account's money lives.
type AccountType string

// Supported account types.
const (
	AccountBank   AccountType = "Bank"
	AccountCash   AccountType = "Cash"
	AccountWallet AccountType = "Wallet"
	AccountOther  AccountType = "Other"
)

// ParseAccountType converts user input into an AccountType,
// case-insensitively.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bank":
		return AccountBank, nil
	case "cash":
		return AccountCash, nil
	case "wallet":
		return AccountWallet, nil
	case "other":
		return AccountOther, nil
	default:
		return "", fmt.Errorf("unknown account type %q", s)
	}
}

// Account holds money for a single owner. Amount is a derived, cached
// value: the signed sum of the account's transactions. Only the ledger
// engine may mutate it.
type Account struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	OwnerID   string
	Name      string
	Type      AccountType
	Amount    Money
}
