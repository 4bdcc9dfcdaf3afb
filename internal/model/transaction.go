package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// TransactionType distinguishes money flowing into an account from money
// flowing out.
type TransactionType string

// Supported transaction types.
const (
	TypeCredit  TransactionType = "credit"
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType converts user input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "credit":
		return TypeCredit, nil
	case "expense":
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Transaction is a single credit or expense recorded against an account.
// Amount is a positive magnitude; Type carries the sign.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	ID          string
	AccountID   string
	OwnerID     string
	Category    string
	Description string
	ImportHash  string
	Type        TransactionType
	Amount      Money
}

// Effect returns the signed impact of the transaction on its account's
// balance: +Amount for a credit, -Amount for an expense.
func (t *Transaction) Effect() Money {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// GenerateImportHash derives a stable hash for statement import
// deduplication from the fields a bank export preserves.
func (t *Transaction) GenerateImportHash(fitID string) string {
	data := fmt.Sprintf("%s:%s:%d:%s",
		fitID,
		t.Date.Format("2006-01-02"),
		t.Amount.Cents,
		t.AccountID)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(data)))
}
