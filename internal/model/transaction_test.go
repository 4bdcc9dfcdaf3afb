package model

import (
	"testing"
	"time"
)

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		input   string
		want    TransactionType
		wantErr bool
	}{
		{input: "credit", want: TypeCredit},
		{input: "expense", want: TypeExpense},
		{input: "CREDIT", want: TypeCredit},
		{input: " Expense ", want: TypeExpense},
		{input: "transfer", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTransactionType(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTransactionType(%q) = %q, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTransactionType(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTransactionType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTransactionEffect(t *testing.T) {
	credit := Transaction{Type: TypeCredit, Amount: Money{Cents: 1500}}
	if got := credit.Effect(); got.Cents != 1500 {
		t.Errorf("credit effect = %d, want 1500", got.Cents)
	}

	expense := Transaction{Type: TypeExpense, Amount: Money{Cents: 1500}}
	if got := expense.Effect(); got.Cents != -1500 {
		t.Errorf("expense effect = %d, want -1500", got.Cents)
	}
}

func TestGenerateImportHash(t *testing.T) {
	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	txn := Transaction{AccountID: "acct-1", Date: date, Amount: Money{Cents: 1234}}

	hash := txn.GenerateImportHash("FIT123")
	if len(hash) != 64 {
		t.Fatalf("hash length = %d, want 64", len(hash))
	}
	if hash != txn.GenerateImportHash("FIT123") {
		t.Error("hash should be deterministic for identical inputs")
	}
	if hash == txn.GenerateImportHash("FIT124") {
		t.Error("different FITIDs should produce different hashes")
	}

	other := txn
	other.AccountID = "acct-2"
	if hash == other.GenerateImportHash("FIT123") {
		t.Error("different accounts should produce different hashes")
	}
}
