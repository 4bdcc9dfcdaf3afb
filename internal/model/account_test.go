package model

import "testing"

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		input   string
		want    AccountType
		wantErr bool
	}{
		{input: "bank", want: AccountBank},
		{input: "Bank", want: AccountBank},
		{input: "CASH", want: AccountCash},
		{input: "wallet", want: AccountWallet},
		{input: " other ", want: AccountOther},
		{input: "brokerage", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseAccountType(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAccountType(%q) = %q, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAccountType(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAccountType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
