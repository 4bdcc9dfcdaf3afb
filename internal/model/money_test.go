package model

import "testing"

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole units", input: "12", want: 1200},
		{name: "two decimals", input: "12.34", want: 1234},
		{name: "one decimal pads", input: "3.5", want: 350},
		{name: "bare fraction", input: ".75", want: 75},
		{name: "negative", input: "-3.50", want: -350},
		{name: "explicit plus", input: "+2.25", want: 225},
		{name: "zero", input: "0", want: 0},
		{name: "surrounding space", input: " 12.34 ", want: 1234},
		{name: "three decimals rejected", input: "1.234", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "garbage rejected", input: "abc", wantErr: true},
		{name: "lone dot rejected", input: ".", wantErr: true},
		{name: "lone sign rejected", input: "-", wantErr: true},
		{name: "double negative rejected", input: "--5", wantErr: true},
		{name: "mixed signs rejected", input: "+-5", wantErr: true},
		{name: "signed fraction rejected", input: "1.-5", wantErr: true},
		{name: "signed whole and fraction rejected", input: "-1.-5", wantErr: true},
		{name: "inner space rejected", input: "1 2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMoney(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q) error: %v", tt.input, err)
			}
			if got.Cents != tt.want {
				t.Errorf("ParseMoney(%q) = %d cents, want %d", tt.input, got.Cents, tt.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		want  string
		cents int64
	}{
		{want: "12.34", cents: 1234},
		{want: "0.05", cents: 5},
		{want: "-0.05", cents: -5},
		{want: "0.00", cents: 0},
		{want: "100.00", cents: 10000},
		{want: "-3.50", cents: -350},
	}

	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).String(); got != tt.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	sum := Money{Cents: 100}.Add(Money{Cents: -30})
	if sum.Cents != 70 {
		t.Errorf("Add = %d, want 70", sum.Cents)
	}

	if got := (Money{Cents: 50}).Neg(); got.Cents != -50 {
		t.Errorf("Neg = %d, want -50", got.Cents)
	}

	if !(Money{Cents: 1}).IsPositive() {
		t.Error("1 cent should be positive")
	}
	if (Money{Cents: 0}).IsPositive() {
		t.Error("zero should not be positive")
	}
	if !(Money{}).IsZero() {
		t.Error("zero value should be zero")
	}
}
