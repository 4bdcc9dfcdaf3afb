package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a currency amount in minor units (cents). All balance math is
// integer arithmetic; floats never touch stored amounts.
type Money struct {
	Cents int64
}

// ParseMoney parses a decimal string like "12.34" or "-3.5" into Money.
// At most two fractional digits are accepted.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("empty amount")
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return Money{}, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > 2 {
		return Money{}, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	// Digits only past the leading sign. ParseInt would accept a second
	// sign embedded in either part.
	for _, part := range [2]string{whole, frac} {
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				return Money{}, fmt.Errorf("invalid amount %q", s)
			}
		}
	}

	cents := int64(0)
	if whole != "" {
		units, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		cents = units * 100
	}
	if frac != "" {
		// Pad so ".5" means 50 cents, not 5.
		for len(frac) < 2 {
			frac += "0"
		}
		sub, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		cents += sub
	}

	if negative {
		cents = -cents
	}
	return Money{Cents: cents}, nil
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money {
	return Money{Cents: -m.Cents}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Cents > 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// String formats the amount as a plain decimal, e.g. "12.34" or "-0.05".
func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
