package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/calloway/tally/internal/service"
)

// Summary builds the owner's dashboard view for the date range
// (inclusive): net worth across accounts, expense totals per category
// and monthly credit/expense totals.
func (s *Service) Summary(ctx context.Context, owner string, from, to time.Time) (*service.Summary, error) {
	accounts, err := s.store.ListAccounts(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	netWorth, err := s.store.NetWorth(ctx, owner)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.store.ExpensesByCategory(ctx, owner, from, to)
	if err != nil {
		return nil, err
	}

	byMonth, err := s.store.TotalsByMonth(ctx, owner, from, to)
	if err != nil {
		return nil, err
	}

	return &service.Summary{
		Accounts:   accounts,
		NetWorth:   netWorth,
		ByCategory: byCategory,
		ByMonth:    byMonth,
	}, nil
}
