package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/calloway/tally/internal/model"
	"github.com/calloway/tally/internal/service"
)

// NetWorth returns the sum of the owner's cached account balances.
func (s *SQLiteStorage) NetWorth(ctx context.Context, owner string) (model.Money, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return model.Money{}, err
	}
	return netWorthTx(ctx, s.db, owner)
}

func netWorthTx(ctx context.Context, q queryable, owner string) (model.Money, error) {
	var cents int64
	err := q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM accounts
		WHERE owner_id = ?
	`, owner).Scan(&cents)
	if err != nil {
		return model.Money{}, fmt.Errorf("failed to compute net worth: %w", err)
	}
	return model.Money{Cents: cents}, nil
}

// ExpensesByCategory sums the owner's expenses per category over the
// date range (inclusive), largest first.
func (s *SQLiteStorage) ExpensesByCategory(ctx context.Context, owner string, from, to time.Time) ([]service.CategoryTotal, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	return expensesByCategoryTx(ctx, s.db, owner, from, to)
}

func expensesByCategoryTx(ctx context.Context, q queryable, owner string, from, to time.Time) ([]service.CategoryTotal, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT category, SUM(amount_cents) AS total
		FROM transactions
		WHERE owner_id = ? AND type = 'expense' AND date >= ? AND date <= ?
		GROUP BY category
		ORDER BY total DESC
	`, owner, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []service.CategoryTotal
	for rows.Next() {
		var ct service.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total.Cents); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}

	return totals, rows.Err()
}

// TotalsByMonth returns per-month credit and expense sums for the owner
// over the date range (inclusive), newest month first.
func (s *SQLiteStorage) TotalsByMonth(ctx context.Context, owner string, from, to time.Time) ([]service.MonthTotal, error) {
	if err := validateOwnerScope(ctx, owner); err != nil {
		return nil, err
	}
	return totalsByMonthTx(ctx, s.db, owner, from, to)
}

func totalsByMonthTx(ctx context.Context, q queryable, owner string, from, to time.Time) ([]service.MonthTotal, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT strftime('%Y-%m', date) AS month,
		       COALESCE(SUM(CASE WHEN type = 'credit' THEN amount_cents ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN type = 'expense' THEN amount_cents ELSE 0 END), 0)
		FROM transactions
		WHERE owner_id = ? AND date >= ? AND date <= ?
		GROUP BY month
		ORDER BY month DESC
	`, owner, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []service.MonthTotal
	for rows.Next() {
		var mt service.MonthTotal
		if err := rows.Scan(&mt.Month, &mt.Credits.Cents, &mt.Expenses.Cents); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, mt)
	}

	return totals, rows.Err()
}
