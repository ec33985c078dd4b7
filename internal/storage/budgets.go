package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/voxpense/vocal/internal/common"
	"github.com/voxpense/vocal/internal/model"
)

// SetBudget creates or replaces the budget for a user and period.
func (s *SQLiteStorage) SetBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	if budget.Currency == "" {
		budget.Currency = "USD"
	}

	query := `
		INSERT INTO budgets (user_id, period, amount, currency)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, period) DO UPDATE SET
			amount = excluded.amount,
			currency = excluded.currency
	`

	_, err := s.db.ExecContext(ctx, query, budget.UserID, budget.Period, budget.Amount, budget.Currency)
	if err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}

	return nil
}

// GetBudget returns the budget for a user and period, or
// common.ErrNotFound when none has been set.
func (s *SQLiteStorage) GetBudget(ctx context.Context, userID, period string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	query := `SELECT user_id, period, amount, currency FROM budgets WHERE user_id = ? AND period = ?`

	var budget model.Budget
	err := s.db.QueryRowContext(ctx, query, userID, period).Scan(
		&budget.UserID, &budget.Period, &budget.Amount, &budget.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: budget for %s/%s", common.ErrNotFound, userID, period)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return &budget, nil
}
