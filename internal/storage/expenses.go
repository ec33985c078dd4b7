package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/voxpense/vocal/internal/common"
	"github.com/voxpense/vocal/internal/model"
)

const dateFormat = "2006-01-02"

// InsertExpense persists a single expense. A row that collides with the
// per-user per-day dedup index returns common.ErrDuplicateEntry so callers
// can treat racing submissions as already-deduplicated.
func (s *SQLiteStorage) InsertExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	if expense.Origin == "" {
		expense.Origin = model.OriginVoice
	}

	query := `
		INSERT INTO expenses (id, user_id, description, description_lc, amount, category, date, origin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		expense.ID,
		expense.UserID,
		expense.Description,
		strings.ToLower(strings.TrimSpace(expense.Description)),
		expense.Amount,
		expense.Category,
		expense.Date.Format(dateFormat),
		string(expense.Origin),
		expense.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s on %s", common.ErrDuplicateEntry, expense.Description, expense.Date.Format(dateFormat))
		}
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// ExistingForDate returns the dedup keys of all expenses already persisted
// for the user on the given date.
func (s *SQLiteStorage) ExistingForDate(ctx context.Context, userID string, date time.Time) (map[string]struct{}, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `SELECT description, amount FROM expenses WHERE user_id = ? AND date = ?`

	rows, err := s.db.QueryContext(ctx, query, userID, date.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to query existing expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	existing := make(map[string]struct{})
	for rows.Next() {
		var description string
		var amount float64
		if err := rows.Scan(&description, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		existing[model.ExpenseDedupKey(description, amount)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense rows: %w", err)
	}

	return existing, nil
}

// GetExpensesByPeriod returns all expenses for the user inside the period's
// month window, newest first.
func (s *SQLiteStorage) GetExpensesByPeriod(ctx context.Context, userID, period string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	start, end, err := model.PeriodRange(period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}

	query := `
		SELECT id, user_id, description, amount, category, date, origin, created_at
		FROM expenses
		WHERE user_id = ? AND date >= ? AND date < ?
		ORDER BY date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var origin string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.Date, &origin, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		e.Origin = model.ExpenseOrigin(origin)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense rows: %w", err)
	}

	return expenses, nil
}

// SumExpenses totals the user's expense amounts inside the period's month
// window.
func (s *SQLiteStorage) SumExpenses(ctx context.Context, userID, period string) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}
	start, end, err := model.PeriodRange(period)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = ? AND date >= ? AND date < ?
	`

	var total float64
	err = s.db.QueryRowContext(ctx, query, userID, start.Format(dateFormat), end.Format(dateFormat)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return total, nil
}

// isUniqueViolation reports whether err is a sqlite unique-constraint error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint &&
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
