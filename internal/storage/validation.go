package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/voxpense/vocal/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidExpense = errors.New("invalid expense")
	ErrInvalidBudget  = errors.New("invalid budget")
	ErrInvalidPeriod  = errors.New("invalid period")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validatePeriod ensures a period key parses as YYYY-MM.
func validatePeriod(period string) error {
	if _, _, err := model.PeriodRange(period); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}
	return nil
}

// validateExpense validates a single expense before insertion.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if strings.TrimSpace(expense.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidExpense)
	}
	if strings.TrimSpace(expense.UserID) == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidExpense)
	}
	if strings.TrimSpace(expense.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidExpense)
	}
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if strings.TrimSpace(expense.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidExpense)
	}
	if expense.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidExpense)
	}
	return nil
}

// validateBudget validates a budget row.
func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if strings.TrimSpace(budget.UserID) == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidBudget)
	}
	if budget.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidBudget)
	}
	return validatePeriod(budget.Period)
}
