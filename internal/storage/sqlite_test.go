package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxpense/vocal/internal/common"
	"github.com/voxpense/vocal/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testExpense(userID, description string, amount float64, date time.Time) *model.Expense {
	return &model.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Category:    "Food",
		Date:        date,
		Origin:      model.OriginVoice,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestInsertAndQueryExpenses(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	date := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertExpense(ctx, testExpense("u1", "Coffee", 5, date)))
	require.NoError(t, store.InsertExpense(ctx, testExpense("u1", "Lunch", 15, date)))

	existing, err := store.ExistingForDate(ctx, "u1", date)
	require.NoError(t, err)
	assert.Len(t, existing, 2)
	assert.Contains(t, existing, model.ExpenseDedupKey("coffee", 5))
	assert.Contains(t, existing, model.ExpenseDedupKey("Lunch", 15))

	expenses, err := store.GetExpensesByPeriod(ctx, "u1", "2025-04")
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	total, err := store.SumExpenses(ctx, "u1", "2025-04")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, total, 0.001)
}

func TestInsertExpenseDuplicateBackstop(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	date := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertExpense(ctx, testExpense("u1", "Coffee", 5, date)))

	err := store.InsertExpense(ctx, testExpense("u1", "coffee", 5, date))
	assert.ErrorIs(t, err, common.ErrDuplicateEntry,
		"the unique index must catch rows that raced past the existence check")

	// Same description on a different day is fine.
	require.NoError(t, store.InsertExpense(ctx, testExpense("u1", "Coffee", 5, date.AddDate(0, 0, 1))))
	// And for a different user.
	require.NoError(t, store.InsertExpense(ctx, testExpense("u2", "Coffee", 5, date)))
}

func TestInsertExpenseValidation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	date := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		expense *model.Expense
		name    string
	}{
		{name: "nil expense", expense: nil},
		{name: "zero amount", expense: testExpense("u1", "Coffee", 0, date)},
		{name: "negative amount", expense: testExpense("u1", "Coffee", -5, date)},
		{name: "empty description", expense: testExpense("u1", "", 5, date)},
		{name: "missing date", expense: testExpense("u1", "Coffee", 5, time.Time{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.InsertExpense(ctx, tt.expense))
		})
	}
}

func TestSumExpensesSpansWholeMonth(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.InsertExpense(ctx, testExpense("u1", "First", 10, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, store.InsertExpense(ctx, testExpense("u1", "Last", 20, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, store.InsertExpense(ctx, testExpense("u1", "NextMonth", 40, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))))

	total, err := store.SumExpenses(ctx, "u1", "2025-04")
	require.NoError(t, err)
	assert.InDelta(t, 30.0, total, 0.001)
}

func TestPatternUpsertAndOrdering(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertPattern(ctx, "u1", "coffee", "Food", 0.3))
	require.NoError(t, store.UpsertPattern(ctx, "u1", "uber", "Transportation", 0.7))

	patterns, err := store.GetPatterns(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, patterns, 2)
	assert.Equal(t, "uber", patterns[0].DescriptionPattern, "highest confidence first")
	assert.Equal(t, "coffee", patterns[1].DescriptionPattern)

	// Re-observing coffee with higher confidence bumps usage and confidence.
	require.NoError(t, store.UpsertPattern(ctx, "u1", "Coffee", "Food", 0.7))
	patterns, err = store.GetPatterns(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, patterns, 2, "patterns are keyed case-insensitively")

	var coffee *model.LearnedPattern
	for i := range patterns {
		if patterns[i].DescriptionPattern == "coffee" {
			coffee = &patterns[i]
		}
	}
	require.NotNil(t, coffee)
	assert.Equal(t, 2, coffee.UsageCount)
	assert.InDelta(t, 0.7, coffee.ConfidenceScore, 0.001)

	// A lower-confidence observation never degrades the stored confidence.
	require.NoError(t, store.UpsertPattern(ctx, "u1", "coffee", "Food", 0.3))
	patterns, err = store.GetPatterns(ctx, "u1")
	require.NoError(t, err)
	for i := range patterns {
		if patterns[i].DescriptionPattern == "coffee" {
			assert.InDelta(t, 0.7, patterns[i].ConfidenceScore, 0.001)
			assert.Equal(t, 3, patterns[i].UsageCount)
		}
	}
}

func TestReinforcePattern(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertPattern(ctx, "u1", "coffee", "Food", 0.7))
	patterns, err := store.GetPatterns(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, patterns, 1)

	require.NoError(t, store.ReinforcePattern(ctx, patterns[0].ID, 0.75))

	patterns, err = store.GetPatterns(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, patterns[0].ConfidenceScore, 0.001)
	assert.Equal(t, 2, patterns[0].UsageCount)

	assert.Error(t, store.ReinforcePattern(ctx, 9999, 0.8), "unknown pattern id")
}

func TestPatternsAreScopedPerUser(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertPattern(ctx, "u1", "coffee", "Food", 0.7))

	patterns, err := store.GetPatterns(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestBudgets(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.GetBudget(ctx, "u1", "2025-04")
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.SetBudget(ctx, &model.Budget{UserID: "u1", Period: "2025-04", Amount: 100}))

	budget, err := store.GetBudget(ctx, "u1", "2025-04")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, budget.Amount, 0.001)
	assert.Equal(t, "USD", budget.Currency, "currency defaults")

	// Replacing the budget for the same period.
	require.NoError(t, store.SetBudget(ctx, &model.Budget{UserID: "u1", Period: "2025-04", Amount: 250, Currency: "EUR"}))
	budget, err = store.GetBudget(ctx, "u1", "2025-04")
	require.NoError(t, err)
	assert.InDelta(t, 250.0, budget.Amount, 0.001)
	assert.Equal(t, "EUR", budget.Currency)

	assert.Error(t, store.SetBudget(ctx, &model.Budget{UserID: "u1", Period: "April", Amount: 10}))
}

func TestNotificationLedger(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	sent, err := store.WasNotified(ctx, "u1", "2025-04", model.ThresholdWarning)
	require.NoError(t, err)
	assert.False(t, sent)

	require.NoError(t, store.MarkNotified(ctx, "u1", "2025-04", model.ThresholdWarning))

	sent, err = store.WasNotified(ctx, "u1", "2025-04", model.ThresholdWarning)
	require.NoError(t, err)
	assert.True(t, sent)

	// Other thresholds and periods remain unmarked.
	sent, err = store.WasNotified(ctx, "u1", "2025-04", model.ThresholdExceeded)
	require.NoError(t, err)
	assert.False(t, sent)
	sent, err = store.WasNotified(ctx, "u1", "2025-05", model.ThresholdWarning)
	require.NoError(t, err)
	assert.False(t, sent)

	// Re-marking is a no-op, not an error.
	require.NoError(t, store.MarkNotified(ctx, "u1", "2025-04", model.ThresholdWarning))
}
