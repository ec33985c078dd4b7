// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/voxpense/vocal/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Expense operations
	InsertExpense(ctx context.Context, expense *model.Expense) error
	ExistingForDate(ctx context.Context, userID string, date time.Time) (map[string]struct{}, error)
	GetExpensesByPeriod(ctx context.Context, userID, period string) ([]model.Expense, error)
	SumExpenses(ctx context.Context, userID, period string) (float64, error)

	// Learned pattern operations
	GetPatterns(ctx context.Context, userID string) ([]model.LearnedPattern, error)
	UpsertPattern(ctx context.Context, userID, pattern, category string, confidence float64) error
	ReinforcePattern(ctx context.Context, id int64, confidence float64) error

	// Budget operations
	SetBudget(ctx context.Context, budget *model.Budget) error
	GetBudget(ctx context.Context, userID, period string) (*model.Budget, error)

	// Notification ledger operations
	WasNotified(ctx context.Context, userID, period string, threshold int) (bool, error)
	MarkNotified(ctx context.Context, userID, period string, threshold int) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// TranscriptionProvider converts spoken audio into text. An empty string is
// a successful "no speech" result, not an error.
type TranscriptionProvider interface {
	Name() string
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// CompletionClient sends a prompt to a generative text provider and returns
// the raw completion text.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RetryOptions configures retry behavior for operations that may fail
// transiently.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
