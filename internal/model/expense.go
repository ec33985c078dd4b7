// Package model defines the core data structures for the vocal application.
package model

import (
	"fmt"
	"strings"
	"time"
)

// ExpenseOrigin indicates how an expense entered the system.
type ExpenseOrigin string

const (
	// OriginVoice indicates the expense came from the voice pipeline.
	OriginVoice ExpenseOrigin = "voice"
	// OriginManual indicates the expense was entered by hand.
	OriginManual ExpenseOrigin = "manual"
)

// Expense represents a single persisted expense record.
type Expense struct {
	Date        time.Time     `json:"date"`
	CreatedAt   time.Time     `json:"created_at"`
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Origin      ExpenseOrigin `json:"origin"`
	Amount      float64       `json:"amount"`
}

// DedupKey returns the key used for duplicate detection within a single
// user/date bucket: lowercased description plus amount.
func (e *Expense) DedupKey() string {
	return ExpenseDedupKey(e.Description, e.Amount)
}

// ExpenseDedupKey builds the duplicate-detection key for a description and
// amount pair.
func ExpenseDedupKey(description string, amount float64) string {
	return fmt.Sprintf("%s:%.2f", strings.ToLower(strings.TrimSpace(description)), amount)
}
