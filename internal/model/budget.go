package model

import (
	"fmt"
	"time"
)

// Budget is the monthly budget amount for a user, keyed by period.
// Read-only to the voice pipeline; it is written via the budget commands.
type Budget struct {
	UserID   string  `json:"user_id"`
	Period   string  `json:"period"`
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// Notification thresholds, as percentages of the budget.
const (
	ThresholdHalf     = 50
	ThresholdWarning  = 75
	ThresholdExceeded = 100
)

// NotificationEvent is a budget notification computed by the pipeline and
// handed to the caller. Delivery is the caller's job; the pipeline only
// guarantees at most one event per request and none for thresholds already
// recorded for the period.
type NotificationEvent struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Period    string `json:"period"`
	Threshold int    `json:"threshold"`
	Percent   int    `json:"percent"`
}

// PeriodOf formats a time as a budget period key ("2025-04").
func PeriodOf(t time.Time) string {
	return t.Format("2006-01")
}

// PeriodRange returns the inclusive start and exclusive end of a period's
// month window. An error is returned for keys not in YYYY-MM form.
func PeriodRange(period string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q: %w", period, err)
	}
	return start, start.AddDate(0, 1, 0), nil
}
