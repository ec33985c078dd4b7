package storage

import (
	"context"
	"fmt"
)

// WasNotified reports whether a notification for this threshold has already
// been recorded for the user's period. This is the idempotence check that
// keeps repeated submissions from re-raising the same budget alert.
func (s *SQLiteStorage) WasNotified(ctx context.Context, userID, period string, threshold int) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return false, err
	}
	if err := validatePeriod(period); err != nil {
		return false, err
	}

	query := `SELECT COUNT(*) FROM sent_notifications WHERE user_id = ? AND period = ? AND threshold = ?`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, period, threshold).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check sent notifications: %w", err)
	}

	return count > 0, nil
}

// MarkNotified records that a threshold notification was raised for the
// user's period. Marking the same threshold twice is a no-op.
func (s *SQLiteStorage) MarkNotified(ctx context.Context, userID, period string, threshold int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validatePeriod(period); err != nil {
		return err
	}

	query := `INSERT OR IGNORE INTO sent_notifications (user_id, period, threshold) VALUES (?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, userID, period, threshold); err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}

	return nil
}
