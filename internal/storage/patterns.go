package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voxpense/vocal/internal/model"
)

// GetPatterns returns the user's learned patterns ordered by descending
// confidence, so the classifier's first substring hit is the strongest one.
func (s *SQLiteStorage) GetPatterns(ctx context.Context, userID string) ([]model.LearnedPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, description_pattern, suggested_category,
			confidence_score, usage_count, last_used, created_at
		FROM learned_patterns
		WHERE user_id = ?
		ORDER BY confidence_score DESC, usage_count DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query learned patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []model.LearnedPattern
	for rows.Next() {
		var p model.LearnedPattern
		if err := rows.Scan(&p.ID, &p.UserID, &p.DescriptionPattern, &p.SuggestedCategory,
			&p.ConfidenceScore, &p.UsageCount, &p.LastUsed, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pattern row: %w", err)
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pattern rows: %w", err)
	}

	return patterns, nil
}

// UpsertPattern records a learning observation for a (description, category)
// pairing. A first observation creates the pattern; a repeat observation
// keeps the higher confidence, bumps the usage count, and adopts the latest
// category.
func (s *SQLiteStorage) UpsertPattern(ctx context.Context, userID, pattern, category string, confidence float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(pattern, "pattern"); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}

	query := `
		INSERT INTO learned_patterns (user_id, description_pattern, suggested_category, confidence_score, usage_count, last_used)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT(user_id, description_pattern) DO UPDATE SET
			suggested_category = excluded.suggested_category,
			confidence_score = MAX(confidence_score, excluded.confidence_score),
			usage_count = usage_count + 1,
			last_used = excluded.last_used
	`

	_, err := s.db.ExecContext(ctx, query,
		userID,
		strings.ToLower(strings.TrimSpace(pattern)),
		category,
		confidence,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pattern: %w", err)
	}

	return nil
}

// ReinforcePattern raises a pattern's confidence to the given value and
// records the reuse.
func (s *SQLiteStorage) ReinforcePattern(ctx context.Context, id int64, confidence float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	query := `
		UPDATE learned_patterns
		SET confidence_score = ?, usage_count = usage_count + 1, last_used = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, confidence, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to reinforce pattern: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check reinforce result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("pattern %d not found", id)
	}

	return nil
}
