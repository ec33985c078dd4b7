// Package classify resolves expense categories from descriptions, preferring
// what the user has taught us over the static keyword table.
package classify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/voxpense/vocal/internal/model"
	"github.com/voxpense/vocal/internal/service"
)

// Confidence levels written back as learning observations.
const (
	keywordConfidence = 0.7
	defaultConfidence = 0.3
)

// Classifier resolves categories and records learning signals as it goes.
type Classifier struct {
	store  service.Storage
	logger *slog.Logger
}

// NewClassifier creates a classifier backed by the given pattern store.
func NewClassifier(store service.Storage, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{store: store, logger: logger}
}

// ClassifyAndLearn resolves a category for the description and writes a
// learning observation for it. The name is deliberate: this read has a write
// side effect, reinforcing or growing the user's learned patterns.
//
// Classification never fails; the worst case is the default category with
// the learning write skipped and logged.
func (c *Classifier) ClassifyAndLearn(ctx context.Context, userID, description string) string {
	descLower := strings.ToLower(strings.TrimSpace(description))
	if descLower == "" {
		return model.DefaultCategory
	}

	// Learned patterns first, highest confidence wins.
	patterns, err := c.store.GetPatterns(ctx, userID)
	if err != nil {
		c.logger.Warn("failed to load learned patterns", "user_id", userID, "error", err)
	}
	for i := range patterns {
		p := &patterns[i]
		if strings.Contains(descLower, strings.ToLower(p.DescriptionPattern)) {
			if err := c.store.ReinforcePattern(ctx, p.ID, reinforcedConfidence(p.ConfidenceScore)); err != nil {
				c.logger.Warn("failed to reinforce pattern", "pattern_id", p.ID, "error", err)
			}
			return p.SuggestedCategory
		}
	}

	// Static keyword table.
	category, matched := keywordCategory(descLower)

	confidence := defaultConfidence
	if matched {
		confidence = keywordConfidence
	}
	if err := c.store.UpsertPattern(ctx, userID, descLower, category, confidence); err != nil {
		c.logger.Warn("failed to record learning observation",
			"user_id", userID,
			"category", category,
			"error", err)
	}

	return category
}

// reinforcedConfidence bumps a confidence toward the learned-pattern ceiling.
func reinforcedConfidence(current float64) float64 {
	next := current + 0.05
	if next > model.MaxPatternConfidence {
		next = model.MaxPatternConfidence
	}
	return next
}

// keywordCategory scores the description against the keyword table. The
// category with the most substring hits wins; ties break by canonical
// category order. Zero hits falls back to the default category.
func keywordCategory(descLower string) (string, bool) {
	best := model.DefaultCategory
	bestHits := 0

	for _, category := range model.Categories() {
		hits := 0
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(descLower, keyword) {
				hits++
			}
		}
		if hits > bestHits {
			best = category
			bestHits = hits
		}
	}

	return best, bestHits > 0
}
