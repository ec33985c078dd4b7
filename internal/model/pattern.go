package model

import "time"

// MaxPatternConfidence is the ceiling a learned pattern's confidence can
// reach through reinforcement.
const MaxPatternConfidence = 0.9

// LearnedPattern represents a per-user remembered mapping from a description
// fragment to a category. Confidence grows each time the pattern is reused;
// patterns are never deleted by the pipeline.
type LearnedPattern struct {
	LastUsed           time.Time `json:"last_used"`
	CreatedAt          time.Time `json:"created_at"`
	UserID             string    `json:"user_id"`
	DescriptionPattern string    `json:"description_pattern"`
	SuggestedCategory  string    `json:"suggested_category"`
	ConfidenceScore    float64   `json:"confidence_score"`
	UsageCount         int       `json:"usage_count"`
	ID                 int64     `json:"id"`
}

// Reinforce bumps the pattern's confidence toward the ceiling and records
// the reuse.
func (p *LearnedPattern) Reinforce(now time.Time) {
	p.ConfidenceScore += 0.05
	if p.ConfidenceScore > MaxPatternConfidence {
		p.ConfidenceScore = MaxPatternConfidence
	}
	p.UsageCount++
	p.LastUsed = now
}
