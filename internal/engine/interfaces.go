package engine

import (
	"context"

	"github.com/voxpense/vocal/internal/model"
)

// Transcriber produces text from audio, reporting which provider answered.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (text string, provider string, err error)
}

// Extractor is the primary, provider-backed structured extraction path.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]model.CandidateItem, error)
}

// Classifier resolves a category for a description, learning as it goes.
type Classifier interface {
	ClassifyAndLearn(ctx context.Context, userID, description string) string
}

// BudgetEvaluator checks period spend against the budget and may produce a
// threshold notification.
type BudgetEvaluator interface {
	Evaluate(ctx context.Context, userID, period string) (*model.NotificationEvent, error)
}
