// Package engine wires the voice-to-expense pipeline: transcription,
// extraction, classification, scoring, dedup, persistence, and the budget
// check, in that strict order.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voxpense/vocal/internal/common"
	"github.com/voxpense/vocal/internal/dedupe"
	"github.com/voxpense/vocal/internal/extract"
	"github.com/voxpense/vocal/internal/model"
	"github.com/voxpense/vocal/internal/normalize"
	"github.com/voxpense/vocal/internal/score"
	"github.com/voxpense/vocal/internal/service"
)

// Suggestions surfaced to the user in degraded outcomes.
const (
	suggestionNoSpeech    = "No speech detected. Try speaking more clearly, or add the expense manually."
	suggestionNoExpenses  = "No expenses were recognized. Try phrasing like \"coffee 5 dollars\"."
	suggestionManualEntry = "We couldn't process the audio. Please try manual entry."
)

// Request is one voice-processing unit of work. Either Audio or Text must be
// set; Text skips transcription entirely.
type Request struct {
	Date     time.Time
	UserID   string
	MimeType string
	Text     string
	Audio    []byte
}

// Engine runs voice requests through the pipeline stages sequentially. Only
// total transcription failure is fatal; every later stage degrades softly so
// a best-effort result always reaches the caller.
type Engine struct {
	store       service.Storage
	transcriber Transcriber
	extractor   Extractor
	classifier  Classifier
	evaluator   BudgetEvaluator
	logger      *slog.Logger
}

// New creates a pipeline engine.
func New(store service.Storage, transcriber Transcriber, extractor Extractor, classifier Classifier, evaluator BudgetEvaluator, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:       store,
		transcriber: transcriber,
		extractor:   extractor,
		classifier:  classifier,
		evaluator:   evaluator,
		logger:      logger,
	}
}

// ProcessVoice handles one request end to end and returns the caller-facing
// result. The returned error is non-nil only for request-fatal conditions
// (bad input, all transcription providers exhausted).
func (e *Engine) ProcessVoice(ctx context.Context, req Request) (*model.VoiceResult, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if req.Text == "" && len(req.Audio) == 0 {
		return nil, fmt.Errorf("either audio or text is required")
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	date = date.Truncate(24 * time.Hour)

	result := &model.VoiceResult{
		Expenses:    []model.Expense{},
		Suggestions: []string{},
		Errors:      []string{},
	}

	// Stage 1: transcription (skipped when text came with the request).
	transcript := req.Text
	if transcript == "" {
		text, provider, err := e.transcriber.Transcribe(ctx, req.Audio, req.MimeType)
		if err != nil {
			e.logger.Error("all transcription providers failed", "user_id", req.UserID, "error", err)
			return nil, common.NewUserError(suggestionManualEntry, err)
		}
		transcript = text
		result.Provider = provider
	}
	result.Transcription = transcript

	// A successful-but-empty transcription is "no speech", not an error.
	if strings.TrimSpace(transcript) == "" {
		result.Suggestions = append(result.Suggestions, suggestionNoSpeech)
		return result, nil
	}

	// Stage 2: digit normalization, then extraction with regex fallback.
	normalized := normalize.Digits(transcript)

	items, err := e.extractor.Extract(ctx, normalized)
	if err != nil {
		// Soft failure: the deterministic cascade takes over.
		e.logger.Warn("structured extraction failed, falling back to regex",
			"user_id", req.UserID,
			"error", err)
		items = extract.ExtractRegex(normalized)
	}

	// Stage 3: classification and scoring.
	for i := range items {
		item := &items[i]
		if item.Category == "" {
			item.Category = e.classifier.ClassifyAndLearn(ctx, req.UserID, item.Description)
		} else {
			e.observe(ctx, req.UserID, item.Description, item.Category)
		}
		if item.Confidence == 0 {
			item.Confidence = score.Confidence(item.Description, item.Amount, item.Category)
		}
	}

	// Stage 4: dedup against the batch and the day's persisted rows.
	existing, err := e.store.ExistingForDate(ctx, req.UserID, date)
	if err != nil {
		e.logger.Warn("existence query failed, relying on store constraint",
			"user_id", req.UserID,
			"error", err)
		existing = map[string]struct{}{}
	}
	items = dedupe.Filter(items, existing)

	// Stage 5: persistence, item by item.
	var confidenceSum float64
	for _, item := range items {
		if item.Amount <= 0 {
			continue
		}

		expense := model.Expense{
			ID:          uuid.NewString(),
			UserID:      req.UserID,
			Description: item.Description,
			Amount:      item.Amount,
			Category:    item.Category,
			Date:        date,
			Origin:      model.OriginVoice,
			CreatedAt:   time.Now().UTC(),
		}

		if err := e.store.InsertExpense(ctx, &expense); err != nil {
			if errors.Is(err, common.ErrDuplicateEntry) {
				// A concurrent submission won the race; treat as deduplicated.
				e.logger.Debug("expense lost insert race", "description", item.Description)
				continue
			}
			e.logger.Error("failed to persist expense",
				"user_id", req.UserID,
				"description", item.Description,
				"error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%v: %s", common.ErrPersistenceFailed, item.Description))
			result.Suggestions = append(result.Suggestions, fmt.Sprintf("Couldn't save %q - please add it manually.", item.Description))
			continue
		}

		result.Expenses = append(result.Expenses, expense)
		confidenceSum += item.Confidence
	}

	if len(result.Expenses) > 0 {
		result.Confidence = confidenceSum / float64(len(result.Expenses))
	} else if len(result.Errors) == 0 {
		result.Suggestions = append(result.Suggestions, suggestionNoExpenses)
	}

	// Stage 6: budget threshold check against the updated totals.
	e.checkBudget(ctx, req.UserID, model.PeriodOf(date), result)

	return result, nil
}

// observe records a learning signal for an item that arrived with its
// category already resolved (AI extraction or an explicit spoken category).
func (e *Engine) observe(ctx context.Context, userID, description, category string) {
	pattern := strings.ToLower(strings.TrimSpace(description))
	if pattern == "" || category == model.DefaultCategory {
		return
	}
	if err := e.store.UpsertPattern(ctx, userID, pattern, category, 0.7); err != nil {
		e.logger.Warn("failed to record learning observation",
			"user_id", userID,
			"category", category,
			"error", err)
	}
}

// checkBudget attaches at most one not-yet-raised threshold notification.
// Every failure here is soft: the notification is simply omitted.
func (e *Engine) checkBudget(ctx context.Context, userID, period string, result *model.VoiceResult) {
	event, err := e.evaluator.Evaluate(ctx, userID, period)
	if err != nil {
		e.logger.Warn("budget check failed", "user_id", userID, "period", period, "error", err)
		return
	}
	if event == nil {
		return
	}

	sent, err := e.store.WasNotified(ctx, userID, period, event.Threshold)
	if err != nil {
		e.logger.Warn("notification ledger check failed", "user_id", userID, "error", err)
		return
	}
	if sent {
		return
	}

	if err := e.store.MarkNotified(ctx, userID, period, event.Threshold); err != nil {
		e.logger.Warn("failed to record notification", "user_id", userID, "error", err)
		return
	}

	result.Notification = event
}
