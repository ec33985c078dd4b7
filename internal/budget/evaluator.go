// Package budget computes spend-versus-budget ratios and raises threshold
// notifications. Evaluation is an enhancement stage: its failures must never
// sink a voice request.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/voxpense/vocal/internal/common"
	"github.com/voxpense/vocal/internal/model"
	"github.com/voxpense/vocal/internal/service"
)

// Evaluator compares a period's spend against its budget.
type Evaluator struct {
	store  service.Storage
	logger *slog.Logger
}

// NewEvaluator creates an evaluator backed by the given store.
func NewEvaluator(store service.Storage, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{store: store, logger: logger}
}

// Evaluate computes the user's spend/budget percentage for the period and
// returns at most one notification event: "exceeded" at or past 100%,
// otherwise "warning" at or past 75%, otherwise nil. No budget set for the
// period means no notification.
//
// The caller owns idempotence: it must consult the notification ledger
// before surfacing the event, since "already notified" is a property of the
// store, not of one evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, userID, period string) (*model.NotificationEvent, error) {
	budget, err := e.store.GetBudget(ctx, userID, period)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrBudgetCheckFailed, err)
	}
	if budget.Amount <= 0 {
		return nil, nil
	}

	spent, err := e.store.SumExpenses(ctx, userID, period)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrBudgetCheckFailed, err)
	}

	percent := int(math.Round(spent / budget.Amount * 100))
	e.logger.Debug("budget evaluated",
		"user_id", userID,
		"period", period,
		"spent", spent,
		"budget", budget.Amount,
		"percent", percent)

	switch {
	case percent >= model.ThresholdExceeded:
		return &model.NotificationEvent{
			Title:     "Budget Exceeded",
			Body:      fmt.Sprintf("You have spent %.2f of your %.2f budget (%d%%) for %s.", spent, budget.Amount, percent, period),
			Period:    period,
			Threshold: model.ThresholdExceeded,
			Percent:   percent,
		}, nil
	case percent >= model.ThresholdWarning:
		return &model.NotificationEvent{
			Title:     "Budget Warning",
			Body:      fmt.Sprintf("You have used %d%% of your %.2f budget for %s.", percent, budget.Amount, period),
			Period:    period,
			Threshold: model.ThresholdWarning,
			Percent:   percent,
		}, nil
	default:
		return nil, nil
	}
}
