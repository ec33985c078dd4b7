// Package score assigns advisory confidence values to extracted items.
// Scores are surfaced to the caller as metadata; they never reject items.
package score

import (
	"github.com/voxpense/vocal/internal/extract"
	"github.com/voxpense/vocal/internal/model"
)

// Confidence rates how trustworthy an extracted item looks, from its
// description length, amount plausibility, category specificity, and
// currency mention. The result is clamped to [0, 1].
func Confidence(description string, amount float64, category string) float64 {
	confidence := 0.5

	if len(description) >= 3 {
		confidence += 0.1
	}
	if len(description) >= 5 {
		confidence += 0.1
	}

	if amount > 0 && amount < 10000 {
		confidence += 0.1
	}
	if amount > 0.1 {
		confidence += 0.1
	}

	if category != "" && category != model.DefaultCategory {
		confidence += 0.1
	}

	if extract.HasCurrencyToken(description) {
		confidence += 0.1
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
