// Package extract turns free-form transcripts into candidate expense items.
// The primary path asks a generative provider for structured output; the
// regex cascade in regex.go is the deterministic fallback.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/voxpense/vocal/internal/common"
	"github.com/voxpense/vocal/internal/model"
	"github.com/voxpense/vocal/internal/service"
)

// AIConfidence is the flat confidence assigned to provider-extracted items.
// AI-sourced items are treated as higher-trust than regex-sourced ones.
const AIConfidence = 0.9

// Extractor sends transcripts to a completion provider under a strict output
// contract and validates what comes back.
type Extractor struct {
	client    service.CompletionClient
	logger    *slog.Logger
	retryOpts service.RetryOptions
}

// NewExtractor creates a structured extractor backed by the given client.
func NewExtractor(client service.CompletionClient, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		client: client,
		logger: logger,
		retryOpts: service.RetryOptions{
			MaxAttempts: 2,
		},
	}
}

// Extract asks the provider to structure the transcript into expense items.
// Any provider error or unusable response yields common.ErrExtractionInvalid;
// callers fall through to ExtractRegex rather than failing the request.
func (e *Extractor) Extract(ctx context.Context, text string) ([]model.CandidateItem, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: no completion client configured", common.ErrExtractionInvalid)
	}

	prompt := buildPrompt(text)

	var response string
	err := common.WithRetry(ctx, func() error {
		var callErr error
		response, callErr = e.client.Complete(ctx, prompt)
		return callErr
	}, e.retryOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: provider call failed: %w", common.ErrExtractionInvalid, err)
	}

	items, err := parseItems(response)
	if err != nil {
		e.logger.Debug("unusable extraction response", "error", err, "response_chars", len(response))
		return nil, fmt.Errorf("%w: %w", common.ErrExtractionInvalid, err)
	}

	return items, nil
}

// buildPrompt builds the fixed instruction sent to the provider.
func buildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Extract every expense mentioned in the following sentence.\n\n")
	sb.WriteString("Sentence: ")
	sb.WriteString(text)
	sb.WriteString("\n\nRespond with ONLY a JSON array. Each element must be an object with:\n")
	sb.WriteString(`- "amount": a positive number` + "\n")
	sb.WriteString(`- "description": a short name for the expense` + "\n")
	sb.WriteString(`- "category": one of: ` + strings.Join(model.Categories(), ", ") + "\n\n")
	sb.WriteString("If no expenses are mentioned, respond with an empty array: []\n")
	return sb.String()
}

// rawItem is the loose shape accepted from the provider before validation.
type rawItem struct {
	Amount      any    `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// parseItems locates the JSON array in the response (providers sometimes wrap
// it in prose or markdown fences), parses it, and drops invalid elements.
func parseItems(response string) ([]model.CandidateItem, error) {
	arr, err := locateJSONArray(response)
	if err != nil {
		return nil, err
	}

	var raw []rawItem
	if err := json.Unmarshal([]byte(arr), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}

	items := make([]model.CandidateItem, 0, len(raw))
	for _, r := range raw {
		amount := coerceAmount(r.Amount)
		description := strings.TrimSpace(r.Description)
		category := strings.TrimSpace(r.Category)

		if amount <= 0 || description == "" || category == "" {
			continue
		}
		if !model.IsValidCategory(category) {
			category = model.DefaultCategory
		}

		items = append(items, model.CandidateItem{
			Description: Capitalize(description),
			Amount:      amount,
			Category:    category,
			Confidence:  AIConfidence,
			Source:      model.SourceAI,
		})
	}

	return items, nil
}

// locateJSONArray returns the first top-level JSON array substring.
func locateJSONArray(s string) (string, error) {
	start := strings.Index(s, "[")
	if start < 0 {
		return "", fmt.Errorf("no JSON array in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("unterminated JSON array in response")
}

// coerceAmount accepts numbers or numeric strings from the provider.
func coerceAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
