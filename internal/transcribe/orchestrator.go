// Package transcribe converts spoken audio to text through a priority-ordered
// chain of providers. The first provider to answer wins; an empty transcript
// is a valid answer, not a failure.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/voxpense/vocal/internal/common"
	"github.com/voxpense/vocal/internal/service"
)

// DefaultProviderTimeout bounds a single provider attempt so one hung
// provider cannot stall the whole request.
const DefaultProviderTimeout = 30 * time.Second

// Orchestrator tries transcription providers strictly in order.
//
// Ordering is priority, not load balancing: accuracy-optimized providers sit
// first and the chain only advances on failure. Providers are never retried
// within a request.
type Orchestrator struct {
	logger    *slog.Logger
	providers []service.TranscriptionProvider
	timeout   time.Duration
}

// NewOrchestrator creates an orchestrator over the given providers, tried in
// the order supplied.
func NewOrchestrator(providers []service.TranscriptionProvider, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		providers: providers,
		logger:    logger,
		timeout:   DefaultProviderTimeout,
	}
}

// WithTimeout overrides the per-provider timeout.
func (o *Orchestrator) WithTimeout(d time.Duration) *Orchestrator {
	o.timeout = d
	return o
}

// Transcribe returns the first successful provider's text along with the
// provider's name. If every provider fails, the error wraps
// common.ErrTranscriptionFailed and aggregates all per-provider reasons.
func (o *Orchestrator) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, string, error) {
	if len(o.providers) == 0 {
		return "", "", fmt.Errorf("%w: no providers configured", common.ErrTranscriptionFailed)
	}

	var failures []error
	for _, provider := range o.providers {
		attemptCtx, cancel := context.WithTimeout(ctx, o.timeout)
		text, err := provider.Transcribe(attemptCtx, audio, mimeType)
		cancel()

		if err == nil {
			o.logger.Debug("transcription succeeded",
				"provider", provider.Name(),
				"chars", len(text))
			return text, provider.Name(), nil
		}

		o.logger.Warn("transcription provider failed, trying next",
			"provider", provider.Name(),
			"error", err)
		failures = append(failures, fmt.Errorf("%s: %w", provider.Name(), err))

		if ctx.Err() != nil {
			break
		}
	}

	return "", "", fmt.Errorf("%w: %w", common.ErrTranscriptionFailed, errors.Join(failures...))
}

// ProviderFunc adapts a function to service.TranscriptionProvider.
type ProviderFunc struct {
	Fn       func(ctx context.Context, audio []byte, mimeType string) (string, error)
	Provider string
}

// Name returns the provider's name.
func (p ProviderFunc) Name() string { return p.Provider }

// Transcribe invokes the wrapped function.
func (p ProviderFunc) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return p.Fn(ctx, audio, mimeType)
}
