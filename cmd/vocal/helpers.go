package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/voxpense/vocal/internal/budget"
	"github.com/voxpense/vocal/internal/classify"
	"github.com/voxpense/vocal/internal/common"
	"github.com/voxpense/vocal/internal/config"
	"github.com/voxpense/vocal/internal/engine"
	"github.com/voxpense/vocal/internal/extract"
	"github.com/voxpense/vocal/internal/llm"
	"github.com/voxpense/vocal/internal/model"
	"github.com/voxpense/vocal/internal/service"
	"github.com/voxpense/vocal/internal/storage"
	"github.com/voxpense/vocal/internal/transcribe"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/vocal/vocal.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initTranscriber assembles the provider chain in configured priority order.
// With no keys configured the chain is empty and audio requests fail with a
// manual-entry suggestion; text input still works.
func initTranscriber(logger *slog.Logger) *transcribe.Orchestrator {
	var providers []service.TranscriptionProvider

	if key := viper.GetString("transcription.whisper.api_key"); key != "" {
		provider, err := transcribe.NewWhisperProvider(transcribe.WhisperConfig{
			APIKey: key,
			Model:  viper.GetString("transcription.whisper.model"),
		})
		if err != nil {
			logger.Warn("skipping whisper provider", "error", err)
		} else {
			providers = append(providers, provider)
		}
	}

	if key := viper.GetString("transcription.deepgram.api_key"); key != "" {
		provider, err := transcribe.NewDeepgramProvider(transcribe.DeepgramConfig{
			APIKey: key,
			Model:  viper.GetString("transcription.deepgram.model"),
		})
		if err != nil {
			logger.Warn("skipping deepgram provider", "error", err)
		} else {
			providers = append(providers, provider)
		}
	}

	return transcribe.NewOrchestrator(providers, logger)
}

// regexOnlyExtractor stands in when no completion provider is configured,
// forcing every utterance down the rule-based path.
type regexOnlyExtractor struct{}

func (regexOnlyExtractor) Extract(_ context.Context, _ string) ([]model.CandidateItem, error) {
	return nil, common.ErrExtractionInvalid
}

func initExtractor(logger *slog.Logger) (engine.Extractor, error) {
	apiKey := viper.GetString("llm.api_key")
	if apiKey == "" {
		logger.Info("no completion provider configured, using rule-based extraction only")
		return regexOnlyExtractor{}, nil
	}

	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = "openai"
	}

	client, err := llm.NewClient(llm.Config{
		Provider:    provider,
		APIKey:      apiKey,
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	return extract.NewExtractor(client, logger), nil
}

// buildEngine constructs the full pipeline from configuration.
func buildEngine(store service.Storage, logger *slog.Logger) (*engine.Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	extractor, err := initExtractor(logger)
	if err != nil {
		return nil, err
	}

	return engine.New(
		store,
		initTranscriber(logger),
		extractor,
		classify.NewClassifier(store, logger),
		budget.NewEvaluator(store, logger),
		logger,
	), nil
}
