package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voxpense/vocal/internal/service"
)

// DeepgramConfig holds configuration for the Deepgram provider.
type DeepgramConfig struct {
	APIKey string
	Model  string
}

// deepgramProvider transcribes audio through the Deepgram listen API.
type deepgramProvider struct {
	httpClient *http.Client
	apiKey     string
	model      string
}

// NewDeepgramProvider creates a Deepgram transcription provider.
func NewDeepgramProvider(cfg DeepgramConfig) (service.TranscriptionProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("deepgram API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "nova-2"
	}

	return &deepgramProvider{
		apiKey: cfg.APIKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (p *deepgramProvider) Name() string { return "deepgram" }

// Transcribe posts the raw audio body and returns the top alternative's
// transcript. No detected speech yields an empty string, not an error.
func (p *deepgramProvider) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	url := "https://api.deepgram.com/v1/listen?model=" + p.model + "&smart_format=true"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Authorization", "Token "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepgram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response deepgramResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	channels := response.Results.Channels
	if len(channels) == 0 || len(channels[0].Alternatives) == 0 {
		return "", nil
	}

	return channels[0].Alternatives[0].Transcript, nil
}

// deepgramResponse represents the Deepgram API response structure.
type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}
