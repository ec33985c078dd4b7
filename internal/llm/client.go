// Package llm provides completion clients for generative text providers.
// The structured extractor talks to these through service.CompletionClient;
// any provider error or malformed response is a soft failure upstream.
package llm

// Config holds configuration for a completion client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}
