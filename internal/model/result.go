package model

// VoiceResult is the caller-facing outcome of one voice-processing request.
// A result is always best-effort: enhancement failures (AI extraction,
// budget evaluation, learning writes) appear as suggestions or omissions,
// never as a failed request.
type VoiceResult struct {
	Notification  *NotificationEvent `json:"notification"`
	Transcription string             `json:"transcription"`
	Provider      string             `json:"provider,omitempty"`
	Expenses      []Expense          `json:"expenses"`
	Suggestions   []string           `json:"suggestions"`
	Errors        []string           `json:"errors"`
	Confidence    float64            `json:"confidence"`
}
