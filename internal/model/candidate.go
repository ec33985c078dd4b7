package model

// CandidateSource indicates which extraction path produced a candidate item.
type CandidateSource string

const (
	// SourceAI indicates the item came from the structured-extraction provider.
	SourceAI CandidateSource = "ai"
	// SourceRegex indicates the item came from the regex fallback cascade.
	SourceRegex CandidateSource = "regex"
)

// CandidateItem is an extracted-but-not-yet-persisted expense candidate.
// Candidates exist only for the duration of one voice request; they are
// either persisted as Expenses or discarded by validation and dedup.
type CandidateItem struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Source      CandidateSource `json:"source"`
	Amount      float64         `json:"amount"`
	Confidence  float64         `json:"confidence"`
}

// DedupKey returns the duplicate-detection key for this candidate.
func (c *CandidateItem) DedupKey() string {
	return ExpenseDedupKey(c.Description, c.Amount)
}
