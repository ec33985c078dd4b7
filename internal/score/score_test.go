package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		name        string
		description string
		category    string
		amount      float64
		want        float64
	}{
		{
			name:        "everything good except currency",
			description: "Coffee",
			amount:      5,
			category:    "Food",
			want:        1.0,
		},
		{
			name:        "short description",
			description: "Ga",
			amount:      30,
			category:    "Transportation",
			want:        0.8,
		},
		{
			name:        "default category loses a point",
			description: "Mystery",
			amount:      30,
			category:    "Others",
			want:        0.9,
		},
		{
			name:        "implausibly large amount",
			description: "Yacht",
			amount:      50000,
			category:    "Others",
			want:        0.8,
		},
		{
			name:        "tiny amount",
			description: "Gum",
			amount:      0.05,
			category:    "Food",
			want:        0.8,
		},
		{
			name:        "currency token present caps at one",
			description: "Coffee 5 dollars",
			amount:      5,
			category:    "Food",
			want:        1.0,
		},
		{
			name:        "worst case",
			description: "",
			amount:      0,
			category:    "",
			want:        0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.description, tt.amount, tt.category)
			assert.InDelta(t, tt.want, got, 0.001)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}
