package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxpense/vocal/internal/model"
)

func TestExtractRegex(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []model.CandidateItem
	}{
		{
			name: "item amount with currency",
			text: "coffee 5 dollars",
			want: []model.CandidateItem{
				{Description: "Coffee", Amount: 5, Source: model.SourceRegex},
			},
		},
		{
			name: "comma separated items",
			text: "coffee 5 dollars, lunch 15 dollars",
			want: []model.CandidateItem{
				{Description: "Coffee", Amount: 5, Source: model.SourceRegex},
				{Description: "Lunch", Amount: 15, Source: model.SourceRegex},
			},
		},
		{
			name: "spent on phrasing joined by and",
			text: "spent 20 on groceries and 30 on gas",
			want: []model.CandidateItem{
				{Description: "Groceries", Amount: 20, Source: model.SourceRegex},
				{Description: "Gas", Amount: 30, Source: model.SourceRegex},
			},
		},
		{
			name: "amount for item",
			text: "20 bucks for lunch",
			want: []model.CandidateItem{
				{Description: "Lunch", Amount: 20, Source: model.SourceRegex},
			},
		},
		{
			name: "bought item for amount",
			text: "bought shoes for 45",
			want: []model.CandidateItem{
				{Description: "Shoes", Amount: 45, Source: model.SourceRegex},
			},
		},
		{
			name: "paid verb",
			text: "paid 120 for electricity",
			want: []model.CandidateItem{
				{Description: "Electricity", Amount: 120, Source: model.SourceRegex},
			},
		},
		{
			name: "bare amount then item",
			text: "15 taxi",
			want: []model.CandidateItem{
				{Description: "Taxi", Amount: 15, Source: model.SourceRegex},
			},
		},
		{
			name: "decimal amount",
			text: "coffee 4.50",
			want: []model.CandidateItem{
				{Description: "Coffee", Amount: 4.5, Source: model.SourceRegex},
			},
		},
		{
			name: "explicit category",
			text: "netflix 12 in entertainment",
			want: []model.CandidateItem{
				{Description: "Netflix", Amount: 12, Category: "Entertainment", Source: model.SourceRegex},
			},
		},
		{
			name: "no numbers yields nothing",
			text: "had a lovely walk in the park",
			want: nil,
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRegex(tt.text)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Description, got[i].Description)
				assert.InDelta(t, tt.want[i].Amount, got[i].Amount, 0.001)
				assert.Equal(t, tt.want[i].Category, got[i].Category)
				assert.Equal(t, model.SourceRegex, got[i].Source)
				assert.Zero(t, got[i].Confidence, "regex items are scored downstream")
			}
		})
	}
}

func TestExtractRegexLastResort(t *testing.T) {
	// Nothing in the cascade matches, but a number is present: degrade to
	// "something" rather than zero items.
	got := ExtractRegex("umm so like 25 I think at the pharmacy maybe")
	require.Len(t, got, 1)
	assert.InDelta(t, 25.0, got[0].Amount, 0.001)
	assert.NotEmpty(t, got[0].Description)
}

func TestExtractRegexIsTotal(t *testing.T) {
	inputs := []string{
		"", " ", "...", "0 nothing", "-5 weird", "£$€", "and and and",
		"999999999999999999999999 overflow town",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { ExtractRegex(in) }, "input %q", in)
	}
}

func TestExtractRegexDropsNonPositiveAmounts(t *testing.T) {
	for _, item := range ExtractRegex("spent 0 on nothing") {
		assert.Greater(t, item.Amount, 0.0)
	}
}

func TestHasCurrencyToken(t *testing.T) {
	assert.True(t, HasCurrencyToken("coffee 5 dollars"))
	assert.True(t, HasCurrencyToken("paid $20"))
	assert.True(t, HasCurrencyToken("500 rupees"))
	assert.False(t, HasCurrencyToken("coffee 5"))
	assert.False(t, HasCurrencyToken("starbucks run"), "token must not match inside words")
}

func TestCleanDescriptionStripsCurrency(t *testing.T) {
	assert.Equal(t, "Coffee", cleanDescription("coffee dollars"))
	assert.Equal(t, "Taxi ride", cleanDescription("  taxi   ride $ "))
}
