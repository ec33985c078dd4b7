package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxpense/vocal/internal/model"
)

func item(description string, amount float64) model.CandidateItem {
	return model.CandidateItem{Description: description, Amount: amount}
}

func TestFilterIntraBatch(t *testing.T) {
	items := []model.CandidateItem{
		item("Coffee", 5),
		item("coffee", 5),
		item("Coffee", 6),
		item("Lunch", 15),
	}

	got := Filter(items, nil)
	require.Len(t, got, 3)
	assert.Equal(t, "Coffee", got[0].Description, "first occurrence wins")
	assert.InDelta(t, 6.0, got[1].Amount, 0.001, "same description with another amount survives")
	assert.Equal(t, "Lunch", got[2].Description)
}

func TestFilterCrossBatch(t *testing.T) {
	existing := map[string]struct{}{
		model.ExpenseDedupKey("coffee", 5): {},
	}

	got := Filter([]model.CandidateItem{item("Coffee", 5), item("Lunch", 15)}, existing)
	require.Len(t, got, 1)
	assert.Equal(t, "Lunch", got[0].Description)
}

func TestFilterResubmissionDropsEverything(t *testing.T) {
	items := []model.CandidateItem{item("Coffee", 5), item("Lunch", 15)}

	existing := make(map[string]struct{})
	for _, it := range items {
		existing[it.DedupKey()] = struct{}{}
	}

	assert.Empty(t, Filter(items, existing))
}

func TestFilterEmptyInput(t *testing.T) {
	assert.Empty(t, Filter(nil, nil))
}
