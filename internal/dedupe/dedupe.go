// Package dedupe keeps the same logical expense from being persisted twice,
// both within one extraction batch and against rows already stored for the
// target date.
package dedupe

import (
	"github.com/voxpense/vocal/internal/model"
)

// Filter collapses in-batch duplicates (first occurrence wins) and drops
// candidates whose dedup key already exists among the persisted expenses for
// the target date. This is what makes a UI retry of the same utterance safe.
func Filter(items []model.CandidateItem, existing map[string]struct{}) []model.CandidateItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]model.CandidateItem, 0, len(items))

	for _, item := range items {
		key := item.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, persisted := existing[key]; persisted {
			continue
		}
		out = append(out, item)
	}

	return out
}
