package model

import "strings"

// DefaultCategory is the catch-all category assigned when nothing better
// can be resolved.
const DefaultCategory = "Others"

// categories is the fixed category set, in display order. The order matters:
// keyword-classification ties break in favor of earlier entries.
var categories = []string{
	"Food",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Travel",
	"Personal Care",
	DefaultCategory,
}

// Categories returns the allowed category set in canonical order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// IsValidCategory reports whether name is one of the allowed categories.
func IsValidCategory(name string) bool {
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}

// CanonicalCategory resolves a case-insensitive category name to its
// canonical form.
func CanonicalCategory(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, c := range categories {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}
