package claim

import (
	"strings"

	"github.com/liliang-cn/claimwizard/internal/domain"
)

// Toggle removes c from selected when a condition with the same ID is
// present, and appends it otherwise. The input slice is never modified.
func Toggle(selected []domain.Condition, c domain.Condition) []domain.Condition {
	out := make([]domain.Condition, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s.ID == c.ID {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, c)
	}
	return out
}

// IsSelected reports whether a condition with id is in selected
func IsSelected(selected []domain.Condition, id int) bool {
	for _, s := range selected {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Filter returns the catalog entries whose name or description contains
// query, ignoring case. Catalog order is kept.
func Filter(catalog []domain.Condition, query string) []domain.Condition {
	q := strings.ToLower(query)
	out := make([]domain.Condition, 0, len(catalog))
	for _, c := range catalog {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Description), q) {
			out = append(out, c)
		}
	}
	return out
}
