package service

import (
	"sort"
	"strings"

	"portal/internal/model"
)

// Query describes one inventory view request: a free-text filter matched
// case-insensitively against name, id and status, an exact status filter, and
// a sort key with direction.
type Query struct {
	Search        string
	Status        string
	SortField     string // name | id | status
	SortAscending bool
}

// RunQuery produces the filtered, sorted projection of the collection.
// Pure function of its inputs: the input slice is never mutated, applying the
// same query twice yields the same result, and ties keep their original
// relative order (stable sort).
func RunQuery(assets []model.Asset, q Query) []model.Asset {
	out := make([]model.Asset, 0, len(assets))
	search := strings.ToLower(q.Search)

	for _, a := range assets {
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		if q.Status != "" && a.Status != q.Status {
			continue
		}
		out = append(out, a)
	}

	key := comparatorFor(q.SortField)
	sort.SliceStable(out, func(i, j int) bool {
		if q.SortAscending {
			return key(out[i]) < key(out[j])
		}
		return key(out[i]) > key(out[j])
	})

	return out
}

func matchesSearch(a model.Asset, search string) bool {
	return strings.Contains(strings.ToLower(a.Name), search) ||
		strings.Contains(strings.ToLower(a.ID), search) ||
		strings.Contains(strings.ToLower(a.Status), search)
}

// comparatorFor returns the single sort-key extractor for a field. Unknown
// fields fall back to name, the portal's default sort.
func comparatorFor(field string) func(model.Asset) string {
	switch field {
	case "id":
		return func(a model.Asset) string { return a.ID }
	case "status":
		return func(a model.Asset) string { return a.Status }
	default:
		return func(a model.Asset) string { return a.Name }
	}
}
