package service

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"securebank/internal/models"
)

// SuggestContacts ranks saved recipients against the partially typed name.
// Prefix and substring matches come first, then near matches by edit
// distance. An empty query returns the contacts as given.
func SuggestContacts(query string, contacts []models.Contact, limit int) []models.Contact {
	if limit <= 0 || limit > len(contacts) {
		limit = len(contacts)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return contacts[:limit]
	}

	type scored struct {
		contact models.Contact
		score   int
	}
	ranked := make([]scored, 0, len(contacts))
	for _, c := range contacts {
		name := strings.ToLower(c.Name)
		var score int
		switch {
		case strings.HasPrefix(name, q):
			score = 0
		case strings.Contains(name, q):
			score = 1
		default:
			score = 2 + levenshtein.ComputeDistance(q, name)
		}
		ranked = append(ranked, scored{contact: c, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })

	out := make([]models.Contact, 0, limit)
	for _, r := range ranked[:limit] {
		out = append(out, r.contact)
	}
	return out
}
