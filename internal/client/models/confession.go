package models

import (
	"slices"
	"time"
)

// Confession is the client-side copy of a confession row.
type Confession struct {
	ID        string
	Text      string
	Crush     string
	Hearts    int64
	CreatedAt time.Time
}

// SortNewestFirst orders by CreatedAt descending, then id descending, the
// same order the server returns.
func SortNewestFirst(items []Confession) {
	slices.SortStableFunc(items, func(a, b Confession) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
}
