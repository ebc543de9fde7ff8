package player

import "context"

// Filter narrows player searches. Name, Nationality and Club match as
// case-insensitive substrings; Position matches as a substring because the
// dataset stores multi-position strings like "ST RW".
type Filter struct {
	Name        string
	Nationality string
	Club        string
	Position    string
	MinOverall  int
	MaxOverall  int
	Limit       int
}

// Repository exposes player reads and load-phase upserts against the store.
type Repository interface {
	// Find returns players matching the filter, ordered by overall rating
	// descending.
	Find(ctx context.Context, filter Filter) ([]Player, error)
	Upsert(ctx context.Context, players []Player) error
}
