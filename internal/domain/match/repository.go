package match

import "context"

// Filter narrows match queries. Team fields hold canonical names; the zero
// Season means all seasons. Competition matches as a case-insensitive
// substring, mirroring how source files abbreviate competition names.
type Filter struct {
	Team        string
	OtherTeam   string
	Season      int
	Competition string
	HomeOnly    bool
	AwayOnly    bool
	Limit       int
}

// Repository exposes match reads and load-phase upserts against the store.
type Repository interface {
	// Find returns matches ordered by date descending.
	Find(ctx context.Context, filter Filter) ([]Match, error)
	// Seasons lists distinct season years with at least one match for the
	// competition, ascending.
	Seasons(ctx context.Context, competition string) ([]int, error)
	Upsert(ctx context.Context, matches []Match) error
}
