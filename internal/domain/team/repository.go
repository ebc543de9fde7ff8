package team

import "context"

// Repository exposes team reads and load-phase upserts against the store.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	// GetByName resolves a normalized name against canonical names and the
	// alias sets. The boolean reports whether any team matched.
	GetByName(ctx context.Context, name string) (Team, bool, error)
	Upsert(ctx context.Context, teams []Team) error
}
