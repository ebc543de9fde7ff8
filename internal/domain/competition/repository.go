package competition

import "context"

// Repository exposes competition reads and load-phase upserts.
type Repository interface {
	List(ctx context.Context) ([]Competition, error)
	// GetByName matches the competition whose name contains the given
	// fragment, case-insensitively ("Brasileirao" finds "Brasileirao
	// Serie A"). The boolean reports whether any competition matched.
	GetByName(ctx context.Context, name string) (Competition, bool, error)
	Upsert(ctx context.Context, competitions []Competition) error
}
