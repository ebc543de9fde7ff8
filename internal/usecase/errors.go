package usecase

import "errors"

var (
	// ErrInvalidInput covers malformed parameters and records, e.g.
	// negative goals or a missing required filter.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means the referenced team, player or competition does
	// not exist after canonicalization lookup. It is distinct from a known
	// entity with zero matches, which is a successful empty result.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict marks duplicate match records whose source precedence is
	// undefined. The read-only API never returns it today; conflicts are
	// detected at load time and surfaced through the load report. The
	// sentinel stays in the taxonomy, mapped to 409 at the HTTP edge, for
	// write endpoints that would hit the same precedence rules.
	ErrConflict = errors.New("conflicting record")
	// ErrDependencyUnavailable signals a failing external collaborator,
	// e.g. the dataset mirror or the store.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
