package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/futdados/soccergraph/internal/domain/match"
)

// MatchRepository keeps played matches in memory, keyed by their composite
// fixture identity.
type MatchRepository struct {
	mu    sync.RWMutex
	byKey map[match.Key]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	repo := &MatchRepository{byKey: make(map[match.Key]match.Match, len(matches))}
	for _, item := range matches {
		repo.byKey[item.Key()] = item
	}
	return repo
}

func (r *MatchRepository) Find(_ context.Context, filter match.Filter) ([]match.Match, error) {
	r.mu.RLock()
	out := make([]match.Match, 0, len(r.byKey))
	for _, item := range r.byKey {
		if matchesFilter(item, filter) {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *MatchRepository) Seasons(_ context.Context, competition string) ([]int, error) {
	r.mu.RLock()
	seen := make(map[int]struct{})
	for _, item := range r.byKey {
		if !competitionMatches(item.Competition, competition) {
			continue
		}
		if item.Season > 0 {
			seen[item.Season] = struct{}{}
		}
	}
	r.mu.RUnlock()

	out := make([]int, 0, len(seen))
	for season := range seen {
		out = append(out, season)
	}
	sort.Ints(out)

	return out, nil
}

func (r *MatchRepository) Upsert(_ context.Context, matches []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range matches {
		r.byKey[item.Key()] = item
	}

	return nil
}

func matchesFilter(m match.Match, filter match.Filter) bool {
	if filter.Season > 0 && m.Season != filter.Season {
		return false
	}
	if !competitionMatches(m.Competition, filter.Competition) {
		return false
	}

	if filter.Team != "" {
		switch {
		case filter.OtherTeam != "":
			pairA := m.HomeTeam == filter.Team && m.AwayTeam == filter.OtherTeam
			pairB := m.HomeTeam == filter.OtherTeam && m.AwayTeam == filter.Team
			if !pairA && !pairB {
				return false
			}
		case filter.HomeOnly:
			if m.HomeTeam != filter.Team {
				return false
			}
		case filter.AwayOnly:
			if m.AwayTeam != filter.Team {
				return false
			}
		default:
			if m.HomeTeam != filter.Team && m.AwayTeam != filter.Team {
				return false
			}
		}
	}

	return true
}

func competitionMatches(name, fragment string) bool {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(fragment))
}
