package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/futdados/soccergraph/internal/domain/team"
)

// TeamRepository keeps canonical teams in memory. Lookups match both the
// canonical name and every recorded alias, which is how the external graph
// store resolves spellings at query time.
type TeamRepository struct {
	mu     sync.RWMutex
	byName map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	repo := &TeamRepository{byName: make(map[string]team.Team, len(teams))}
	for _, item := range teams {
		repo.byName[item.Name] = item
	}
	return repo
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.byName))
	for _, item := range r.byName {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return team.Team{}, false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byName {
		if strings.ToLower(item.Name) == needle {
			return item, true, nil
		}
		for _, alias := range item.Aliases {
			if strings.ToLower(alias) == needle {
				return item, true, nil
			}
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Upsert(_ context.Context, teams []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range teams {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		existing, ok := r.byName[item.Name]
		if !ok {
			r.byName[item.Name] = item
			continue
		}
		if existing.State == "" {
			existing.State = item.State
		}
		for _, alias := range item.Aliases {
			existing.AddAlias(alias)
		}
		r.byName[item.Name] = existing
	}

	return nil
}
