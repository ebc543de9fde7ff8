package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/futdados/soccergraph/internal/domain/competition"
)

type CompetitionRepository struct {
	mu     sync.RWMutex
	byName map[string]competition.Competition
}

func NewCompetitionRepository(competitions []competition.Competition) *CompetitionRepository {
	repo := &CompetitionRepository{byName: make(map[string]competition.Competition, len(competitions))}
	for _, item := range competitions {
		repo.byName[item.Name] = item
	}
	return repo
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.byName))
	for _, item := range r.byName {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *CompetitionRepository) GetByName(_ context.Context, name string) (competition.Competition, bool, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return competition.Competition{}, false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Prefer an exact match, then fall back to substring so "Brasileirao"
	// finds "Brasileirao Serie A".
	for _, item := range r.byName {
		if strings.ToLower(item.Name) == needle || strings.EqualFold(item.ShortName, name) {
			return item, true, nil
		}
	}
	for _, item := range r.byName {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			return item, true, nil
		}
	}

	return competition.Competition{}, false, nil
}

func (r *CompetitionRepository) Upsert(_ context.Context, competitions []competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range competitions {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		r.byName[item.Name] = item
	}

	return nil
}
