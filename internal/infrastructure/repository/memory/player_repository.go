package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/futdados/soccergraph/internal/domain/player"
)

type PlayerRepository struct {
	mu   sync.RWMutex
	byID map[int64]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	repo := &PlayerRepository{byID: make(map[int64]player.Player, len(players))}
	for _, item := range players {
		repo.byID[item.ID] = item
	}
	return repo
}

func (r *PlayerRepository) Find(_ context.Context, filter player.Filter) ([]player.Player, error) {
	r.mu.RLock()
	out := make([]player.Player, 0, len(r.byID))
	for _, item := range r.byID {
		if playerMatches(item, filter) {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Overall != out[j].Overall {
			return out[i].Overall > out[j].Overall
		}
		return out[i].ID < out[j].ID
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range players {
		if item.ID <= 0 {
			continue
		}
		r.byID[item.ID] = item
	}

	return nil
}

func playerMatches(p player.Player, filter player.Filter) bool {
	if !containsFold(p.Name, filter.Name) {
		return false
	}
	if !containsFold(p.Nationality, filter.Nationality) {
		return false
	}
	if !containsFold(p.Club, filter.Club) {
		return false
	}
	if !containsFold(p.Position, filter.Position) {
		return false
	}
	if filter.MinOverall > 0 && p.Overall < filter.MinOverall {
		return false
	}
	if filter.MaxOverall > 0 && p.Overall > filter.MaxOverall {
		return false
	}
	return true
}

func containsFold(value, fragment string) bool {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(fragment))
}
