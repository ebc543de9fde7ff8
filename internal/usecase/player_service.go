package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/futdados/soccergraph/internal/domain/player"
	"github.com/futdados/soccergraph/internal/normalize"
)

const (
	defaultPlayerLimit = 50
	defaultTopLimit    = 20
)

type PlayerService struct {
	playerRepo player.Repository
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

// FindPlayers searches the player pool. All filter fields are optional;
// results come back ordered by overall rating descending.
func (s *PlayerService) FindPlayers(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.FindPlayers")
	defer span.End()

	if filter.MinOverall < 0 || filter.MaxOverall < 0 {
		return nil, fmt.Errorf("%w: overall bounds must not be negative", ErrInvalidInput)
	}
	if filter.MaxOverall > 0 && filter.MinOverall > filter.MaxOverall {
		return nil, fmt.Errorf("%w: min_overall exceeds max_overall", ErrInvalidInput)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPlayerLimit
	}
	// Club filters go through the same name cleanup as team lookups so
	// "São Paulo" finds players stored under "Sao Paulo".
	filter.Club = normalize.CleanName(filter.Club)

	players, err := s.playerRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find players: %w", err)
	}

	return players, nil
}

// TopPlayers returns the highest-rated players, optionally filtered by
// nationality.
func (s *PlayerService) TopPlayers(ctx context.Context, nationality string, limit int) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.TopPlayers")
	defer span.End()

	if limit <= 0 {
		limit = defaultTopLimit
	}

	players, err := s.playerRepo.Find(ctx, player.Filter{
		Nationality: strings.TrimSpace(nationality),
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("find top players: %w", err)
	}

	return players, nil
}
