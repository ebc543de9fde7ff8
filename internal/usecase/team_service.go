package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/futdados/soccergraph/internal/domain/match"
	"github.com/futdados/soccergraph/internal/domain/team"
	"github.com/futdados/soccergraph/internal/normalize"
	"github.com/futdados/soccergraph/internal/stats"
)

type TeamService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
}

func NewTeamService(teamRepo team.Repository, matchRepo match.Repository) *TeamService {
	return &TeamService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
	}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

// GetStatistics computes the overall/home/away breakdown for one team,
// optionally scoped to a season. A team with zero matches in scope yields a
// zero-valued breakdown; an unknown team yields ErrNotFound.
func (s *TeamService) GetStatistics(ctx context.Context, rawTeam string, season int) (stats.TeamStatistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetStatistics")
	defer span.End()

	resolved, err := s.resolveTeam(ctx, rawTeam)
	if err != nil {
		return stats.TeamStatistics{}, err
	}

	matches, err := s.matchRepo.Find(ctx, match.Filter{Team: resolved.Name, Season: season})
	if err != nil {
		return stats.TeamStatistics{}, fmt.Errorf("find matches for team: %w", err)
	}

	return stats.ComputeTeamStatistics(matches, resolved.Name), nil
}

func (s *TeamService) resolveTeam(ctx context.Context, raw string) (team.Team, error) {
	cleaned := normalize.CleanName(raw)
	if strings.TrimSpace(cleaned) == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	resolved, exists, err := s.teamRepo.GetByName(ctx, cleaned)
	if err != nil {
		return team.Team{}, fmt.Errorf("resolve team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, cleaned)
	}

	return resolved, nil
}
