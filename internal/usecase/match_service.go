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

const defaultMatchLimit = 100

type MatchService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
}

func NewMatchService(teamRepo team.Repository, matchRepo match.Repository) *MatchService {
	return &MatchService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
	}
}

// FindMatchesQuery filters the match search. Team is required.
type FindMatchesQuery struct {
	Team        string
	Season      int
	Competition string
	HomeOnly    bool
	AwayOnly    bool
	Limit       int
}

// MatchList is a match search result plus the searched team's summary
// record over the returned matches.
type MatchList struct {
	Team    string
	Total   int
	Summary stats.Record
	Matches []match.Match
}

func (s *MatchService) FindMatches(ctx context.Context, query FindMatchesQuery) (MatchList, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.FindMatches")
	defer span.End()

	if query.HomeOnly && query.AwayOnly {
		return MatchList{}, fmt.Errorf("%w: home_only and away_only are mutually exclusive", ErrInvalidInput)
	}

	resolved, err := s.resolveTeam(ctx, query.Team)
	if err != nil {
		return MatchList{}, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultMatchLimit
	}

	matches, err := s.matchRepo.Find(ctx, match.Filter{
		Team:        resolved.Name,
		Season:      query.Season,
		Competition: query.Competition,
		HomeOnly:    query.HomeOnly,
		AwayOnly:    query.AwayOnly,
		Limit:       limit,
	})
	if err != nil {
		return MatchList{}, fmt.Errorf("find matches: %w", err)
	}

	return MatchList{
		Team:    resolved.Name,
		Total:   len(matches),
		Summary: stats.ComputeTeamStatistics(matches, resolved.Name).Overall,
		Matches: matches,
	}, nil
}

// HeadToHeadResult pairs the aggregate record with the underlying matches.
type HeadToHeadResult struct {
	Record  stats.HeadToHead
	Matches []match.Match
}

// HeadToHead aggregates all matches between two teams in either venue
// orientation. Both teams must resolve to known entities.
func (s *MatchService) HeadToHead(ctx context.Context, rawA, rawB string, season int) (HeadToHeadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.HeadToHead")
	defer span.End()

	teamA, err := s.resolveTeam(ctx, rawA)
	if err != nil {
		return HeadToHeadResult{}, err
	}
	teamB, err := s.resolveTeam(ctx, rawB)
	if err != nil {
		return HeadToHeadResult{}, err
	}
	if teamA.Name == teamB.Name {
		return HeadToHeadResult{}, fmt.Errorf("%w: head-to-head requires two distinct teams", ErrInvalidInput)
	}

	matches, err := s.matchRepo.Find(ctx, match.Filter{
		Team:      teamA.Name,
		OtherTeam: teamB.Name,
		Season:    season,
	})
	if err != nil {
		return HeadToHeadResult{}, fmt.Errorf("find head-to-head matches: %w", err)
	}

	return HeadToHeadResult{
		Record:  stats.ComputeHeadToHead(matches, teamA.Name, teamB.Name),
		Matches: matches,
	}, nil
}

func (s *MatchService) resolveTeam(ctx context.Context, raw string) (team.Team, error) {
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
