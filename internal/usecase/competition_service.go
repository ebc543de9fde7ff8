package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/futdados/soccergraph/internal/domain/competition"
	"github.com/futdados/soccergraph/internal/domain/match"
	"github.com/futdados/soccergraph/internal/platform/cache"
	"github.com/futdados/soccergraph/internal/stats"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultBiggestWinsLimit = 20
	winnerSeasonConcurrency = 8
)

type CompetitionService struct {
	competitionRepo competition.Repository
	matchRepo       match.Repository
	standingsCache  *cache.Store
}

// NewCompetitionService wires the competition queries. standingsCache may be
// nil to disable caching (tests, loader runs).
func NewCompetitionService(competitionRepo competition.Repository, matchRepo match.Repository, standingsCache *cache.Store) *CompetitionService {
	return &CompetitionService{
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		standingsCache:  standingsCache,
	}
}

// ListCompetitions returns every known competition.
func (s *CompetitionService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListCompetitions")
	defer span.End()

	competitions, err := s.competitionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return competitions, nil
}

// Standings computes the ranked table for one competition season. The data
// is immutable between loads, so results are cached.
func (s *CompetitionService) Standings(ctx context.Context, rawCompetition string, season int) ([]stats.StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Standings")
	defer span.End()

	comp, err := s.resolveCompetition(ctx, rawCompetition)
	if err != nil {
		return nil, err
	}
	if season <= 0 {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	compute := func(ctx context.Context) (any, error) {
		matches, err := s.matchRepo.Find(ctx, match.Filter{Competition: comp.Name, Season: season})
		if err != nil {
			return nil, fmt.Errorf("find competition matches: %w", err)
		}
		return stats.ComputeStandings(matches), nil
	}

	if s.standingsCache == nil {
		rows, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		return rows.([]stats.StandingRow), nil
	}

	key := fmt.Sprintf("standings:%s:%d", comp.Name, season)
	rows, err := s.standingsCache.GetOrLoad(ctx, key, compute)
	if err != nil {
		return nil, err
	}
	return rows.([]stats.StandingRow), nil
}

// LeagueStats aggregates a competition, optionally scoped to one season.
// Zero matches in scope is a valid all-zero result.
func (s *CompetitionService) LeagueStats(ctx context.Context, rawCompetition string, season int) (stats.LeagueAggregates, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.LeagueStats")
	defer span.End()

	comp, err := s.resolveCompetition(ctx, rawCompetition)
	if err != nil {
		return stats.LeagueAggregates{}, err
	}

	matches, err := s.matchRepo.Find(ctx, match.Filter{Competition: comp.Name, Season: season})
	if err != nil {
		return stats.LeagueAggregates{}, fmt.Errorf("find competition matches: %w", err)
	}

	return stats.ComputeLeagueAggregates(matches), nil
}

// BiggestWins ranks the competition's matches by goal margin.
func (s *CompetitionService) BiggestWins(ctx context.Context, rawCompetition string, season, limit int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.BiggestWins")
	defer span.End()

	comp, err := s.resolveCompetition(ctx, rawCompetition)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultBiggestWinsLimit
	}

	matches, err := s.matchRepo.Find(ctx, match.Filter{Competition: comp.Name, Season: season})
	if err != nil {
		return nil, fmt.Errorf("find competition matches: %w", err)
	}

	return stats.BiggestWins(matches, limit), nil
}

// Winners returns the standings leader for every season of the competition
// within the inclusive year range. Seasons without matches are omitted.
// Season tables are independent pure computations, so they run on a bounded
// pool.
func (s *CompetitionService) Winners(ctx context.Context, rawCompetition string, startYear, endYear int) ([]stats.SeasonWinner, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Winners")
	defer span.End()

	comp, err := s.resolveCompetition(ctx, rawCompetition)
	if err != nil {
		return nil, err
	}
	if startYear > endYear && endYear != 0 {
		return nil, fmt.Errorf("%w: start_year exceeds end_year", ErrInvalidInput)
	}

	seasons, err := s.matchRepo.Seasons(ctx, comp.Name)
	if err != nil {
		return nil, fmt.Errorf("list competition seasons: %w", err)
	}

	inRange := make([]int, 0, len(seasons))
	for _, season := range seasons {
		if startYear > 0 && season < startYear {
			continue
		}
		if endYear > 0 && season > endYear {
			continue
		}
		inRange = append(inRange, season)
	}

	p := pool.NewWithResults[stats.SeasonWinner]().WithErrors().WithContext(ctx).WithMaxGoroutines(winnerSeasonConcurrency)
	for _, season := range inRange {
		p.Go(func(ctx context.Context) (stats.SeasonWinner, error) {
			matches, err := s.matchRepo.Find(ctx, match.Filter{Competition: comp.Name, Season: season})
			if err != nil {
				return stats.SeasonWinner{}, fmt.Errorf("find matches season=%d: %w", season, err)
			}
			winner, ok := stats.ComputeSeasonWinner(season, matches)
			if !ok {
				// Seasons listed by the store always have matches; an
				// empty set here just drops out of the result below.
				return stats.SeasonWinner{}, nil
			}
			return winner, nil
		})
	}

	winners, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := winners[:0]
	for _, winner := range winners {
		if winner.Season != 0 {
			out = append(out, winner)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season < out[j].Season })

	return out, nil
}

func (s *CompetitionService) resolveCompetition(ctx context.Context, raw string) (competition.Competition, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition is required", ErrInvalidInput)
	}

	comp, exists, err := s.competitionRepo.GetByName(ctx, name)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("resolve competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, name)
	}

	return comp, nil
}
