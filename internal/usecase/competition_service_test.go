package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futdados/soccergraph/internal/infrastructure/repository/memory"
	"github.com/futdados/soccergraph/internal/platform/cache"
)

func newCompetitionService(withCache bool) *CompetitionService {
	var store *cache.Store
	if withCache {
		store = cache.NewStore(time.Minute)
	}
	return NewCompetitionService(
		memory.NewCompetitionRepository(memory.SeedCompetitions()),
		memory.NewMatchRepository(memory.SeedMatches()),
		store,
	)
}

func TestCompetitionService_Standings(t *testing.T) {
	t.Parallel()

	rows, err := newCompetitionService(true).Standings(context.Background(), "Brasileirao", 2023)
	if err != nil {
		t.Fatalf("Standings error: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected 6 teams in the table, got %d", len(rows))
	}

	if rows[0].Team != "Flamengo" || rows[0].Points() != 7 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Points() < rows[i].Points() {
			t.Fatalf("standings not ordered by points: row %d below row %d", i-1, i)
		}
		if rows[i].Position != i+1 {
			t.Fatalf("position not sequential at row %d: %d", i, rows[i].Position)
		}
	}
}

func TestCompetitionService_Standings_UnknownCompetition(t *testing.T) {
	t.Parallel()

	_, err := newCompetitionService(false).Standings(context.Background(), "Bundesliga", 2023)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompetitionService_Standings_SeasonRequired(t *testing.T) {
	t.Parallel()

	_, err := newCompetitionService(false).Standings(context.Background(), "Brasileirao", 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCompetitionService_LeagueStats(t *testing.T) {
	t.Parallel()

	got, err := newCompetitionService(false).LeagueStats(context.Background(), "Brasileirao", 2023)
	if err != nil {
		t.Fatalf("LeagueStats error: %v", err)
	}

	if got.TotalMatches != 8 {
		t.Fatalf("expected 8 matches, got %d", got.TotalMatches)
	}
	sum := got.HomeWinRate + got.AwayWinRate + got.DrawRate
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("rates sum to %f, want 1.0", sum)
	}
}

func TestCompetitionService_LeagueStats_ZeroMatchesSeason(t *testing.T) {
	t.Parallel()

	got, err := newCompetitionService(false).LeagueStats(context.Background(), "Brasileirao", 1990)
	if err != nil {
		t.Fatalf("known competition with empty season must not fail: %v", err)
	}
	if got.TotalMatches != 0 || got.AvgGoalsPerMatch != 0 {
		t.Fatalf("expected zero aggregates, got %+v", got)
	}
}

func TestCompetitionService_BiggestWins(t *testing.T) {
	t.Parallel()

	got, err := newCompetitionService(false).BiggestWins(context.Background(), "Brasileirao", 2023, 3)
	if err != nil {
		t.Fatalf("BiggestWins error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	// The 5-0 outranks every other margin in the seed set.
	if got[0].HomeTeam != "Flamengo" || got[0].Margin() != 5 {
		t.Fatalf("unexpected biggest win: %+v", got[0])
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Margin() < got[i].Margin() {
			t.Fatal("biggest wins not ordered by margin descending")
		}
	}
}

func TestCompetitionService_Winners(t *testing.T) {
	t.Parallel()

	got, err := newCompetitionService(false).Winners(context.Background(), "Brasileirao", 2020, 2025)
	if err != nil {
		t.Fatalf("Winners error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected a single contested season, got %d", len(got))
	}
	if got[0].Season != 2023 || got[0].Team != "Flamengo" {
		t.Fatalf("unexpected winner: %+v", got[0])
	}
}

func TestCompetitionService_Winners_EmptyRange(t *testing.T) {
	t.Parallel()

	got, err := newCompetitionService(false).Winners(context.Background(), "Brasileirao", 1990, 1999)
	if err != nil {
		t.Fatalf("Winners error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("seasons without matches must be omitted, got %v", got)
	}
}
