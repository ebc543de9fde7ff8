package stats

import (
	"math"
	"testing"
	"time"

	"github.com/futdados/soccergraph/internal/domain/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func played(home, away string, hg, ag int, day int) match.Match {
	return match.Match{
		Date:        time.Date(2023, time.May, day, 0, 0, 0, 0, time.UTC),
		HomeTeam:    home,
		AwayTeam:    away,
		HomeGoals:   hg,
		AwayGoals:   ag,
		Competition: "Brasileirao Serie A",
		Season:      2023,
	}
}

func TestComputeTeamStatistics_SplitsAddUp(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		played("Flamengo", "Palmeiras", 2, 1, 1),
		played("Santos", "Flamengo", 0, 0, 2),
		played("Flamengo", "Gremio", 1, 3, 3),
		played("Corinthians", "Flamengo", 1, 2, 4),
	}

	got := ComputeTeamStatistics(matches, "Flamengo")

	assert.Equal(t, 4, got.Overall.Played)
	assert.Equal(t, got.Overall.Played, got.Home.Played+got.Away.Played)
	assert.Equal(t, 2, got.Overall.Wins)
	assert.Equal(t, 1, got.Overall.Draws)
	assert.Equal(t, 1, got.Overall.Losses)
	assert.Equal(t, 5, got.Overall.GoalsFor)
	assert.Equal(t, 5, got.Overall.GoalsAgainst)
	assert.Equal(t, 0, got.Overall.GoalDifference())
	assert.InDelta(t, 0.5, got.Overall.WinRate(), 1e-9)
}

func TestRecord_WinRateZeroPlayed(t *testing.T) {
	t.Parallel()

	var r Record
	assert.Equal(t, 0.0, r.WinRate())

	got := ComputeTeamStatistics(nil, "Flamengo")
	assert.Equal(t, 0, got.Overall.Played)
	assert.Equal(t, 0.0, got.Overall.WinRate())
}

func TestComputeHeadToHead_CountsSumToPlayed(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		played("Flamengo", "Palmeiras", 2, 1, 1),
		played("Palmeiras", "Flamengo", 3, 0, 2),
		played("Flamengo", "Palmeiras", 1, 1, 3),
		played("Flamengo", "Santos", 4, 0, 4), // not part of the pairing
	}

	got := ComputeHeadToHead(matches, "Flamengo", "Palmeiras")

	assert.Equal(t, 3, got.Played)
	assert.Equal(t, got.Played, got.WinsA+got.WinsB+got.Draws)
	assert.Equal(t, 1, got.WinsA)
	assert.Equal(t, 1, got.WinsB)
	assert.Equal(t, 1, got.Draws)
	assert.Equal(t, 3, got.GoalsA)
	assert.Equal(t, 5, got.GoalsB)

	// Symmetric in team order for the match list, mirrored in the counts.
	flipped := ComputeHeadToHead(matches, "Palmeiras", "Flamengo")
	assert.Equal(t, got.Played, flipped.Played)
	assert.Equal(t, got.WinsA, flipped.WinsB)
	assert.Equal(t, got.WinsB, flipped.WinsA)
}

func TestComputeStandings_PointsBeforeGoalDifference(t *testing.T) {
	t.Parallel()

	// Team A: 10 wins, 2 draws, 3 losses = 32 points.
	// Team B: 9 wins, 3 draws, 3 losses = 30 points, but a huge goal
	// difference. Points still rank first.
	var matches []match.Match
	day := 1
	addRun := func(team string, wins, draws, losses, winMargin int) {
		for i := 0; i < wins; i++ {
			matches = append(matches, played(team, "Filler", winMargin, 0, day))
			day++
		}
		for i := 0; i < draws; i++ {
			matches = append(matches, played(team, "Filler", 1, 1, day))
			day++
		}
		for i := 0; i < losses; i++ {
			matches = append(matches, played(team, "Filler", 0, 1, day))
			day++
		}
	}
	addRun("Alpha", 10, 2, 3, 1)
	addRun("Beta", 9, 3, 3, 9)

	rows := ComputeStandings(matches)
	require.NotEmpty(t, rows)

	require.Equal(t, "Alpha", rows[0].Team)
	assert.Equal(t, 32, rows[0].Points())
	assert.Equal(t, 1, rows[0].Position)
	require.Equal(t, "Beta", rows[1].Team)
	assert.Equal(t, 30, rows[1].Points())
	assert.Equal(t, 2, rows[1].Position)
}

func TestComputeStandings_TieBreakChain(t *testing.T) {
	t.Parallel()

	// All four teams end on 3 points with goal difference zero; order falls
	// through goals for, then canonical name.
	matches := []match.Match{
		played("Ceara", "Fortaleza", 3, 0, 1),
		played("Fortaleza", "Ceara", 3, 0, 2),
		played("Bahia", "Vitoria", 2, 0, 3),
		played("Vitoria", "Bahia", 4, 2, 4),
	}

	rows := ComputeStandings(matches)
	require.Len(t, rows, 4)

	order := make([]string, 0, 4)
	for _, row := range rows {
		order = append(order, row.Team)
	}
	// Bahia and Vitoria carry 4 goals for against Ceara's and Fortaleza's 3;
	// within each pair every numeric key ties and the name decides.
	assert.Equal(t, []string{"Bahia", "Vitoria", "Ceara", "Fortaleza"}, order)

	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		dominated := prev.Points() < cur.Points() ||
			(prev.Points() == cur.Points() && prev.GoalDifference() < cur.GoalDifference()) ||
			(prev.Points() == cur.Points() && prev.GoalDifference() == cur.GoalDifference() && prev.GoalsFor < cur.GoalsFor)
		assert.False(t, dominated, "row %d dominated by row %d", i-1, i)
	}
}

func TestComputeLeagueAggregates_RatesSumToOne(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		played("Flamengo", "Palmeiras", 2, 1, 1),
		played("Santos", "Gremio", 0, 0, 2),
		played("Bahia", "Ceara", 1, 2, 3),
		played("Cruzeiro", "Fluminense", 3, 1, 4),
	}

	got := ComputeLeagueAggregates(matches)

	assert.Equal(t, 4, got.TotalMatches)
	assert.Equal(t, 10, got.TotalGoals)
	assert.InDelta(t, 2.5, got.AvgGoalsPerMatch, 1e-9)
	sum := got.HomeWinRate + got.AwayWinRate + got.DrawRate
	assert.True(t, math.Abs(sum-1.0) < 1e-9, "rates sum to %f", sum)
}

func TestComputeLeagueAggregates_Empty(t *testing.T) {
	t.Parallel()

	got := ComputeLeagueAggregates(nil)
	assert.Equal(t, 0, got.TotalMatches)
	assert.Equal(t, 0.0, got.AvgGoalsPerMatch)
	assert.Equal(t, 0.0, got.HomeWinRate)
}

func TestBiggestWins_MarginThenRecency(t *testing.T) {
	t.Parallel()

	fiveNil := played("Flamengo", "Bahia", 5, 0, 10)
	fourOne := played("Palmeiras", "Santos", 4, 1, 20)
	threeNilOld := played("Gremio", "Ceara", 3, 0, 1)
	threeNilNew := played("Cruzeiro", "Vitoria", 0, 3, 15)
	draw := played("Fortaleza", "Sport", 2, 2, 12)

	got := BiggestWins([]match.Match{draw, threeNilOld, fourOne, fiveNil, threeNilNew}, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "Flamengo", got[0].HomeTeam) // 5-0 outranks 4-1
	assert.Equal(t, "Palmeiras", got[1].HomeTeam)
	assert.Equal(t, "Cruzeiro", got[2].HomeTeam) // same margin, newer date first
}

func TestComputeSeasonWinner_EmptySeasonOmitted(t *testing.T) {
	t.Parallel()

	if _, ok := ComputeSeasonWinner(1999, nil); ok {
		t.Fatal("expected no winner for an empty season")
	}

	winner, ok := ComputeSeasonWinner(2023, []match.Match{played("Flamengo", "Bahia", 2, 0, 1)})
	require.True(t, ok)
	assert.Equal(t, 2023, winner.Season)
	assert.Equal(t, "Flamengo", winner.Team)
	assert.Equal(t, 3, winner.Points)
}
