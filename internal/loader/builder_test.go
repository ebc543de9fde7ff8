package loader

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futdados/soccergraph/internal/domain/match"
	"github.com/futdados/soccergraph/internal/infrastructure/repository/memory"
	"github.com/futdados/soccergraph/internal/platform/id"
)

type fixture struct {
	builder *Builder
	teams   *memory.TeamRepository
	matches *memory.MatchRepository
	players *memory.PlayerRepository
	comps   *memory.CompetitionRepository
}

func newFixture(t *testing.T, priority []string) *fixture {
	t.Helper()

	f := &fixture{
		teams:   memory.NewTeamRepository(nil),
		matches: memory.NewMatchRepository(nil),
		players: memory.NewPlayerRepository(nil),
		comps:   memory.NewCompetitionRepository(nil),
	}

	b, err := NewBuilder(Config{
		Teams:          f.teams,
		Matches:        f.matches,
		Players:        f.players,
		Competitions:   f.comps,
		SourcePriority: priority,
		IDs:            id.NewRandomGenerator(),
		Logger:         slog.Default(),
	})
	require.NoError(t, err)
	f.builder = b
	return f
}

func rawBrasileirao(date, home, away, hg, ag string) RawMatch {
	return RawMatch{
		Date:             date,
		HomeTeam:         home,
		AwayTeam:         away,
		HomeGoals:        hg,
		AwayGoals:        ag,
		Competition:      "Brasileirao Serie A",
		CompetitionShort: "Brasileirao",
		Source:           "brasileirao",
	}
}

func TestBuilder_LoadAndReport(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.builder.Init(ctx))

	rows := []RawMatch{
		rawBrasileirao("14/05/2023", "Flamengo", "Sociedade Esportiva Palmeiras", "2", "1"),
		rawBrasileirao("2023-05-21", "Palmeiras-SP", "Flamengo", "0", "0"),
		// Same fixture, same score, different encoding of the date.
		rawBrasileirao("21/05/2023", "Palmeiras", "Flamengo", "0", "0"),
		rawBrasileirao("", "Gremio", "Santos", "1", "0"),
		rawBrasileirao("28/05/2023", "", "Santos", "1", "0"),
	}
	for _, raw := range rows {
		require.NoError(t, f.builder.AddMatch(ctx, raw))
	}

	report, err := f.builder.Finish(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Competitions)
	assert.Equal(t, 2, report.Matches)
	assert.Equal(t, 1, report.Deduped)
	assert.Len(t, report.Skipped, 2)
	assert.False(t, report.HasConflicts())
	assert.NotEmpty(t, report.RunID)

	// Both spellings of Palmeiras merged into one canonical team.
	assert.Equal(t, 2, report.Teams)
	got, ok, err := f.teams.GetByName(ctx, "sociedade esportiva palmeiras")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Palmeiras", got.Name)

	stored, err := f.matches.Find(ctx, match.Filter{Team: "Palmeiras"})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 2023, stored[0].Season)
}

func TestBuilder_ConflictKeepsFirst(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	first := rawBrasileirao("14/05/2023", "Flamengo", "Santos", "2", "1")
	second := rawBrasileirao("14/05/2023", "Flamengo", "Santos", "3", "1")
	second.Source = "br-extended"

	require.NoError(t, f.builder.AddMatch(ctx, first))
	require.NoError(t, f.builder.AddMatch(ctx, second))

	report, err := f.builder.Finish(ctx)
	require.NoError(t, err)

	require.True(t, report.HasConflicts())
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "brasileirao", report.Conflicts[0].KeptSource)
	assert.Equal(t, "2-1", report.Conflicts[0].KeptScore)
	assert.Equal(t, "br-extended", report.Conflicts[0].DroppedSource)

	stored, err := f.matches.Find(ctx, match.Filter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 2, stored[0].HomeGoals)
}

func TestBuilder_PriorityWinsOverLaterSource(t *testing.T) {
	t.Parallel()

	f := newFixture(t, []string{"brasileirao", "br-extended"})
	ctx := context.Background()

	low := rawBrasileirao("14/05/2023", "Flamengo", "Santos", "1", "1")
	low.Source = "br-extended"
	high := rawBrasileirao("14/05/2023", "Flamengo", "Santos", "2", "0")

	require.NoError(t, f.builder.AddMatch(ctx, low))
	require.NoError(t, f.builder.AddMatch(ctx, high))

	report, err := f.builder.Finish(ctx)
	require.NoError(t, err)

	assert.False(t, report.HasConflicts())
	assert.Equal(t, 1, report.Superseded)
	assert.Equal(t, 1, report.Matches)

	stored, err := f.matches.Find(ctx, match.Filter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "brasileirao", stored[0].Source)
	assert.Equal(t, 2, stored[0].HomeGoals)
}

func TestBuilder_PriorityShieldsEarlierSource(t *testing.T) {
	t.Parallel()

	f := newFixture(t, []string{"brasileirao", "br-extended"})
	ctx := context.Background()

	high := rawBrasileirao("14/05/2023", "Flamengo", "Santos", "2", "0")
	low := rawBrasileirao("14/05/2023", "Flamengo", "Santos", "1", "1")
	low.Source = "br-extended"

	require.NoError(t, f.builder.AddMatch(ctx, high))
	require.NoError(t, f.builder.AddMatch(ctx, low))

	report, err := f.builder.Finish(ctx)
	require.NoError(t, err)

	assert.False(t, report.HasConflicts())
	assert.Equal(t, 1, report.Superseded)

	stored, err := f.matches.Find(ctx, match.Filter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 2, stored[0].HomeGoals)
}

func TestBuilder_RebuildIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rows := []RawMatch{
		rawBrasileirao("14/05/2023", "Flamengo", "Palmeiras", "2", "1"),
		rawBrasileirao("21/05/2023", "Palmeiras", "Flamengo", "0", "0"),
	}

	f := newFixture(t, nil)
	require.NoError(t, f.builder.Init(ctx))
	for _, raw := range rows {
		require.NoError(t, f.builder.AddMatch(ctx, raw))
	}
	_, err := f.builder.Finish(ctx)
	require.NoError(t, err)

	// A second run over the same sources must not duplicate anything.
	second, err := NewBuilder(Config{
		Teams:        f.teams,
		Matches:      f.matches,
		Players:      f.players,
		Competitions: f.comps,
		Logger:       slog.Default(),
	})
	require.NoError(t, err)
	require.NoError(t, second.Init(ctx))
	for _, raw := range rows {
		require.NoError(t, second.AddMatch(ctx, raw))
	}
	_, err = second.Finish(ctx)
	require.NoError(t, err)

	stored, err := f.matches.Find(ctx, match.Filter{})
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	teams, err := f.teams.List(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 2)
}

func TestBuilder_AddPlayer(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	rows := []RawPlayer{
		{ID: "158023", Name: "Gabriel Barbosa", Age: "26", Nationality: "Brazil", Overall: "84", Potential: "86", Club: "Flamengo", Position: "ST", Source: "fifa-ratings"},
		{ID: "", Name: "No ID", Source: "fifa-ratings", Line: 3},
		{ID: "200001", Name: "Raphael Veiga", Age: "27", Overall: "83", Potential: "85", Club: "Palmeiras  ", Position: "CAM", Source: "fifa-ratings"},
	}
	for _, raw := range rows {
		require.NoError(t, f.builder.AddPlayer(ctx, raw))
	}

	report, err := f.builder.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Players)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 3, report.Skipped[0].Line)
}
