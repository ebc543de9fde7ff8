package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/futdados/soccergraph/internal/domain/match"
	qb "github.com/futdados/soccergraph/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Find(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	builder := qb.Select("*").From("matches").
		OrderBy("match_date DESC", "id ASC")

	if filter.Season > 0 {
		builder.Where(qb.Eq("season", filter.Season))
	}
	if filter.Competition != "" {
		builder.Where(qb.Expr("competition ILIKE '%' || ? || '%'", filter.Competition))
	}
	if filter.Team != "" {
		switch {
		case filter.OtherTeam != "":
			builder.Where(qb.Expr(
				"((home_team = ? AND away_team = ?) OR (home_team = ? AND away_team = ?))",
				filter.Team, filter.OtherTeam, filter.OtherTeam, filter.Team,
			))
		case filter.HomeOnly:
			builder.Where(qb.Eq("home_team", filter.Team))
		case filter.AwayOnly:
			builder.Where(qb.Eq("away_team", filter.Team))
		default:
			builder.Where(qb.Expr("(home_team = ? OR away_team = ?)", filter.Team, filter.Team))
		}
	}
	if filter.Limit > 0 {
		builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchRepository) Seasons(ctx context.Context, competition string) ([]int, error) {
	builder := qb.Select("DISTINCT season").From("matches").
		OrderBy("season")
	if competition != "" {
		builder.Where(qb.Expr("competition ILIKE '%' || ? || '%'", competition))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var seasons []int
	if err := r.db.SelectContext(ctx, &seasons, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	return seasons, nil
}

func (r *MatchRepository) Upsert(ctx context.Context, matches []match.Match) error {
	for _, chunk := range chunked(matches, upsertChunkSize) {
		builder := qb.InsertInto("matches").Columns(
			"id", "match_date", "year_only", "home_team", "away_team",
			"home_goals", "away_goals", "competition", "season", "round",
			"stadium", "source",
		)
		for _, m := range chunk {
			builder.Values(
				m.ID, m.Date, m.YearOnly, m.HomeTeam, m.AwayTeam,
				m.HomeGoals, m.AwayGoals, m.Competition, m.Season, m.Round,
				m.Stadium, m.Source,
			)
		}
		query, args, err := builder.Suffix(
			"ON CONFLICT (home_team, away_team, match_date, competition) DO UPDATE SET " +
				"id = EXCLUDED.id, year_only = EXCLUDED.year_only, " +
				"home_goals = EXCLUDED.home_goals, away_goals = EXCLUDED.away_goals, " +
				"season = EXCLUDED.season, round = EXCLUDED.round, " +
				"stadium = EXCLUDED.stadium, source = EXCLUDED.source",
		).ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert matches query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert matches: %w", err)
		}
	}

	return nil
}
