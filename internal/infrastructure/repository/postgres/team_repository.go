package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/futdados/soccergraph/internal/domain/team"
	qb "github.com/futdados/soccergraph/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Expr(
			"(lower(name) = lower(?) OR EXISTS (SELECT 1 FROM unnest(aliases) AS alias WHERE lower(alias) = lower(?)))",
			name, name,
		)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by name query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by name: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, teams []team.Team) error {
	for _, chunk := range chunked(teams, upsertChunkSize) {
		builder := qb.InsertInto("teams").Columns("name", "state", "aliases", "founded")
		for _, t := range chunk {
			builder.Values(t.Name, t.State, pq.StringArray(t.Aliases), t.Founded)
		}
		// Aliases accumulate across loads; a suffix-derived state never
		// overwrites one a source column supplied earlier.
		query, args, err := builder.Suffix(
			"ON CONFLICT (name) DO UPDATE SET " +
				"state = CASE WHEN teams.state = '' THEN EXCLUDED.state ELSE teams.state END, " +
				"aliases = ARRAY(SELECT DISTINCT alias FROM unnest(teams.aliases || EXCLUDED.aliases) AS alias ORDER BY alias), " +
				"founded = CASE WHEN teams.founded = 0 THEN EXCLUDED.founded ELSE teams.founded END",
		).ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert teams query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert teams: %w", err)
		}
	}

	return nil
}
