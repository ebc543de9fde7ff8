package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/futdados/soccergraph/internal/domain/player"
	qb "github.com/futdados/soccergraph/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Find(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	builder := qb.Select("*").From("players").
		OrderBy("overall DESC", "id ASC")

	if filter.Name != "" {
		builder.Where(qb.Expr("name ILIKE '%' || ? || '%'", filter.Name))
	}
	if filter.Nationality != "" {
		builder.Where(qb.Expr("nationality ILIKE '%' || ? || '%'", filter.Nationality))
	}
	if filter.Club != "" {
		builder.Where(qb.Expr("club ILIKE '%' || ? || '%'", filter.Club))
	}
	if filter.Position != "" {
		builder.Where(qb.Expr("position ILIKE '%' || ? || '%'", filter.Position))
	}
	if filter.MinOverall > 0 {
		builder.Where(qb.Expr("overall >= ?", filter.MinOverall))
	}
	if filter.MaxOverall > 0 {
		builder.Where(qb.Expr("overall <= ?", filter.MaxOverall))
	}
	if filter.Limit > 0 {
		builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, players []player.Player) error {
	for _, chunk := range chunked(players, upsertChunkSize) {
		builder := qb.InsertInto("players").Columns(
			"id", "name", "age", "nationality", "overall", "potential", "club", "position",
		)
		for _, p := range chunk {
			builder.Values(p.ID, p.Name, p.Age, p.Nationality, p.Overall, p.Potential, p.Club, p.Position)
		}
		query, args, err := builder.Suffix(
			"ON CONFLICT (id) DO UPDATE SET " +
				"name = EXCLUDED.name, age = EXCLUDED.age, nationality = EXCLUDED.nationality, " +
				"overall = EXCLUDED.overall, potential = EXCLUDED.potential, " +
				"club = EXCLUDED.club, position = EXCLUDED.position",
		).ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert players query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert players: %w", err)
		}
	}

	return nil
}
