package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/futdados/soccergraph/internal/domain/competition"
	qb "github.com/futdados/soccergraph/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *CompetitionRepository) GetByName(ctx context.Context, name string) (competition.Competition, bool, error) {
	// Exact matches on the full or short name win before falling back to a
	// substring match, so "Copa do Brasil" never lands on another cup.
	query, args, err := qb.Select("*").From("competitions").
		Where(qb.Expr("(lower(name) = lower(?) OR lower(short_name) = lower(?))", name, name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition query: %w", err)
	}

	var row competitionTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if err == nil {
		return row.toDomain(), true, nil
	}
	if !isNotFound(err) {
		return competition.Competition{}, false, fmt.Errorf("get competition by name: %w", err)
	}

	query, args, err = qb.Select("*").From("competitions").
		Where(qb.Expr("name ILIKE '%' || ? || '%'", name)).
		OrderBy("name").
		Limit(1).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build find competition query: %w", err)
	}

	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("find competition by name: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *CompetitionRepository) Upsert(ctx context.Context, competitions []competition.Competition) error {
	for _, c := range competitions {
		query, args, err := qb.InsertModel("competitions", competitionTableModel{
			Name:      c.Name,
			ShortName: c.ShortName,
			Country:   c.Country,
			Type:      c.Type,
		}, "ON CONFLICT (name) DO UPDATE SET short_name = EXCLUDED.short_name, country = EXCLUDED.country, competition_type = EXCLUDED.competition_type")
		if err != nil {
			return fmt.Errorf("build upsert competition query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert competition %s: %w", c.Name, err)
		}
	}

	return nil
}
