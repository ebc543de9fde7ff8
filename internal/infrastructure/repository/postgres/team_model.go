package postgres

import (
	"github.com/lib/pq"

	"github.com/futdados/soccergraph/internal/domain/team"
)

type teamTableModel struct {
	// id is TEXT in the schema and defaults to '' when the loader never
	// assigned one.
	ID      string         `db:"id"`
	Name    string         `db:"name"`
	State   string         `db:"state"`
	Aliases pq.StringArray `db:"aliases"`
	Founded int            `db:"founded"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:      m.ID,
		Name:    m.Name,
		State:   m.State,
		Aliases: append([]string(nil), m.Aliases...),
		Founded: m.Founded,
	}
}
