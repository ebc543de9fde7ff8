package postgres

import "github.com/futdados/soccergraph/internal/domain/competition"

type competitionTableModel struct {
	Name      string `db:"name"`
	ShortName string `db:"short_name"`
	Country   string `db:"country"`
	Type      string `db:"competition_type"`
}

func (m competitionTableModel) toDomain() competition.Competition {
	return competition.Competition{
		Name:      m.Name,
		ShortName: m.ShortName,
		Country:   m.Country,
		Type:      m.Type,
	}
}
