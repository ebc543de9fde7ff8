package postgres

import "github.com/futdados/soccergraph/internal/domain/player"

type playerTableModel struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Age         int    `db:"age"`
	Nationality string `db:"nationality"`
	Overall     int    `db:"overall"`
	Potential   int    `db:"potential"`
	Club        string `db:"club"`
	Position    string `db:"position"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.ID,
		Name:        m.Name,
		Age:         m.Age,
		Nationality: m.Nationality,
		Overall:     m.Overall,
		Potential:   m.Potential,
		Club:        m.Club,
		Position:    m.Position,
	}
}
