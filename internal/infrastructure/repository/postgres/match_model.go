package postgres

import (
	"time"

	"github.com/futdados/soccergraph/internal/domain/match"
)

type matchTableModel struct {
	ID          string    `db:"id"`
	MatchDate   time.Time `db:"match_date"`
	YearOnly    bool      `db:"year_only"`
	HomeTeam    string    `db:"home_team"`
	AwayTeam    string    `db:"away_team"`
	HomeGoals   int       `db:"home_goals"`
	AwayGoals   int       `db:"away_goals"`
	Competition string    `db:"competition"`
	Season      int       `db:"season"`
	Round       string    `db:"round"`
	Stadium     string    `db:"stadium"`
	Source      string    `db:"source"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:          m.ID,
		Date:        m.MatchDate,
		YearOnly:    m.YearOnly,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		HomeGoals:   m.HomeGoals,
		AwayGoals:   m.AwayGoals,
		Competition: m.Competition,
		Season:      m.Season,
		Round:       m.Round,
		Stadium:     m.Stadium,
		Source:      m.Source,
	}
}
