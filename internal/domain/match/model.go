package match

import (
	"fmt"
	"time"
)

// Result classifies a played match from the home side's perspective.
type Result string

const (
	ResultHomeWin Result = "home_win"
	ResultAwayWin Result = "away_win"
	ResultDraw    Result = "draw"
)

// Match is one played fixture. Team and competition fields hold canonical
// names produced by the load-phase normalizers.
type Match struct {
	ID          string
	Date        time.Time
	// YearOnly marks matches whose source recorded only a year; Date is
	// then January 1st of that year and ordering within the season is
	// approximate.
	YearOnly    bool
	HomeTeam    string
	AwayTeam    string
	HomeGoals   int
	AwayGoals   int
	Competition string
	Season      int
	Round       string
	Stadium     string
	Source      string
}

func (m Match) Validate() error {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return fmt.Errorf("match requires both team names")
	}
	if m.HomeTeam == m.AwayTeam {
		return fmt.Errorf("match home and away teams must differ: %s", m.HomeTeam)
	}
	if m.HomeGoals < 0 || m.AwayGoals < 0 {
		return fmt.Errorf("match goals must not be negative: %d-%d", m.HomeGoals, m.AwayGoals)
	}
	if m.Season <= 0 {
		return fmt.Errorf("match season is required")
	}
	return nil
}

func (m Match) Result() Result {
	switch {
	case m.HomeGoals > m.AwayGoals:
		return ResultHomeWin
	case m.AwayGoals > m.HomeGoals:
		return ResultAwayWin
	default:
		return ResultDraw
	}
}

func (m Match) TotalGoals() int {
	return m.HomeGoals + m.AwayGoals
}

// Margin is the absolute goal difference.
func (m Match) Margin() int {
	diff := m.HomeGoals - m.AwayGoals
	if diff < 0 {
		return -diff
	}
	return diff
}

// Key is the composite identity of a fixture. No source dataset carries a
// stable global match ID, so dedupe runs on (home, away, date, competition).
type Key struct {
	HomeTeam    string
	AwayTeam    string
	Date        string
	Competition string
}

func (m Match) Key() Key {
	return Key{
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		Date:        m.Date.Format("2006-01-02"),
		Competition: m.Competition,
	}
}

// CompositeID renders the stored match identifier, e.g.
// "20230514_Flamengo_Palmeiras_Brasileirao".
func (m Match) CompositeID(shortCompetition string) string {
	return fmt.Sprintf("%s_%s_%s_%s", m.Date.Format("20060102"), m.HomeTeam, m.AwayTeam, shortCompetition)
}
