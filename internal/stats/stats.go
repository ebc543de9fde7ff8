// Package stats computes derived statistics over match sets. Every function
// is a pure, deterministic read of its inputs; callers fetch the match set
// from the store first and may invoke these concurrently.
package stats

import (
	"sort"

	"github.com/futdados/soccergraph/internal/domain/match"
)

// Record is one win/draw/loss tally with goal totals.
type Record struct {
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
}

func (r Record) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}

// Points applies standard soccer scoring: three per win, one per draw.
func (r Record) Points() int {
	return r.Wins*3 + r.Draws
}

// WinRate is wins over played matches, 0 when nothing was played.
func (r Record) WinRate() float64 {
	if r.Played == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Played)
}

func (r *Record) add(goalsFor, goalsAgainst int) {
	r.Played++
	r.GoalsFor += goalsFor
	r.GoalsAgainst += goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		r.Wins++
	case goalsAgainst > goalsFor:
		r.Losses++
	default:
		r.Draws++
	}
}

// TeamStatistics is a team's record split by venue role. Overall always
// equals Home plus Away because the splits filter the same match set.
type TeamStatistics struct {
	Team    string
	Overall Record
	Home    Record
	Away    Record
}

// ComputeTeamStatistics tallies every match the canonical team took part in.
func ComputeTeamStatistics(matches []match.Match, team string) TeamStatistics {
	out := TeamStatistics{Team: team}
	for _, m := range matches {
		switch team {
		case m.HomeTeam:
			out.Overall.add(m.HomeGoals, m.AwayGoals)
			out.Home.add(m.HomeGoals, m.AwayGoals)
		case m.AwayTeam:
			out.Overall.add(m.AwayGoals, m.HomeGoals)
			out.Away.add(m.AwayGoals, m.HomeGoals)
		}
	}
	return out
}

// HeadToHead is the aggregate record between two teams. The match list is
// symmetric in team order; the counts are attributed per team regardless of
// venue role.
type HeadToHead struct {
	TeamA  string
	TeamB  string
	WinsA  int
	WinsB  int
	Draws  int
	GoalsA int
	GoalsB int
	Played int
}

// ComputeHeadToHead tallies matches where the two teams met in either
// orientation. Matches involving other teams are ignored.
func ComputeHeadToHead(matches []match.Match, teamA, teamB string) HeadToHead {
	out := HeadToHead{TeamA: teamA, TeamB: teamB}
	for _, m := range matches {
		var goalsA, goalsB int
		switch {
		case m.HomeTeam == teamA && m.AwayTeam == teamB:
			goalsA, goalsB = m.HomeGoals, m.AwayGoals
		case m.HomeTeam == teamB && m.AwayTeam == teamA:
			goalsA, goalsB = m.AwayGoals, m.HomeGoals
		default:
			continue
		}

		out.Played++
		out.GoalsA += goalsA
		out.GoalsB += goalsB
		switch {
		case goalsA > goalsB:
			out.WinsA++
		case goalsB > goalsA:
			out.WinsB++
		default:
			out.Draws++
		}
	}
	return out
}

// StandingRow is one ranked entry of a competition table.
type StandingRow struct {
	Position int
	Team     string
	Record
}

// ComputeStandings builds the ranked table for the given match set. Every
// team with at least one match gets a row. The order is a strict total
// order: points desc, goal difference desc, goals for desc, then canonical
// name asc so ties are never left arbitrary.
func ComputeStandings(matches []match.Match) []StandingRow {
	records := make(map[string]*Record)
	tally := func(name string, goalsFor, goalsAgainst int) {
		rec, ok := records[name]
		if !ok {
			rec = &Record{}
			records[name] = rec
		}
		rec.add(goalsFor, goalsAgainst)
	}

	for _, m := range matches {
		tally(m.HomeTeam, m.HomeGoals, m.AwayGoals)
		tally(m.AwayTeam, m.AwayGoals, m.HomeGoals)
	}

	rows := make([]StandingRow, 0, len(records))
	for name, rec := range records {
		rows = append(rows, StandingRow{Team: name, Record: *rec})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points() != b.Points() {
			return a.Points() > b.Points()
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})

	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// LeagueAggregates summarizes a competition-wide match set. Rates are
// fractions of matches with a definite result and sum to 1.0 when any
// matches exist.
type LeagueAggregates struct {
	TotalMatches     int
	TotalGoals       int
	AvgGoalsPerMatch float64
	HomeWins         int
	AwayWins         int
	Draws            int
	HomeWinRate      float64
	AwayWinRate      float64
	DrawRate         float64
}

// ComputeLeagueAggregates tallies league-wide totals. An empty match set
// yields all zeros, never a division fault.
func ComputeLeagueAggregates(matches []match.Match) LeagueAggregates {
	out := LeagueAggregates{TotalMatches: len(matches)}
	for _, m := range matches {
		out.TotalGoals += m.TotalGoals()
		switch m.Result() {
		case match.ResultHomeWin:
			out.HomeWins++
		case match.ResultAwayWin:
			out.AwayWins++
		default:
			out.Draws++
		}
	}

	if out.TotalMatches == 0 {
		return out
	}

	total := float64(out.TotalMatches)
	out.AvgGoalsPerMatch = float64(out.TotalGoals) / total
	out.HomeWinRate = float64(out.HomeWins) / total
	out.AwayWinRate = float64(out.AwayWins) / total
	out.DrawRate = float64(out.Draws) / total
	return out
}

// BiggestWins ranks matches by absolute goal margin descending, breaking
// ties by most recent date. Draws carry no margin and are excluded. At most
// limit entries are returned; limit <= 0 means no cap.
func BiggestWins(matches []match.Match, limit int) []match.Match {
	ranked := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.Margin() > 0 {
			ranked = append(ranked, m)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Margin() != ranked[j].Margin() {
			return ranked[i].Margin() > ranked[j].Margin()
		}
		return ranked[i].Date.After(ranked[j].Date)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// SeasonWinner is the team ranked first by ComputeStandings for one season.
type SeasonWinner struct {
	Season   int
	Team     string
	Points   int
	Wins     int
	GoalsFor int
}

// ComputeSeasonWinner returns the top of the table for one season's match
// set. The boolean is false when the set is empty, so callers can omit the
// season instead of reporting a null winner.
func ComputeSeasonWinner(season int, matches []match.Match) (SeasonWinner, bool) {
	rows := ComputeStandings(matches)
	if len(rows) == 0 {
		return SeasonWinner{}, false
	}
	top := rows[0]
	return SeasonWinner{
		Season:   season,
		Team:     top.Team,
		Points:   top.Points(),
		Wins:     top.Wins,
		GoalsFor: top.GoalsFor,
	}, true
}
