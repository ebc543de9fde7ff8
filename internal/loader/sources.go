// Package loader ingests the source datasets and builds the canonical
// entity store: teams, matches, players, competitions, seasons. Each
// dataset ships its own column layout, so every source carries an adapter
// that maps a CSV row onto the shared raw record types.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/futdados/soccergraph/internal/domain/competition"
)

// Row is one CSV record indexed by header name.
type Row map[string]string

type Kind int

const (
	KindMatches Kind = iota
	KindPlayers
)

// RawMatch is an unvalidated match row straight out of a source file.
// Everything stays a string until the builder parses and validates it.
type RawMatch struct {
	Line             int
	Date             string
	HomeTeam         string
	AwayTeam         string
	HomeGoals        string
	AwayGoals        string
	HomeState        string
	AwayState        string
	Competition      string
	CompetitionShort string
	Season           string
	Round            string
	Stadium          string
	Source           string
}

// RawPlayer is an unvalidated player row from the ratings dataset.
type RawPlayer struct {
	Line        int
	ID          string
	Name        string
	Age         string
	Nationality string
	Overall     string
	Potential   string
	Club        string
	Position    string
	Source      string
}

// Source binds a dataset file to the adapter that understands its columns.
type Source struct {
	Name      string
	File      string
	Kind      Kind
	MapMatch  func(Row) RawMatch
	MapPlayer func(Row) RawPlayer
}

// DefaultSources lists the known dataset files in load order.
func DefaultSources() []Source {
	return []Source{
		{
			Name: "brasileirao",
			File: "Brasileirao_Matches.csv",
			Kind: KindMatches,
			MapMatch: func(row Row) RawMatch {
				return RawMatch{
					Date:             row["datetime"],
					HomeTeam:         row["home_team"],
					AwayTeam:         row["away_team"],
					HomeGoals:        row["home_goal"],
					AwayGoals:        row["away_goal"],
					HomeState:        row["home_team_state"],
					AwayState:        row["away_team_state"],
					Competition:      competition.Brasileirao().Name,
					CompetitionShort: competition.Brasileirao().ShortName,
					Season:           row["season"],
					Round:            row["round"],
					Source:           "brasileirao",
				}
			},
		},
		{
			Name: "copa-do-brasil",
			File: "Brazilian_Cup_Matches.csv",
			Kind: KindMatches,
			MapMatch: func(row Row) RawMatch {
				return RawMatch{
					Date:             row["datetime"],
					HomeTeam:         row["home_team"],
					AwayTeam:         row["away_team"],
					HomeGoals:        row["home_goal"],
					AwayGoals:        row["away_goal"],
					Competition:      competition.CopaDoBrasil().Name,
					CompetitionShort: competition.CopaDoBrasil().ShortName,
					Season:           row["season"],
					Round:            row["round"],
					Source:           "copa-do-brasil",
				}
			},
		},
		{
			Name: "libertadores",
			File: "Libertadores_Matches.csv",
			Kind: KindMatches,
			MapMatch: func(row Row) RawMatch {
				return RawMatch{
					Date:             row["datetime"],
					HomeTeam:         row["home_team"],
					AwayTeam:         row["away_team"],
					HomeGoals:        row["home_goal"],
					AwayGoals:        row["away_goal"],
					Competition:      competition.Libertadores().Name,
					CompetitionShort: competition.Libertadores().ShortName,
					Season:           row["season"],
					Round:            row["stage"],
					Source:           "libertadores",
				}
			},
		},
		{
			Name: "brasileirao-historico",
			File: "novo_campeonato_brasileiro.csv",
			Kind: KindMatches,
			MapMatch: func(row Row) RawMatch {
				return RawMatch{
					Date:             row["Data"],
					HomeTeam:         row["Equipe_mandante"],
					AwayTeam:         row["Equipe_visitante"],
					HomeGoals:        row["Gols_mandante"],
					AwayGoals:        row["Gols_visitante"],
					HomeState:        row["Mandante_UF"],
					AwayState:        row["Visitante_UF"],
					Competition:      competition.Brasileirao().Name,
					CompetitionShort: competition.Brasileirao().ShortName,
					Season:           row["Ano"],
					Round:            row["Rodada"],
					Stadium:          row["Arena"],
					Source:           "brasileirao-historico",
				}
			},
		},
		{
			Name: "br-extended",
			File: "BR-Football-Dataset.csv",
			Kind: KindMatches,
			MapMatch: func(row Row) RawMatch {
				name, short := mapTournament(row["tournament"])
				return RawMatch{
					Date:             row["date"],
					HomeTeam:         row["home"],
					AwayTeam:         row["away"],
					HomeGoals:        row["home_goal"],
					AwayGoals:        row["away_goal"],
					Competition:      name,
					CompetitionShort: short,
					Source:           "br-extended",
				}
			},
		},
		{
			Name: "fifa-ratings",
			File: "fifa_data.csv",
			Kind: KindPlayers,
			MapPlayer: func(row Row) RawPlayer {
				return RawPlayer{
					ID:          row["ID"],
					Name:        row["Name"],
					Age:         row["Age"],
					Nationality: row["Nationality"],
					Overall:     row["Overall"],
					Potential:   row["Potential"],
					Club:        row["Club"],
					Position:    row["Position"],
					Source:      "fifa-ratings",
				}
			},
		},
	}
}

// mapTournament resolves the free-text tournament column of the extended
// dataset to a predefined competition. Anything unrecognized falls back to
// the league.
func mapTournament(tournament string) (name, short string) {
	lower := strings.ToLower(tournament)
	switch {
	case strings.Contains(lower, "copa") && strings.Contains(lower, "brasil"):
		c := competition.CopaDoBrasil()
		return c.Name, c.ShortName
	case strings.Contains(lower, "libertadores"):
		c := competition.Libertadores()
		return c.Name, c.ShortName
	default:
		c := competition.Brasileirao()
		return c.Name, c.ShortName
	}
}

// Read parses the source file under dir. Missing files are not an error:
// the datasets are distributed separately and a partial set still loads.
func (s Source) Read(dir string) ([]RawMatch, []RawPlayer, error) {
	f, err := os.Open(filepath.Join(dir, s.File))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("open %s: %w", s.File, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read %s header: %w", s.File, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")

	var (
		matches []RawMatch
		players []RawPlayer
		line    = 1
	)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s line %d: %w", s.File, line+1, err)
		}
		line++

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}

		switch s.Kind {
		case KindMatches:
			raw := s.MapMatch(row)
			raw.Line = line
			matches = append(matches, raw)
		case KindPlayers:
			raw := s.MapPlayer(row)
			raw.Line = line
			players = append(players, raw)
		}
	}

	return matches, players, nil
}
