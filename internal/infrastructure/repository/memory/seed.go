package memory

import (
	"time"

	"github.com/futdados/soccergraph/internal/domain/competition"
	"github.com/futdados/soccergraph/internal/domain/match"
	"github.com/futdados/soccergraph/internal/domain/player"
	"github.com/futdados/soccergraph/internal/domain/team"
)

// Seed data lets the API run without a store for local development and
// keeps service tests on realistic fixtures. The real datasets come in
// through cmd/loader.

func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		competition.Brasileirao(),
		competition.CopaDoBrasil(),
		competition.Libertadores(),
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{Name: "Flamengo", State: "RJ", Aliases: []string{"Flamengo", "Flamengo-RJ"}},
		{Name: "Palmeiras", State: "SP", Aliases: []string{"Palmeiras", "Palmeiras-SP", "Sociedade Esportiva Palmeiras"}},
		{Name: "Corinthians", State: "SP", Aliases: []string{"Corinthians", "Sport Club Corinthians Paulista"}},
		{Name: "Gremio", State: "RS", Aliases: []string{"Gremio", "Grêmio"}},
		{Name: "Santos", State: "SP", Aliases: []string{"Santos", "Santos FC"}},
		{Name: "Atletico-MG", State: "MG", Aliases: []string{"Atletico-MG", "Atletico Mineiro"}},
	}
}

func seedMatch(day int, home, away string, hg, ag int) match.Match {
	date := time.Date(2023, time.May, day, 0, 0, 0, 0, time.UTC)
	m := match.Match{
		Date:        date,
		HomeTeam:    home,
		AwayTeam:    away,
		HomeGoals:   hg,
		AwayGoals:   ag,
		Competition: "Brasileirao Serie A",
		Season:      2023,
		Source:      "seed",
	}
	m.ID = m.CompositeID("Brasileirao")
	return m
}

func SeedMatches() []match.Match {
	return []match.Match{
		seedMatch(6, "Flamengo", "Palmeiras", 2, 1),
		seedMatch(7, "Corinthians", "Gremio", 0, 0),
		seedMatch(13, "Santos", "Atletico-MG", 1, 3),
		seedMatch(14, "Palmeiras", "Corinthians", 2, 0),
		seedMatch(20, "Gremio", "Flamengo", 1, 1),
		seedMatch(21, "Atletico-MG", "Palmeiras", 0, 2),
		seedMatch(27, "Flamengo", "Santos", 5, 0),
		seedMatch(28, "Corinthians", "Atletico-MG", 1, 2),
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1001, Name: "Gabriel Barbosa", Age: 26, Nationality: "Brazil", Overall: 84, Potential: 86, Club: "Flamengo", Position: "ST"},
		{ID: 1002, Name: "Giorgian De Arrascaeta", Age: 29, Nationality: "Uruguay", Overall: 85, Potential: 85, Club: "Flamengo", Position: "CAM"},
		{ID: 1003, Name: "Raphael Veiga", Age: 27, Nationality: "Brazil", Overall: 83, Potential: 85, Club: "Palmeiras", Position: "CAM"},
		{ID: 1004, Name: "Endrick", Age: 17, Nationality: "Brazil", Overall: 77, Potential: 93, Club: "Palmeiras", Position: "ST"},
		{ID: 1005, Name: "Hulk", Age: 37, Nationality: "Brazil", Overall: 82, Potential: 82, Club: "Atletico-MG", Position: "ST"},
		{ID: 1006, Name: "Yuri Alberto", Age: 22, Nationality: "Brazil", Overall: 78, Potential: 84, Club: "Corinthians", Position: "ST"},
	}
}
