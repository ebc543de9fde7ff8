package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{team}/stats", handler.GetTeamStatistics)

	mux.HandleFunc("GET /v1/matches", handler.FindMatches)
	mux.HandleFunc("GET /v1/matches/head-to-head", handler.GetHeadToHead)

	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competition}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/competitions/{competition}/stats", handler.GetLeagueStats)
	mux.HandleFunc("GET /v1/competitions/{competition}/biggest-wins", handler.GetBiggestWins)
	mux.HandleFunc("GET /v1/competitions/{competition}/winners", handler.GetWinners)

	mux.HandleFunc("GET /v1/players", handler.FindPlayers)
	mux.HandleFunc("GET /v1/players/top", handler.GetTopPlayers)
}
