package httpapi

import "net/http"

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	competitions, err := h.competitionService.ListCompetitions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]competitionDTO, 0, len(competitions))
	for _, c := range competitions {
		items = append(items, competitionDTO{
			Name:      c.Name,
			ShortName: c.ShortName,
			Country:   c.Country,
			Type:      c.Type,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	req := competitionRequest{Competition: r.PathValue("competition")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	season, err := queryInt(r.URL.Query(), "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.competitionService.Standings(ctx, req.Competition, season)
	if err != nil {
		h.logger.WarnContext(ctx, "standings failed", "competition", req.Competition, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingRowDTO{
			Position:  row.Position,
			Team:      row.Team,
			recordDTO: recordToDTO(row.Record),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, standingsDTO{
		Competition: req.Competition,
		Season:      season,
		Table:       items,
	})
}

func (h *Handler) GetLeagueStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStats")
	defer span.End()

	req := competitionRequest{Competition: r.PathValue("competition")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	season, err := queryInt(r.URL.Query(), "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	aggregates, err := h.competitionService.LeagueStats(ctx, req.Competition, season)
	if err != nil {
		h.logger.WarnContext(ctx, "league stats failed", "competition", req.Competition, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueStatsDTO{
		Competition:      req.Competition,
		Season:           season,
		TotalMatches:     aggregates.TotalMatches,
		TotalGoals:       aggregates.TotalGoals,
		AvgGoalsPerMatch: aggregates.AvgGoalsPerMatch,
		HomeWins:         aggregates.HomeWins,
		AwayWins:         aggregates.AwayWins,
		Draws:            aggregates.Draws,
		HomeWinRate:      aggregates.HomeWinRate,
		AwayWinRate:      aggregates.AwayWinRate,
		DrawRate:         aggregates.DrawRate,
	})
}

func (h *Handler) GetBiggestWins(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBiggestWins")
	defer span.End()

	req := competitionRequest{Competition: r.PathValue("competition")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	values := r.URL.Query()
	season, err := queryInt(values, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(values, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.competitionService.BiggestWins(ctx, req.Competition, season, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "biggest wins failed", "competition", req.Competition, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(matches))
}

func (h *Handler) GetWinners(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWinners")
	defer span.End()

	req := competitionRequest{Competition: r.PathValue("competition")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	values := r.URL.Query()
	startYear, err := queryInt(values, "start_year")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endYear, err := queryInt(values, "end_year")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	winners, err := h.competitionService.Winners(ctx, req.Competition, startYear, endYear)
	if err != nil {
		h.logger.WarnContext(ctx, "winners failed", "competition", req.Competition, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonWinnerDTO, 0, len(winners))
	for _, winner := range winners {
		items = append(items, seasonWinnerDTO(winner))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type competitionRequest struct {
	Competition string `validate:"required"`
}

type competitionDTO struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Country   string `json:"country,omitempty"`
	Type      string `json:"type,omitempty"`
}

type standingRowDTO struct {
	Position int    `json:"position"`
	Team     string `json:"team"`
	recordDTO
}

type standingsDTO struct {
	Competition string           `json:"competition"`
	Season      int              `json:"season"`
	Table       []standingRowDTO `json:"table"`
}

type leagueStatsDTO struct {
	Competition      string  `json:"competition"`
	Season           int     `json:"season,omitempty"`
	TotalMatches     int     `json:"totalMatches"`
	TotalGoals       int     `json:"totalGoals"`
	AvgGoalsPerMatch float64 `json:"avgGoalsPerMatch"`
	HomeWins         int     `json:"homeWins"`
	AwayWins         int     `json:"awayWins"`
	Draws            int     `json:"draws"`
	HomeWinRate      float64 `json:"homeWinRate"`
	AwayWinRate      float64 `json:"awayWinRate"`
	DrawRate         float64 `json:"drawRate"`
}

type seasonWinnerDTO struct {
	Season   int    `json:"season"`
	Team     string `json:"team"`
	Points   int    `json:"points"`
	Wins     int    `json:"wins"`
	GoalsFor int    `json:"goalsFor"`
}
