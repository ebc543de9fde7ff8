package httpapi

import (
	"net/http"

	"github.com/futdados/soccergraph/internal/domain/match"
	"github.com/futdados/soccergraph/internal/usecase"
)

func (h *Handler) FindMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindMatches")
	defer span.End()

	values := r.URL.Query()
	req := findMatchesRequest{Team: values.Get("team")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

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

	result, err := h.matchService.FindMatches(ctx, usecase.FindMatchesQuery{
		Team:        req.Team,
		Season:      season,
		Competition: values.Get("competition"),
		HomeOnly:    queryBool(values, "home_only"),
		AwayOnly:    queryBool(values, "away_only"),
		Limit:       limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "find matches failed", "team", req.Team, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchListDTO{
		Team:    result.Team,
		Total:   result.Total,
		Summary: recordToDTO(result.Summary),
		Matches: matchesToDTO(result.Matches),
	})
}

func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeadToHead")
	defer span.End()

	values := r.URL.Query()
	req := headToHeadRequest{TeamA: values.Get("team_a"), TeamB: values.Get("team_b")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	season, err := queryInt(values, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.HeadToHead(ctx, req.TeamA, req.TeamB, season)
	if err != nil {
		h.logger.WarnContext(ctx, "head-to-head failed", "team_a", req.TeamA, "team_b", req.TeamB, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, headToHeadDTO{
		TeamA:   result.Record.TeamA,
		TeamB:   result.Record.TeamB,
		Played:  result.Record.Played,
		WinsA:   result.Record.WinsA,
		WinsB:   result.Record.WinsB,
		Draws:   result.Record.Draws,
		GoalsA:  result.Record.GoalsA,
		GoalsB:  result.Record.GoalsB,
		Matches: matchesToDTO(result.Matches),
	})
}

type findMatchesRequest struct {
	Team string `validate:"required"`
}

type headToHeadRequest struct {
	TeamA string `validate:"required"`
	TeamB string `validate:"required"`
}

type matchDTO struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	YearOnly    bool   `json:"yearOnly,omitempty"`
	HomeTeam    string `json:"homeTeam"`
	AwayTeam    string `json:"awayTeam"`
	HomeGoals   int    `json:"homeGoals"`
	AwayGoals   int    `json:"awayGoals"`
	Competition string `json:"competition"`
	Season      int    `json:"season"`
	Round       string `json:"round,omitempty"`
	Stadium     string `json:"stadium,omitempty"`
	Source      string `json:"source,omitempty"`
}

type matchListDTO struct {
	Team    string     `json:"team"`
	Total   int        `json:"total"`
	Summary recordDTO  `json:"summary"`
	Matches []matchDTO `json:"matches"`
}

type headToHeadDTO struct {
	TeamA   string     `json:"teamA"`
	TeamB   string     `json:"teamB"`
	Played  int        `json:"played"`
	WinsA   int        `json:"winsA"`
	WinsB   int        `json:"winsB"`
	Draws   int        `json:"draws"`
	GoalsA  int        `json:"goalsA"`
	GoalsB  int        `json:"goalsB"`
	Matches []matchDTO `json:"matches"`
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:          v.ID,
		Date:        v.Date.Format("2006-01-02"),
		YearOnly:    v.YearOnly,
		HomeTeam:    v.HomeTeam,
		AwayTeam:    v.AwayTeam,
		HomeGoals:   v.HomeGoals,
		AwayGoals:   v.AwayGoals,
		Competition: v.Competition,
		Season:      v.Season,
		Round:       v.Round,
		Stadium:     v.Stadium,
		Source:      v.Source,
	}
}

func matchesToDTO(matches []match.Match) []matchDTO {
	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}
	return items
}
