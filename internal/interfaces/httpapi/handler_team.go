package httpapi

import (
	"net/http"

	"github.com/futdados/soccergraph/internal/domain/team"
	"github.com/futdados/soccergraph/internal/stats"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStatistics")
	defer span.End()

	req := teamStatsRequest{Team: r.PathValue("team")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	season, err := queryInt(r.URL.Query(), "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	statistics, err := h.teamService.GetStatistics(ctx, req.Team, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get team statistics failed", "team", req.Team, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamStatsDTO{
		Team:    statistics.Team,
		Season:  season,
		Overall: recordToDTO(statistics.Overall),
		Home:    recordToDTO(statistics.Home),
		Away:    recordToDTO(statistics.Away),
	})
}

type teamStatsRequest struct {
	Team string `validate:"required"`
}

type teamDTO struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	State   string   `json:"state,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
	Founded int      `json:"founded,omitempty"`
}

type recordDTO struct {
	Played         int     `json:"played"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	GoalDifference int     `json:"goalDifference"`
	Points         int     `json:"points"`
	WinRate        float64 `json:"winRate"`
}

type teamStatsDTO struct {
	Team    string    `json:"team"`
	Season  int       `json:"season,omitempty"`
	Overall recordDTO `json:"overall"`
	Home    recordDTO `json:"home"`
	Away    recordDTO `json:"away"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:      v.ID,
		Name:    v.Name,
		State:   v.State,
		Aliases: v.Aliases,
		Founded: v.Founded,
	}
}

func recordToDTO(v stats.Record) recordDTO {
	return recordDTO{
		Played:         v.Played,
		Wins:           v.Wins,
		Draws:          v.Draws,
		Losses:         v.Losses,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference(),
		Points:         v.Points(),
		WinRate:        v.WinRate(),
	}
}
