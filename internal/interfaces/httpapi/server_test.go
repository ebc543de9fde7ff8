package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/futdados/soccergraph/internal/infrastructure/repository/memory"
	"github.com/futdados/soccergraph/internal/platform/cache"
	"github.com/futdados/soccergraph/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	competitionRepo := memory.NewCompetitionRepository(memory.SeedCompetitions())

	handler := NewHandler(
		usecase.NewTeamService(teamRepo, matchRepo),
		usecase.NewMatchService(teamRepo, matchRepo),
		usecase.NewPlayerService(playerRepo),
		usecase.NewCompetitionService(competitionRepo, matchRepo, cache.NewStore(time.Minute)),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	srv := httptest.NewServer(NewRouter(handler, slog.New(slog.NewTextHandler(io.Discard, nil)), nil))
	t.Cleanup(srv.Close)
	return srv
}

type testEnvelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func getJSON[T any](t *testing.T, srv *httptest.Server, path string) (int, testEnvelope[T]) {
	t.Helper()

	resp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var envelope testEnvelope[T]
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal %s: %v\nbody: %s", path, err, raw)
	}
	return resp.StatusCode, envelope
}

func TestRouter_Healthz(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[map[string]string](t, srv, "/healthz")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if envelope.Data["status"] != "ok" {
		t.Fatalf("expected status=ok, got %v", envelope.Data)
	}
}

func TestRouter_ListTeams(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[[]teamDTO](t, srv, "/v1/teams")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(envelope.Data) != 6 {
		t.Fatalf("expected 6 teams, got %d", len(envelope.Data))
	}
}

func TestRouter_TeamStatistics(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[teamStatsDTO](t, srv, "/v1/teams/Flamengo/stats?season=2023")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	got := envelope.Data
	if got.Team != "Flamengo" {
		t.Fatalf("expected team Flamengo, got %s", got.Team)
	}
	if got.Overall.Played != 3 || got.Overall.Wins != 2 || got.Overall.Draws != 1 {
		t.Fatalf("unexpected overall record: %+v", got.Overall)
	}
	if got.Overall.Points != 7 {
		t.Fatalf("expected 7 points, got %d", got.Overall.Points)
	}
}

func TestRouter_TeamStatistics_ResolvesAlias(t *testing.T) {
	srv := newTestServer(t)

	path := "/v1/teams/" + url.PathEscape("Sociedade Esportiva Palmeiras") + "/stats"
	status, envelope := getJSON[teamStatsDTO](t, srv, path)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if envelope.Data.Team != "Palmeiras" {
		t.Fatalf("expected alias to resolve to Palmeiras, got %s", envelope.Data.Team)
	}
}

func TestRouter_TeamStatistics_UnknownTeam(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[teamStatsDTO](t, srv, "/v1/teams/Botafogo-XX/stats")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if envelope.Error == nil || envelope.Error.Status != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND error, got %+v", envelope.Error)
	}
}

func TestRouter_FindMatches_RequiresTeam(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[matchListDTO](t, srv, "/v1/matches")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT error, got %+v", envelope.Error)
	}
}

func TestRouter_FindMatches_HomeOnly(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[matchListDTO](t, srv, "/v1/matches?team=Flamengo&home_only=true")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	got := envelope.Data
	if got.Total != 2 {
		t.Fatalf("expected 2 home matches, got %d", got.Total)
	}
	for _, m := range got.Matches {
		if m.HomeTeam != "Flamengo" {
			t.Fatalf("expected only home matches, got %+v", m)
		}
	}
}

func TestRouter_HeadToHead(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[headToHeadDTO](t, srv, "/v1/matches/head-to-head?team_a=Flamengo&team_b=Palmeiras")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	got := envelope.Data
	if got.Played != 1 || got.WinsA != 1 || got.WinsB != 0 {
		t.Fatalf("unexpected head-to-head record: %+v", got)
	}
}

func TestRouter_Standings(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[standingsDTO](t, srv, "/v1/competitions/Brasileirao/standings?season=2023")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	table := envelope.Data.Table
	if len(table) == 0 {
		t.Fatal("expected a non-empty table")
	}
	if table[0].Team != "Flamengo" || table[0].Position != 1 {
		t.Fatalf("expected Flamengo at position 1, got %+v", table[0])
	}
}

func TestRouter_Standings_SeasonRequired(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[standingsDTO](t, srv, "/v1/competitions/Brasileirao/standings")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT error, got %+v", envelope.Error)
	}
}

func TestRouter_Standings_UnknownCompetition(t *testing.T) {
	srv := newTestServer(t)

	status, _ := getJSON[standingsDTO](t, srv, "/v1/competitions/Bundesliga/standings?season=2023")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestRouter_BiggestWins(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[[]matchDTO](t, srv, "/v1/competitions/Brasileirao/biggest-wins?limit=1")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected 1 match, got %d", len(envelope.Data))
	}
	top := envelope.Data[0]
	if top.HomeTeam != "Flamengo" || top.HomeGoals != 5 || top.AwayGoals != 0 {
		t.Fatalf("expected the 5-0 win on top, got %+v", top)
	}
}

func TestRouter_Winners(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[[]seasonWinnerDTO](t, srv, "/v1/competitions/Brasileirao/winners")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected 1 season winner, got %d", len(envelope.Data))
	}
	if envelope.Data[0].Season != 2023 || envelope.Data[0].Team != "Flamengo" {
		t.Fatalf("expected Flamengo to win 2023, got %+v", envelope.Data[0])
	}
}

func TestRouter_FindPlayers_ByNationality(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[[]playerDTO](t, srv, "/v1/players?nationality=Uruguay")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Giorgian De Arrascaeta" {
		t.Fatalf("unexpected players: %+v", envelope.Data)
	}
}

func TestRouter_TopPlayers(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[[]playerDTO](t, srv, "/v1/players/top?limit=2")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 players, got %d", len(envelope.Data))
	}
	if envelope.Data[0].Overall < envelope.Data[1].Overall {
		t.Fatalf("expected descending overall order, got %+v", envelope.Data)
	}
}

func TestRouter_InvalidIntegerQuery(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getJSON[matchListDTO](t, srv, "/v1/matches?team=Flamengo&season=twenty23")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT error, got %+v", envelope.Error)
	}
}
