// Package httpapi exposes the read API over HTTP. Every route is a GET:
// the store is written only by cmd/loader, so the handlers are pure
// query-and-shape code on top of the usecase services.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/futdados/soccergraph/internal/usecase"
)

type Handler struct {
	teamService        *usecase.TeamService
	matchService       *usecase.MatchService
	playerService      *usecase.PlayerService
	competitionService *usecase.CompetitionService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	matchService *usecase.MatchService,
	playerService *usecase.PlayerService,
	competitionService *usecase.CompetitionService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		teamService:        teamService,
		matchService:       matchService,
		playerService:      playerService,
		competitionService: competitionService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// queryInt parses an optional integer query parameter; absent means zero.
func queryInt(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return parsed, nil
}

// queryBool treats "true" and "1" as set; anything else (including absent)
// is false.
func queryBool(values url.Values, name string) bool {
	raw := strings.ToLower(strings.TrimSpace(values.Get(name)))
	return raw == "true" || raw == "1"
}
