package httpapi

import (
	"net/http"

	"github.com/futdados/soccergraph/internal/domain/player"
)

func (h *Handler) FindPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindPlayers")
	defer span.End()

	values := r.URL.Query()
	minOverall, err := queryInt(values, "min_overall")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	maxOverall, err := queryInt(values, "max_overall")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(values, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.playerService.FindPlayers(ctx, player.Filter{
		Name:        values.Get("name"),
		Nationality: values.Get("nationality"),
		Club:        values.Get("club"),
		Position:    values.Get("position"),
		MinOverall:  minOverall,
		MaxOverall:  maxOverall,
		Limit:       limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "find players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) GetTopPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopPlayers")
	defer span.End()

	values := r.URL.Query()
	limit, err := queryInt(values, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.playerService.TopPlayers(ctx, values.Get("nationality"), limit)
	if err != nil {
		h.logger.WarnContext(ctx, "top players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

type playerDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Overall     int    `json:"overall"`
	Potential   int    `json:"potential,omitempty"`
	Club        string `json:"club,omitempty"`
	Position    string `json:"position,omitempty"`
}

func playersToDTO(players []player.Player) []playerDTO {
	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerDTO{
			ID:          p.ID,
			Name:        p.Name,
			Age:         p.Age,
			Nationality: p.Nationality,
			Overall:     p.Overall,
			Potential:   p.Potential,
			Club:        p.Club,
			Position:    p.Position,
		})
	}
	return items
}
