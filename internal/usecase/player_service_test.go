package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/futdados/soccergraph/internal/domain/player"
	"github.com/futdados/soccergraph/internal/infrastructure/repository/memory"
)

func newPlayerService() *PlayerService {
	return NewPlayerService(memory.NewPlayerRepository(memory.SeedPlayers()))
}

func TestPlayerService_FindPlayers_Filters(t *testing.T) {
	t.Parallel()

	got, err := newPlayerService().FindPlayers(context.Background(), player.Filter{
		Nationality: "brazil",
		MinOverall:  80,
	})
	if err != nil {
		t.Fatalf("FindPlayers error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 players, got %d", len(got))
	}
	for i, p := range got {
		if p.Overall < 80 {
			t.Fatalf("player below min rating: %+v", p)
		}
		if i > 0 && got[i-1].Overall < p.Overall {
			t.Fatal("players not ordered by rating descending")
		}
	}
}

func TestPlayerService_FindPlayers_ClubNameFolded(t *testing.T) {
	t.Parallel()

	got, err := newPlayerService().FindPlayers(context.Background(), player.Filter{Club: "São Paulo"})
	if err != nil {
		t.Fatalf("FindPlayers error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no Sao Paulo players in seed, got %d", len(got))
	}

	got, err = newPlayerService().FindPlayers(context.Background(), player.Filter{Club: "Palmeiras"})
	if err != nil {
		t.Fatalf("FindPlayers error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 Palmeiras players, got %d", len(got))
	}
}

func TestPlayerService_FindPlayers_InvalidBounds(t *testing.T) {
	t.Parallel()

	_, err := newPlayerService().FindPlayers(context.Background(), player.Filter{MinOverall: 90, MaxOverall: 80})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	// The message names the wire parameters so a 400 body points the
	// caller at the right query string.
	if !strings.Contains(err.Error(), "min_overall exceeds max_overall") {
		t.Fatalf("expected message to name min_overall/max_overall, got %q", err)
	}
}

func TestPlayerService_TopPlayers(t *testing.T) {
	t.Parallel()

	got, err := newPlayerService().TopPlayers(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("TopPlayers error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 players, got %d", len(got))
	}
	if got[0].Name != "Giorgian De Arrascaeta" {
		t.Fatalf("unexpected top player: %+v", got[0])
	}
}
