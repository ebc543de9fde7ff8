package loader

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/futdados/soccergraph/internal/domain/competition"
	"github.com/futdados/soccergraph/internal/domain/match"
	"github.com/futdados/soccergraph/internal/domain/player"
	"github.com/futdados/soccergraph/internal/domain/team"
	"github.com/futdados/soccergraph/internal/normalize"
	"github.com/futdados/soccergraph/internal/platform/id"
)

const flushBatchSize = 500

// unrankedPriority sorts below every configured source.
const unrankedPriority = int(^uint(0) >> 1)

// Config wires the builder to its repositories and load policy.
type Config struct {
	Teams        team.Repository
	Matches      match.Repository
	Players      player.Repository
	Competitions competition.Repository

	// SourcePriority orders source names highest first. When two sources
	// disagree on a score, the higher-ranked one wins; ties are conflicts.
	SourcePriority []string

	IDs    id.Generator
	Logger *slog.Logger
}

// Builder turns raw source rows into canonical entities. It is stateful
// across one load run and not safe for concurrent use: file parsing may
// fan out, but rows feed the builder from a single goroutine.
type Builder struct {
	cfg      Config
	canon    *normalize.Canonicalizer
	priority map[string]int

	seen           map[match.Key]storedMatch
	pendingMatches []match.Match
	pendingPlayers []player.Player

	report Report
}

type storedMatch struct {
	id        string
	source    string
	homeGoals int
	awayGoals int
}

func NewBuilder(cfg Config) (*Builder, error) {
	if cfg.Teams == nil || cfg.Matches == nil || cfg.Players == nil || cfg.Competitions == nil {
		return nil, fmt.Errorf("builder requires all repositories")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	priority := make(map[string]int, len(cfg.SourcePriority))
	for rank, name := range cfg.SourcePriority {
		if _, dup := priority[name]; !dup {
			priority[name] = rank
		}
	}

	b := &Builder{
		cfg:      cfg,
		canon:    normalize.NewCanonicalizer(normalize.DefaultAliases(), normalize.DefaultAmbiguous(), cfg.Logger),
		priority: priority,
		seen:     make(map[match.Key]storedMatch),
	}

	b.report.StartedAt = time.Now()
	if cfg.IDs != nil {
		if runID, err := cfg.IDs.NewID(); err == nil {
			b.report.RunID = runID
		}
	}
	if b.report.RunID == "" {
		b.report.RunID = b.report.StartedAt.UTC().Format("20060102150405")
	}

	return b, nil
}

// Init creates the predefined competitions. Loading match rows before
// Init is fine; the competitions exist independently of the sources.
func (b *Builder) Init(ctx context.Context) error {
	comps := []competition.Competition{
		competition.Brasileirao(),
		competition.CopaDoBrasil(),
		competition.Libertadores(),
	}
	if err := b.cfg.Competitions.Upsert(ctx, comps); err != nil {
		return fmt.Errorf("upsert competitions: %w", err)
	}
	b.report.Competitions = len(comps)
	return nil
}

// AddMatch validates and canonicalizes one raw row. Data problems never
// return an error; they land in the report and the load continues. The
// returned error is reserved for repository failures.
func (b *Builder) AddMatch(ctx context.Context, raw RawMatch) error {
	if raw.HomeTeam == "" || raw.AwayTeam == "" {
		b.report.skip(raw.Source, raw.Line, "missing team name")
		return nil
	}

	date, err := normalize.ParseDate(raw.Date)
	if err != nil {
		b.report.skip(raw.Source, raw.Line, fmt.Sprintf("date %q: %v", raw.Date, err))
		return nil
	}

	home := b.canon.Canonicalize(raw.HomeTeam)
	away := b.canon.Canonicalize(raw.AwayTeam)
	b.canon.NoteState(home, raw.HomeState)
	b.canon.NoteState(away, raw.AwayState)

	season := safeInt(raw.Season)
	if season <= 0 {
		season = date.SeasonYear()
	}

	m := match.Match{
		Date:        date.Time,
		YearOnly:    date.YearOnly,
		HomeTeam:    home,
		AwayTeam:    away,
		HomeGoals:   safeInt(raw.HomeGoals),
		AwayGoals:   safeInt(raw.AwayGoals),
		Competition: raw.Competition,
		Season:      season,
		Round:       raw.Round,
		Stadium:     raw.Stadium,
		Source:      raw.Source,
	}
	m.ID = m.CompositeID(raw.CompetitionShort)

	if err := m.Validate(); err != nil {
		b.report.skip(raw.Source, raw.Line, err.Error())
		return nil
	}

	key := m.Key()
	prev, ok := b.seen[key]
	if !ok {
		b.seen[key] = storedMatch{id: m.ID, source: m.Source, homeGoals: m.HomeGoals, awayGoals: m.AwayGoals}
		b.pendingMatches = append(b.pendingMatches, m)
		b.report.Matches++
		return b.maybeFlushMatches(ctx)
	}

	if prev.homeGoals == m.HomeGoals && prev.awayGoals == m.AwayGoals {
		b.report.Deduped++
		return nil
	}

	newRank, prevRank := b.rank(m.Source), b.rank(prev.source)
	switch {
	case newRank < prevRank:
		// Higher-priority source replaces the stored fixture. Upsert is
		// keyed on the fixture identity, so re-appending overwrites.
		b.seen[key] = storedMatch{id: m.ID, source: m.Source, homeGoals: m.HomeGoals, awayGoals: m.AwayGoals}
		b.pendingMatches = append(b.pendingMatches, m)
		b.report.Superseded++
		return b.maybeFlushMatches(ctx)
	case newRank > prevRank:
		b.report.Superseded++
		return nil
	default:
		b.report.Conflicts = append(b.report.Conflicts, Conflict{
			MatchID:       prev.id,
			KeptSource:    prev.source,
			KeptScore:     fmt.Sprintf("%d-%d", prev.homeGoals, prev.awayGoals),
			DroppedSource: m.Source,
			DroppedScore:  fmt.Sprintf("%d-%d", m.HomeGoals, m.AwayGoals),
		})
		b.cfg.Logger.Warn("conflicting scores for fixture, keeping first",
			"match_id", prev.id, "kept", prev.source, "dropped", m.Source)
		return nil
	}
}

// AddPlayer validates one raw ratings row.
func (b *Builder) AddPlayer(ctx context.Context, raw RawPlayer) error {
	playerID, err := strconv.ParseInt(raw.ID, 10, 64)
	if err != nil || playerID <= 0 {
		b.report.skip(raw.Source, raw.Line, "missing or invalid player id")
		return nil
	}

	p := player.Player{
		ID:          playerID,
		Name:        raw.Name,
		Age:         safeInt(raw.Age),
		Nationality: raw.Nationality,
		Overall:     safeInt(raw.Overall),
		Potential:   safeInt(raw.Potential),
		Club:        normalize.CleanName(raw.Club),
		Position:    raw.Position,
	}
	if err := p.Validate(); err != nil {
		b.report.skip(raw.Source, raw.Line, err.Error())
		return nil
	}

	b.pendingPlayers = append(b.pendingPlayers, p)
	b.report.Players++
	if len(b.pendingPlayers) >= flushBatchSize {
		return b.flushPlayers(ctx)
	}
	return nil
}

// Finish flushes pending batches, materializes the teams accumulated by
// the canonicalizer and returns the run report.
func (b *Builder) Finish(ctx context.Context) (Report, error) {
	if err := b.flushMatches(ctx); err != nil {
		return b.report, err
	}
	if err := b.flushPlayers(ctx); err != nil {
		return b.report, err
	}

	teams := b.canon.Teams()
	if len(teams) > 0 {
		if err := b.cfg.Teams.Upsert(ctx, teams); err != nil {
			return b.report, fmt.Errorf("upsert teams: %w", err)
		}
	}
	b.report.Teams = len(teams)
	b.report.UnresolvedNames = b.canon.Unresolved()
	b.report.Duration = time.Since(b.report.StartedAt)

	b.cfg.Logger.Info("load run finished",
		"run_id", b.report.RunID,
		"teams", b.report.Teams,
		"matches", b.report.Matches,
		"players", b.report.Players,
		"skipped", len(b.report.Skipped),
		"conflicts", len(b.report.Conflicts),
		"unresolved", len(b.report.UnresolvedNames),
	)
	return b.report, nil
}

func (b *Builder) maybeFlushMatches(ctx context.Context) error {
	if len(b.pendingMatches) < flushBatchSize {
		return nil
	}
	return b.flushMatches(ctx)
}

func (b *Builder) flushMatches(ctx context.Context) error {
	if len(b.pendingMatches) == 0 {
		return nil
	}
	if err := b.cfg.Matches.Upsert(ctx, b.pendingMatches); err != nil {
		return fmt.Errorf("upsert matches: %w", err)
	}
	b.pendingMatches = b.pendingMatches[:0]
	return nil
}

func (b *Builder) flushPlayers(ctx context.Context) error {
	if len(b.pendingPlayers) == 0 {
		return nil
	}
	if err := b.cfg.Players.Upsert(ctx, b.pendingPlayers); err != nil {
		return fmt.Errorf("upsert players: %w", err)
	}
	b.pendingPlayers = b.pendingPlayers[:0]
	return nil
}

func (b *Builder) rank(source string) int {
	if rank, ok := b.priority[source]; ok {
		return rank
	}
	return unrankedPriority
}

// safeInt tolerates the float-typed numeric columns some exports carry
// ("2014.0"). Anything unparseable becomes zero.
func safeInt(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
