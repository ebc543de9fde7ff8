package loader

import "time"

// Skip records one source row that could not become an entity. Loads keep
// going past bad rows; the report is the only place they surface.
type Skip struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Conflict records two sources disagreeing on the score of the same
// fixture with no precedence between them. The first record stays.
type Conflict struct {
	MatchID      string `json:"match_id"`
	KeptSource   string `json:"kept_source"`
	KeptScore    string `json:"kept_score"`
	DroppedSource string `json:"dropped_source"`
	DroppedScore  string `json:"dropped_score"`
}

// Report summarizes one load run.
type Report struct {
	RunID        string    `json:"run_id"`
	Competitions int       `json:"competitions"`
	Teams        int       `json:"teams"`
	Players      int       `json:"players"`
	Matches      int       `json:"matches"`
	// Deduped counts rows that repeated an already-loaded fixture with an
	// identical score. Superseded counts rows replaced or dropped by a
	// higher-priority source.
	Deduped    int        `json:"deduped"`
	Superseded int        `json:"superseded"`
	Skipped    []Skip     `json:"skipped,omitempty"`
	Conflicts  []Conflict `json:"conflicts,omitempty"`
	// UnresolvedNames lists ambiguous suffix-less team spellings that were
	// kept separate instead of merged.
	UnresolvedNames []string      `json:"unresolved_names,omitempty"`
	StartedAt       time.Time     `json:"started_at"`
	Duration        time.Duration `json:"duration"`
}

func (r *Report) skip(source string, line int, reason string) {
	r.Skipped = append(r.Skipped, Skip{Source: source, Line: line, Reason: reason})
}

func (r Report) HasConflicts() bool {
	return len(r.Conflicts) > 0
}
