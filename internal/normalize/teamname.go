// Package normalize reconciles the spelling and encoding differences between
// the source datasets: team names arrive with state suffixes, accents and
// corporate long forms, dates arrive in four different encodings.
package normalize

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/futdados/soccergraph/internal/domain/team"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stateSuffixRegex = regexp.MustCompile(`-([A-Z]{2})$`)
	foldTransformer  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Corporate long forms that appear as trailing tokens in some datasets.
var corporateSuffixes = []string{
	" futebol clube",
	" esporte clube",
	" f.c.",
	" fc",
}

// CleanName trims, collapses whitespace and folds diacritics. It does not
// touch suffixes, so it is safe on already-canonical names.
func CleanName(raw string) string {
	folded, _, err := transform.String(foldTransformer, strings.TrimSpace(raw))
	if err != nil {
		folded = strings.TrimSpace(raw)
	}
	return strings.Join(strings.Fields(folded), " ")
}

func lookupKey(name string) string {
	return strings.ToLower(name)
}

func splitStateSuffix(name string) (base, state string) {
	loc := stateSuffixRegex.FindStringSubmatch(name)
	if loc == nil {
		return name, ""
	}
	return strings.TrimSuffix(name, "-"+loc[1]), loc[1]
}

func stripCorporateSuffix(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range corporateSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return strings.TrimSpace(name[:len(name)-len(suffix)])
		}
	}
	return name
}

// DefaultAliases is the curated alias list distilled from scanning every
// source dataset. Keys are folded lower-case spellings, values are the
// canonical names they merge into. Fuzzy matching is deliberately absent: a
// wrong merge corrupts decades of statistics, a missed merge only splits one
// club in two.
func DefaultAliases() map[string]string {
	return map[string]string{
		"atletico mineiro":                "Atletico-MG",
		"atletico mg":                     "Atletico-MG",
		"atletico-mg":                     "Atletico-MG",
		"atletico paranaense":             "Athletico-PR",
		"athletico paranaense":            "Athletico-PR",
		"athletico-pr":                    "Athletico-PR",
		"atletico goianiense":             "Atletico-GO",
		"atletico-go":                     "Atletico-GO",
		"sport club corinthians paulista": "Corinthians",
		"sociedade esportiva palmeiras":   "Palmeiras",
		"sao paulo fc":                    "Sao Paulo",
		"sao paulo futebol clube":         "Sao Paulo",
	}
}

// DefaultAmbiguous lists base names shared by unrelated clubs. Stripping the
// state suffix from these would merge different teams, so they keep whatever
// suffix the source carried and suffix-less spellings are reported instead
// of guessed at.
func DefaultAmbiguous() []string {
	return []string{"America", "Nacional", "Operario"}
}

// Canonicalizer owns the alias table built during the load phase. It is not
// safe for concurrent mutation; the load runs single-threaded before query
// traffic starts.
type Canonicalizer struct {
	aliases    map[string]string
	teams      map[string]*team.Team
	ambiguous  map[string]struct{}
	unresolved map[string]struct{}
	logger     *slog.Logger
}

func NewCanonicalizer(curated map[string]string, ambiguous []string, logger *slog.Logger) *Canonicalizer {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Canonicalizer{
		aliases:    make(map[string]string, len(curated)*2),
		teams:      make(map[string]*team.Team),
		ambiguous:  make(map[string]struct{}, len(ambiguous)),
		unresolved: make(map[string]struct{}),
		logger:     logger,
	}
	for key, canonical := range curated {
		c.aliases[lookupKey(key)] = canonical
	}
	for _, name := range ambiguous {
		c.ambiguous[lookupKey(CleanName(name))] = struct{}{}
	}

	return c
}

// Canonicalize maps a raw spelling to its canonical team name, creating a
// new canonical team when the spelling is unknown. Canonicalizing an already
// canonical name returns it unchanged.
func (c *Canonicalizer) Canonicalize(raw string) string {
	cleaned := CleanName(raw)
	if cleaned == "" {
		return ""
	}

	if canonical, ok := c.aliases[lookupKey(cleaned)]; ok {
		c.recordAlias(canonical, raw, cleaned)
		return canonical
	}

	base, state := splitStateSuffix(cleaned)
	base = stripCorporateSuffix(base)

	canonical := base
	if _, isAmbiguous := c.ambiguous[lookupKey(base)]; isAmbiguous {
		// Never merge across an ambiguous base name. With a state suffix
		// the suffixed spelling is its own canonical identity; without one
		// there is nothing safe to merge into.
		canonical = cleaned
		if state == "" {
			c.markUnresolved(cleaned)
		}
	}

	c.register(canonical, state, raw, cleaned)
	return canonical
}

// Resolve is the read-only lookup used at query time. It applies the same
// cleanup rules but never creates a team.
func (c *Canonicalizer) Resolve(raw string) (string, bool) {
	cleaned := CleanName(raw)
	if cleaned == "" {
		return "", false
	}
	if canonical, ok := c.aliases[lookupKey(cleaned)]; ok {
		return canonical, true
	}

	base, _ := splitStateSuffix(cleaned)
	base = stripCorporateSuffix(base)
	if canonical, ok := c.aliases[lookupKey(base)]; ok {
		return canonical, true
	}

	return "", false
}

// Teams returns every canonical team registered so far, sorted by name.
func (c *Canonicalizer) Teams() []team.Team {
	out := make([]team.Team, 0, len(c.teams))
	for _, t := range c.teams {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Unresolved returns the ambiguous spellings that were left unmerged, sorted.
func (c *Canonicalizer) Unresolved() []string {
	out := make([]string, 0, len(c.unresolved))
	for name := range c.unresolved {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (c *Canonicalizer) register(canonical, state, raw, cleaned string) {
	c.aliases[lookupKey(canonical)] = canonical
	c.aliases[lookupKey(cleaned)] = canonical

	entry, ok := c.teams[canonical]
	if !ok {
		entry = &team.Team{Name: canonical, State: state}
		c.teams[canonical] = entry
	}
	if entry.State == "" && state != "" {
		entry.State = state
	}
	entry.AddAlias(raw)
	entry.AddAlias(canonical)
}

func (c *Canonicalizer) recordAlias(canonical, raw, cleaned string) {
	c.aliases[lookupKey(cleaned)] = canonical
	if entry, ok := c.teams[canonical]; ok {
		entry.AddAlias(raw)
		return
	}
	entry := &team.Team{Name: canonical}
	entry.AddAlias(raw)
	entry.AddAlias(canonical)
	c.teams[canonical] = entry
}

// NoteState attaches a state abbreviation carried by a source column to an
// already-registered team. Suffix-derived states are never overwritten.
func (c *Canonicalizer) NoteState(canonical, state string) {
	state = strings.ToUpper(strings.TrimSpace(state))
	if state == "" {
		return
	}
	if entry, ok := c.teams[canonical]; ok && entry.State == "" {
		entry.State = state
	}
}

func (c *Canonicalizer) markUnresolved(name string) {
	if _, seen := c.unresolved[name]; seen {
		return
	}
	c.unresolved[name] = struct{}{}
	c.logger.Warn("ambiguous team name left unmerged", "name", name)
}
