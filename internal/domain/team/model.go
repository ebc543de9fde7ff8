package team

import (
	"fmt"
	"sort"
	"strings"
)

// Team is one canonical club identity. Aliases holds every raw spelling
// observed across source datasets that resolves to this identity.
type Team struct {
	ID      string
	Name    string
	State   string
	Aliases []string
	Founded int
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// AddAlias records a raw spelling for this team. Duplicates are ignored;
// the alias list stays sorted so rebuilds are reproducible.
func (t *Team) AddAlias(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	for _, existing := range t.Aliases {
		if existing == raw {
			return
		}
	}
	t.Aliases = append(t.Aliases, raw)
	sort.Strings(t.Aliases)
}
