package competition

import "fmt"

const (
	TypeLeague = "league"
	TypeCup    = "cup"
)

// Competition is one tournament entity, e.g. Brasileirao Serie A.
type Competition struct {
	Name      string
	ShortName string
	Country   string
	Type      string
}

func (c Competition) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("competition name is required")
	}
	if c.Type != TypeLeague && c.Type != TypeCup {
		return fmt.Errorf("invalid competition type: %s", c.Type)
	}
	return nil
}

// Predefined competitions covered by the bundled source datasets.
func Brasileirao() Competition {
	return Competition{Name: "Brasileirao Serie A", ShortName: "Brasileirao", Country: "Brazil", Type: TypeLeague}
}

func CopaDoBrasil() Competition {
	return Competition{Name: "Copa do Brasil", ShortName: "Copa do Brasil", Country: "Brazil", Type: TypeCup}
}

func Libertadores() Competition {
	return Competition{Name: "Copa Libertadores", ShortName: "Libertadores", Country: "International", Type: TypeCup}
}
