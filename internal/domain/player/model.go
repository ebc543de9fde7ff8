package player

import "fmt"

// Player is one athlete row from the FIFA dataset. Players are loaded once
// and never mutated afterwards.
type Player struct {
	ID          int64
	Name        string
	Age         int
	Nationality string
	Overall     int
	Potential   int
	Club        string
	Position    string
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Overall < 0 || p.Overall > 99 {
		return fmt.Errorf("player overall rating out of range: %d", p.Overall)
	}
	if p.Potential < 0 || p.Potential > 99 {
		return fmt.Errorf("player potential rating out of range: %d", p.Potential)
	}
	return nil
}
