package models

import (
	"time"

	"github.com/google/uuid"
)

// Player represents an NBA player in the system. A player belongs to at
// most one team at a time; the Team field is kept consistent with that
// team's roster membership by the roster registry's callers.
type Player struct {
	ID           uuid.UUID `json:"id"`
	ExternalID   string    `json:"external_id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"` // 'PG', 'SG', 'SF', 'PF', 'C'
	Team         *string   `json:"team,omitempty"`
	Tradeable    bool      `json:"tradeable"`
	InjuryStatus *string   `json:"injury_status,omitempty"`
	Contract     *Contract `json:"contract,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CurrentSalary returns the player's current-year salary, or 0 for a
// player without a contract.
func (p *Player) CurrentSalary() int64 {
	if p.Contract == nil {
		return 0
	}
	return p.Contract.CurrentSalary()
}
