package player

import (
	"github.com/hooptools/capledger/internal/models"
)

// CreatePlayerRequest represents a request to register a new player.
type CreatePlayerRequest struct {
	ExternalID   string                `json:"external_id"`
	Name         string                `json:"name"`
	Position     string                `json:"position"`
	Team         *string               `json:"team,omitempty"`
	Tradeable    *bool                 `json:"tradeable,omitempty"` // nil defaults to true
	InjuryStatus *string               `json:"injury_status,omitempty"`
	Contract     *models.ContractTerms `json:"contract,omitempty"`
}

// PlayerUpdate is a partial update: only non-nil fields are applied.
// For the nullable attributes (Team, InjuryStatus) an empty string clears
// the field.
type PlayerUpdate struct {
	Name         *string `json:"name,omitempty"`
	Position     *string `json:"position,omitempty"`
	Team         *string `json:"team,omitempty"`
	Tradeable    *bool   `json:"tradeable,omitempty"`
	InjuryStatus *string `json:"injury_status,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u PlayerUpdate) Empty() bool {
	return u.Name == nil && u.Position == nil && u.Team == nil && u.Tradeable == nil && u.InjuryStatus == nil
}
