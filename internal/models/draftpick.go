package models

import (
	"fmt"
	"sort"
	"strings"
)

// DraftPick represents a tradable future draft selection. CurrentTeam and
// Protections change hands over the pick's life; OriginTeam is provenance
// and is fixed at creation.
type DraftPick struct {
	Year        int            `json:"year"`
	Round       int            `json:"round"`
	CurrentTeam string         `json:"current_team"`
	OriginTeam  string         `json:"origin_team"`
	Protections map[string]int `json:"protections,omitempty"`
	Consumed    bool           `json:"consumed"` // draft has occurred, kept as audit trail
}

// NewDraftPick builds a pick owned by currentTeam. An empty originTeam
// defaults to currentTeam. Round must be 1 or 2.
func NewDraftPick(year, round int, currentTeam, originTeam string, protections map[string]int) (*DraftPick, error) {
	if round != 1 && round != 2 {
		return nil, fmt.Errorf("round %d: %w", round, ErrInvalidRound)
	}
	if originTeam == "" {
		originTeam = currentTeam
	}
	p := &DraftPick{
		Year:        year,
		Round:       round,
		CurrentTeam: currentTeam,
		OriginTeam:  originTeam,
	}
	if len(protections) > 0 {
		p.Protections = make(map[string]int, len(protections))
		for cond, v := range protections {
			p.Protections[cond] = v
		}
	}
	return p, nil
}

// Reassign transfers current ownership to newOwner. Origin is untouched.
func (p *DraftPick) Reassign(newOwner string) {
	p.CurrentTeam = newOwner
}

// SetProtections replaces the protection map wholesale.
func (p *DraftPick) SetProtections(protections map[string]int) {
	p.Protections = protections
}

// Traded reports whether the pick has left the team that originated it.
func (p *DraftPick) Traded() bool {
	return p.CurrentTeam != p.OriginTeam
}

// Describe returns a one-line summary of the pick.
func (p *DraftPick) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d Round %d Pick owned by %s", p.Year, p.Round, p.CurrentTeam)
	if p.Traded() {
		fmt.Fprintf(&b, " (Traded from %s)", p.OriginTeam)
	}
	if len(p.Protections) == 0 {
		b.WriteString(", No protections")
	} else {
		conds := make([]string, 0, len(p.Protections))
		for cond := range p.Protections {
			conds = append(conds, cond)
		}
		sort.Strings(conds)
		parts := make([]string, 0, len(conds))
		for _, cond := range conds {
			parts = append(parts, fmt.Sprintf("%s %d", cond, p.Protections[cond]))
		}
		fmt.Fprintf(&b, ", Protections: %s", strings.Join(parts, ", "))
	}
	return b.String()
}
