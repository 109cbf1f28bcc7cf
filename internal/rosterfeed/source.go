// Package rosterfeed defines the seam to the external roster-data
// collaborator. The real scraping client lives outside this module; the
// core only consumes pre-parsed rows through the Source interface.
package rosterfeed

import (
	"context"
	"fmt"
	"sync"
)

// PlayerRow is one pre-parsed roster record from the external feed.
// Either Salary+ContractYears or a full SalaryPerYear schedule is
// supplied; absent optional fields take their defaults (tradeable true,
// no injury).
type PlayerRow struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Position      string           `json:"position"`
	Salary        int64            `json:"salary,omitempty"`
	ContractYears int              `json:"contract_years,omitempty"`
	SalaryPerYear []int64          `json:"salary_per_year,omitempty"`
	TeamOptions   map[int]bool     `json:"team_options,omitempty"`
	PlayerOptions map[int]bool     `json:"player_options,omitempty"`
	Incentives    map[string]int64 `json:"incentives,omitempty"`
	Tradeable     *bool            `json:"tradeable,omitempty"`
	InjuryStatus  *string          `json:"injury_status,omitempty"`
}

// SalarySchedule returns the row's per-year schedule, expanding a flat
// Salary over ContractYears when no explicit schedule is present.
func (r PlayerRow) SalarySchedule() []int64 {
	if len(r.SalaryPerYear) > 0 {
		return append([]int64(nil), r.SalaryPerYear...)
	}
	years := r.ContractYears
	if years <= 0 {
		years = 1
	}
	schedule := make([]int64, years)
	for i := range schedule {
		schedule[i] = r.Salary
	}
	return schedule
}

// IsTradeable resolves the optional tradeable flag, defaulting to true.
func (r PlayerRow) IsTradeable() bool {
	return r.Tradeable == nil || *r.Tradeable
}

// Source supplies the current roster rows for a team. A fetch failure is
// reported synchronously; the caller decides whether to skip the team.
type Source interface {
	FetchRoster(ctx context.Context, team string) ([]PlayerRow, error)
}

// StaticSource is an in-memory Source used for wiring and tests.
type StaticSource struct {
	mu      sync.RWMutex
	rosters map[string][]PlayerRow
}

// NewStaticSource creates an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{rosters: make(map[string][]PlayerRow)}
}

// SetRoster installs the rows returned for a team.
func (s *StaticSource) SetRoster(team string, rows []PlayerRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosters[team] = append([]PlayerRow(nil), rows...)
}

// FetchRoster returns a copy of the team's rows, or an error for a team
// the source knows nothing about.
func (s *StaticSource) FetchRoster(ctx context.Context, team string) ([]PlayerRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.rosters[team]
	if !ok {
		return nil, fmt.Errorf("no roster data for team %s", team)
	}
	return append([]PlayerRow(nil), rows...), nil
}
