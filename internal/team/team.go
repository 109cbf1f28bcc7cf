// Package team holds the Team aggregate: a roster of player references,
// the payroll derived from it, the cap status derived from the payroll,
// and the team's draft-pick inventory.
package team

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hooptools/capledger/internal/cba"
	"github.com/hooptools/capledger/internal/models"
	"github.com/hooptools/capledger/internal/player"
	"github.com/hooptools/capledger/internal/rosterfeed"
)

// futurePickYears is the forward window of draft years a team tracks
// picks for at construction.
const futurePickYears = 7

// PlayerRegistry defines what the team needs from the roster registry.
type PlayerRegistry interface {
	CreatePlayer(ctx context.Context, req player.CreatePlayerRequest) (*models.Player, bool, error)
	GetPlayerByExternalID(ctx context.Context, externalID string) (*models.Player, error)
	UpdatePlayer(ctx context.Context, id uuid.UUID, upd player.PlayerUpdate) (*models.Player, error)
	ResignPlayer(ctx context.Context, id uuid.UUID, terms models.ContractTerms) (*models.Player, error)
}

// Team is an aggregate over players registered in the roster registry.
// Cap status is always derived from payroll; there is no way to set it
// independently. One mutex guards the compare-and-swap a reconcile
// performs, so teams can be refreshed concurrently with each other.
type Team struct {
	name    string
	rules   cba.Ruleset
	players PlayerRegistry

	mu        sync.Mutex
	roster    map[string]*models.Player // keyed by external ID
	payroll   int64
	capStatus models.CapStatus
	picks     map[int]map[int]*models.DraftPick // year -> round -> pick
	baeUsed   bool                              // Bi-Annual Exception used last season
}

// New creates a team with an empty roster and a seeded pick inventory:
// one round-1 and one round-2 pick for each tracked future year after
// baseYear.
func New(name string, rules cba.Ruleset, players PlayerRegistry, baseYear int) *Team {
	t := &Team{
		name:    name,
		rules:   rules,
		players: players,
		roster:  make(map[string]*models.Player),
		picks:   make(map[int]map[int]*models.DraftPick),
	}
	t.capStatus = rules.Thresholds.Classify(0)
	for year := baseYear + 1; year <= baseYear+futurePickYears; year++ {
		t.picks[year] = make(map[int]*models.DraftPick)
		for round := 1; round <= 2; round++ {
			pick, err := models.NewDraftPick(year, round, name, "", nil)
			if err != nil {
				// rounds are the literals 1 and 2
				panic(err)
			}
			t.picks[year][round] = pick
		}
	}
	return t
}

// Name returns the team name, its key in the league registry.
func (t *Team) Name() string {
	return t.name
}

// Payroll returns the payroll computed at the last reconcile.
func (t *Team) Payroll() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.payroll
}

// CapStatus returns the tier derived from the current payroll.
func (t *Team) CapStatus() models.CapStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.capStatus
}

// SetBiAnnualUsed records whether the team used the Bi-Annual Exception
// last season, which suppresses it in the available-exception list.
func (t *Team) SetBiAnnualUsed(used bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.baeUsed = used
}

// RecomputeCapStatus recomputes payroll from the current roster contracts
// and re-derives the cap status. Called after any roster mutation.
func (t *Team) RecomputeCapStatus() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recompute()
}

// recompute must be called with t.mu held.
func (t *Team) recompute() {
	var payroll int64
	for _, p := range t.roster {
		payroll += p.CurrentSalary()
	}
	t.payroll = payroll
	t.capStatus = t.rules.Thresholds.Classify(payroll)
}

// ReconcileRoster upserts each external row through the roster registry,
// builds a candidate roster, and swaps it in only if membership changed
// or a member's contract was replaced. An unchanged roster leaves payroll
// and cap status untouched. Row-level failures are collected in the
// result and do not abort the reconcile.
func (t *Team) ReconcileRoster(ctx context.Context, rows []rosterfeed.PlayerRow) (*Result, error) {
	result := &Result{Team: t.name}

	contractsChanged := false
	candidate := make(map[string]*models.Player, len(rows))
	for _, row := range rows {
		result.TotalProcessed++
		p, created, resigned, err := t.upsertRow(ctx, row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to upsert player %s: %w", row.Name, err))
			continue
		}
		candidate[row.ID] = p
		if resigned {
			contractsChanged = true
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// A replaced contract moves payroll even when membership is stable,
	// so it must force the recompute.
	if !contractsChanged && sameMembership(t.roster, candidate) {
		result.Payroll = t.payroll
		result.CapStatus = t.capStatus
		log.Debug().Str("team", t.name).Msg("roster unchanged")
		return result, nil
	}

	t.roster = candidate
	t.recompute()
	result.Changed = true
	result.Payroll = t.payroll
	result.CapStatus = t.capStatus
	log.Info().
		Str("team", t.name).
		Int64("payroll", t.payroll).
		Str("cap_status", string(t.capStatus)).
		Msg("roster updated")
	return result, nil
}

// upsertRow creates the player if the registry does not know it, or
// applies the row's mutable attributes (and any contract change) to the
// existing record. Reports whether the player was created and whether an
// existing player's contract was replaced.
func (t *Team) upsertRow(ctx context.Context, row rosterfeed.PlayerRow) (*models.Player, bool, bool, error) {
	schedule := row.SalarySchedule()
	terms := models.ContractTerms{
		Duration:      len(schedule),
		SalaryPerYear: schedule,
		TeamOptions:   row.TeamOptions,
		PlayerOptions: row.PlayerOptions,
		Incentives:    row.Incentives,
	}

	existing, err := t.players.GetPlayerByExternalID(ctx, row.ID)
	if err != nil {
		p, created, err := t.players.CreatePlayer(ctx, player.CreatePlayerRequest{
			ExternalID:   row.ID,
			Name:         row.Name,
			Position:     row.Position,
			Team:         &t.name,
			Tradeable:    row.Tradeable,
			InjuryStatus: row.InjuryStatus,
			Contract:     &terms,
		})
		if err != nil {
			return nil, false, false, err
		}
		return p, created, false, nil
	}

	tradeable := row.IsTradeable()
	injury := ""
	if row.InjuryStatus != nil {
		injury = *row.InjuryStatus
	}
	upd := player.PlayerUpdate{
		Position:     &row.Position,
		Team:         &t.name,
		Tradeable:    &tradeable,
		InjuryStatus: &injury,
	}
	p, err := t.players.UpdatePlayer(ctx, existing.ID, upd)
	if err != nil {
		return nil, false, false, err
	}

	resigned := false
	if !sameSchedule(p.Contract, schedule) {
		p, err = t.players.ResignPlayer(ctx, p.ID, terms)
		if err != nil {
			return nil, false, false, err
		}
		resigned = true
	}
	return p, false, resigned, nil
}

// sameMembership compares rosters by membership only, not ordering.
func sameMembership(current, candidate map[string]*models.Player) bool {
	if len(current) != len(candidate) {
		return false
	}
	for externalID := range candidate {
		if _, ok := current[externalID]; !ok {
			return false
		}
	}
	return true
}

func sameSchedule(contract *models.Contract, schedule []int64) bool {
	if contract == nil {
		return len(schedule) == 0
	}
	if len(contract.SalaryPerYear) != len(schedule) {
		return false
	}
	for i, salary := range schedule {
		if contract.SalaryPerYear[i] != salary {
			return false
		}
	}
	return true
}

// AddDraftPick inserts (or overwrites) the pick at the (year, round)
// slot, owned by this team. An empty origin means the pick is the team's
// own.
func (t *Team) AddDraftPick(year, round int, origin string, protections map[string]int) (*models.DraftPick, error) {
	pick, err := models.NewDraftPick(year, round, t.name, origin, protections)
	if err != nil {
		return nil, fmt.Errorf("failed to add draft pick: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.picks[year] == nil {
		t.picks[year] = make(map[int]*models.DraftPick)
	}
	t.picks[year][round] = pick
	return pick, nil
}

// ConveyDraftPick reassigns the pick at (year, round) to another team,
// optionally replacing its protections. The pick's origin is untouched.
func (t *Team) ConveyDraftPick(year, round int, toTeam string, protections map[string]int) (*models.DraftPick, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pick := t.picks[year][round]
	if pick == nil {
		return nil, fmt.Errorf("%d round %d: %w", year, round, ErrPickNotFound)
	}
	pick.Reassign(toTeam)
	if protections != nil {
		pick.SetProtections(protections)
	}
	log.Info().
		Str("team", t.name).
		Str("to", toTeam).
		Int("year", year).
		Int("round", round).
		Msg("conveyed draft pick")
	return pick, nil
}

// ListDraftPicks returns all tracked picks ordered by year then round.
func (t *Team) ListDraftPicks() []*models.DraftPick {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []*models.DraftPick
	for _, rounds := range t.picks {
		for _, pick := range rounds {
			out = append(out, pick)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Round < out[j].Round
	})
	return out
}

// MarkDraftConsumed flags the picks of a completed draft year. Consumed
// picks stay in the inventory as an audit trail until pruned.
func (t *Team) MarkDraftConsumed(year int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	count := 0
	for _, pick := range t.picks[year] {
		if !pick.Consumed {
			pick.Consumed = true
			count++
		}
	}
	return count
}

// PruneDraftPicks drops all picks from drafts before the given year and
// returns how many were removed.
func (t *Team) PruneDraftPicks(beforeYear int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	count := 0
	for year, rounds := range t.picks {
		if year < beforeYear {
			count += len(rounds)
			delete(t.picks, year)
		}
	}
	return count
}

// AvailableExceptions returns the exception list for the team's current
// tier, honoring the Bi-Annual usage flag.
func (t *Team) AvailableExceptions() []cba.Exception {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rules.AvailableExceptions(t.capStatus, t.baeUsed)
}

// TradeLimitations returns the restriction list for the team's current
// tier.
func (t *Team) TradeLimitations() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rules.TradeLimitations(t.capStatus)
}

// Roster returns the current roster ordered by player name.
func (t *Team) Roster() []*models.Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*models.Player, 0, len(t.roster))
	for _, p := range t.roster {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Snapshot produces the plain-data view of the team for the presentation
// layer.
func (t *Team) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		Name:             t.name,
		Payroll:          t.payroll,
		CapStatus:        t.capStatus,
		CapStatusLabel:   t.capStatus.Label(),
		TradeLimitations: t.rules.TradeLimitations(t.capStatus),
	}
	for _, exception := range t.rules.AvailableExceptions(t.capStatus, t.baeUsed) {
		snap.Exceptions = append(snap.Exceptions, exception.Describe())
	}

	roster := make([]*models.Player, 0, len(t.roster))
	for _, p := range t.roster {
		roster = append(roster, p)
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].Name < roster[j].Name })
	for _, p := range roster {
		snap.Roster = append(snap.Roster, RosterEntry{
			Name:         p.Name,
			Position:     p.Position,
			Salary:       p.CurrentSalary(),
			Tradeable:    p.Tradeable,
			InjuryStatus: p.InjuryStatus,
		})
	}

	years := make([]int, 0, len(t.picks))
	for year := range t.picks {
		years = append(years, year)
	}
	sort.Ints(years)
	for _, year := range years {
		for round := 1; round <= 2; round++ {
			if pick := t.picks[year][round]; pick != nil {
				snap.DraftPicks = append(snap.DraftPicks, pick.Describe())
			}
		}
	}
	return snap
}
