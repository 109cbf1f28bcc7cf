// Package league holds the league registry: the keyed store of all teams
// and the fan-out that refreshes every roster from the external feed.
package league

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hooptools/capledger/internal/events"
	"github.com/hooptools/capledger/internal/rosterfeed"
	"github.com/hooptools/capledger/internal/team"
)

// defaultMaxConcurrent bounds the per-team worker fan-out of a sweep.
const defaultMaxConcurrent = 8

// TeamFailure records one team whose refresh failed during a sweep.
type TeamFailure struct {
	Team string `json:"team"`
	Err  error  `json:"error"`
}

// SweepResult summarizes a RefreshAll pass over the league.
type SweepResult struct {
	Teams     int            `json:"teams"`
	Updated   int            `json:"updated"`
	Unchanged int            `json:"unchanged"`
	Failed    []TeamFailure  `json:"failed,omitempty"`
	Results   []*team.Result `json:"results,omitempty"`
}

// App is the league registry.
type App struct {
	source        rosterfeed.Source
	publisher     events.Publisher
	clock         clockwork.Clock
	maxConcurrent int

	mu    sync.RWMutex
	teams map[string]*team.Team
}

// NewApp creates a league registry over the given roster source.
func NewApp(source rosterfeed.Source, publisher events.Publisher, clock clockwork.Clock) *App {
	return &App{
		source:        source,
		publisher:     publisher,
		clock:         clock,
		maxConcurrent: defaultMaxConcurrent,
		teams:         make(map[string]*team.Team),
	}
}

// AddTeam registers a team. Registration is idempotent on the team name:
// an already-registered team is returned with added=false.
func (a *App) AddTeam(t *team.Team) (*team.Team, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.teams[t.Name()]; ok {
		return existing, false
	}
	a.teams[t.Name()] = t
	log.Info().Str("team", t.Name()).Msg("added team")
	return t, true
}

// GetTeam retrieves a team by name.
func (a *App) GetTeam(name string) (*team.Team, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.teams[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrTeamNotFound)
	}
	return t, nil
}

// RemoveTeam removes a team, reporting whether it was present. Removing
// an absent team is not an error, the first or any repeated time.
func (a *App) RemoveTeam(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.teams[name]; !ok {
		return false
	}
	delete(a.teams, name)
	log.Info().Str("team", name).Msg("removed team")
	return true
}

// ListTeams returns all registered teams ordered by name.
func (a *App) ListTeams() []*team.Team {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*team.Team, 0, len(a.teams))
	for _, t := range a.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// RefreshAll fetches and reconciles every team's roster, fanning the work
// out across a bounded worker group. Teams are independent aggregates, so
// one team's fetch or reconcile failure is recorded and skipped; it never
// aborts the sweep. A TeamUpdated event is published for each team whose
// roster actually changed.
func (a *App) RefreshAll(ctx context.Context) *SweepResult {
	teams := a.ListTeams()

	sweep := &SweepResult{Teams: len(teams)}
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(a.maxConcurrent)
	for _, t := range teams {
		t := t
		g.Go(func() error {
			result, err := a.refreshTeam(ctx, t)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				sweep.Failed = append(sweep.Failed, TeamFailure{Team: t.Name(), Err: err})
				return nil
			}
			sweep.Results = append(sweep.Results, result)
			if result.Changed {
				sweep.Updated++
			} else {
				sweep.Unchanged++
			}
			return nil
		})
	}
	g.Wait()

	log.Info().
		Int("teams", sweep.Teams).
		Int("updated", sweep.Updated).
		Int("unchanged", sweep.Unchanged).
		Int("failed", len(sweep.Failed)).
		Msg("league refresh complete")
	return sweep
}

func (a *App) refreshTeam(ctx context.Context, t *team.Team) (*team.Result, error) {
	rows, err := a.source.FetchRoster(ctx, t.Name())
	if err != nil {
		log.Warn().Err(err).Str("team", t.Name()).Msg("roster fetch failed, skipping team")
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}

	result, err := t.ReconcileRoster(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile roster: %w", err)
	}

	if result.Changed {
		event := events.TeamUpdated{
			Team:      result.Team,
			Payroll:   result.Payroll,
			CapStatus: string(result.CapStatus),
			Created:   result.Created,
			Updated:   result.Updated,
			At:        a.clock.Now(),
		}
		if err := a.publisher.PublishTeamUpdated(ctx, event); err != nil {
			log.Warn().Err(err).Str("team", result.Team).Msg("failed to publish team update")
		}
	}
	return result, nil
}
