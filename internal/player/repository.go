package player

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hooptools/capledger/internal/models"
)

// Repository is the in-memory player store backing the roster registry.
// It is the authoritative index of all players; teams hold non-owning
// references into it. A single RWMutex serializes conflicting writes on
// the same key while letting reads proceed concurrently.
type Repository struct {
	mu         sync.RWMutex
	players    map[uuid.UUID]*models.Player
	byExternal map[string]uuid.UUID
}

// NewRepository creates an empty Repository.
func NewRepository() *Repository {
	return &Repository{
		players:    make(map[uuid.UUID]*models.Player),
		byExternal: make(map[string]uuid.UUID),
	}
}

// Create inserts a player. The external ID must be unique.
func (r *Repository) Create(ctx context.Context, p *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byExternal[p.ExternalID]; ok {
		return fmt.Errorf("external ID %s already registered", p.ExternalID)
	}
	r.players[p.ID] = p
	r.byExternal[p.ExternalID] = p.ID
	return nil
}

// Get retrieves a player by ID.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return nil, fmt.Errorf("id %s: %w", id, ErrPlayerNotFound)
	}
	return p, nil
}

// GetByExternalID retrieves a player by feed identifier.
func (r *Repository) GetByExternalID(ctx context.Context, externalID string) (*models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byExternal[externalID]
	if !ok {
		return nil, fmt.Errorf("external ID %s: %w", externalID, ErrPlayerNotFound)
	}
	return r.players[id], nil
}

// Update merges the supplied fields into an existing player.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, upd PlayerUpdate) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return nil, fmt.Errorf("id %s: %w", id, ErrPlayerNotFound)
	}
	applyUpdate(p, upd)
	return p, nil
}

// SetContract installs a replacement contract on an existing player.
func (r *Repository) SetContract(ctx context.Context, id uuid.UUID, contract *models.Contract) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return nil, fmt.Errorf("id %s: %w", id, ErrPlayerNotFound)
	}
	p.Contract = contract
	return p, nil
}

// Delete removes a player, reporting whether it was present. Removing an
// absent player is not an error.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return false
	}
	delete(r.byExternal, p.ExternalID)
	delete(r.players, id)
	return true
}

// List returns all players ordered by name.
func (r *Repository) List(ctx context.Context) []*models.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BulkUpdate applies the same partial update to every player and returns
// the number touched.
func (r *Repository) BulkUpdate(ctx context.Context, upd PlayerUpdate) int {
	if upd.Empty() {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		applyUpdate(p, upd)
	}
	return len(r.players)
}

func applyUpdate(p *models.Player, upd PlayerUpdate) {
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Position != nil {
		p.Position = *upd.Position
	}
	if upd.Team != nil {
		if *upd.Team == "" {
			p.Team = nil
		} else {
			team := *upd.Team
			p.Team = &team
		}
	}
	if upd.Tradeable != nil {
		p.Tradeable = *upd.Tradeable
	}
	if upd.InjuryStatus != nil {
		if *upd.InjuryStatus == "" {
			p.InjuryStatus = nil
		} else {
			status := *upd.InjuryStatus
			p.InjuryStatus = &status
		}
	}
}
