package player

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/hooptools/capledger/internal/models"
)

// PlayerRepository defines what the app layer needs from the store.
type PlayerRepository interface {
	Create(ctx context.Context, p *models.Player) error
	Get(ctx context.Context, id uuid.UUID) (*models.Player, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.Player, error)
	Update(ctx context.Context, id uuid.UUID, upd PlayerUpdate) (*models.Player, error)
	SetContract(ctx context.Context, id uuid.UUID, contract *models.Contract) (*models.Player, error)
	Delete(ctx context.Context, id uuid.UUID) bool
	List(ctx context.Context) []*models.Player
	BulkUpdate(ctx context.Context, upd PlayerUpdate) int
}

// App is the roster registry: the single source of truth for players,
// referenced by every team.
type App struct {
	repo  PlayerRepository
	clock clockwork.Clock
}

// NewApp creates a new roster registry App.
func NewApp(repo PlayerRepository, clock clockwork.Clock) *App {
	return &App{
		repo:  repo,
		clock: clock,
	}
}

// CreatePlayer registers a new player. Creation is idempotent on the
// external ID: if the player already exists the existing record is
// returned with created=false and no fields are touched.
func (a *App) CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, bool, error) {
	if err := a.validateCreatePlayerRequest(req); err != nil {
		return nil, false, fmt.Errorf("validation failed: %w", err)
	}

	if existing, err := a.repo.GetByExternalID(ctx, req.ExternalID); err == nil {
		return existing, false, nil
	}

	p := &models.Player{
		ID:         uuid.New(),
		ExternalID: req.ExternalID,
		Name:       req.Name,
		Position:   req.Position,
		Tradeable:  true,
		CreatedAt:  a.clock.Now(),
	}
	if req.Team != nil {
		team := *req.Team
		p.Team = &team
	}
	if req.Tradeable != nil {
		p.Tradeable = *req.Tradeable
	}
	if req.InjuryStatus != nil {
		status := *req.InjuryStatus
		p.InjuryStatus = &status
	}
	if req.Contract != nil {
		contract, err := models.NewContract(*req.Contract, a.clock.Now())
		if err != nil {
			return nil, false, fmt.Errorf("invalid contract for %s: %w", req.Name, err)
		}
		p.Contract = contract
	}

	if err := a.repo.Create(ctx, p); err != nil {
		return nil, false, fmt.Errorf("failed to create player: %w", err)
	}

	log.Debug().Str("player", p.Name).Str("external_id", p.ExternalID).Msg("created player")
	return p, true, nil
}

// GetPlayer retrieves a player by ID.
func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, err := a.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

// GetPlayerByExternalID retrieves a player by feed identifier.
func (a *App) GetPlayerByExternalID(ctx context.Context, externalID string) (*models.Player, error) {
	p, err := a.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by external ID: %w", err)
	}
	return p, nil
}

// UpdatePlayer merges the supplied fields into an existing player.
func (a *App) UpdatePlayer(ctx context.Context, id uuid.UUID, upd PlayerUpdate) (*models.Player, error) {
	p, err := a.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return p, nil
}

// ResignPlayer replaces the player's contract with a freshly validated
// one. A validation failure leaves the existing contract installed.
func (a *App) ResignPlayer(ctx context.Context, id uuid.UUID, terms models.ContractTerms) (*models.Player, error) {
	contract, err := models.NewContract(terms, a.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("invalid contract: %w", err)
	}

	p, err := a.repo.SetContract(ctx, id, contract)
	if err != nil {
		return nil, fmt.Errorf("failed to re-sign player: %w", err)
	}

	log.Debug().Str("player", p.Name).Int64("total_value", contract.TotalValue()).Msg("re-signed player")
	return p, nil
}

// RemovePlayer removes a player from the registry. Removal is idempotent
// and reports whether the player was present.
func (a *App) RemovePlayer(ctx context.Context, id uuid.UUID) bool {
	return a.repo.Delete(ctx, id)
}

// ListPlayers returns all registered players ordered by name.
func (a *App) ListPlayers(ctx context.Context) []*models.Player {
	return a.repo.List(ctx)
}

// BulkUpdate applies the same partial update to every registered player.
func (a *App) BulkUpdate(ctx context.Context, upd PlayerUpdate) int {
	count := a.repo.BulkUpdate(ctx, upd)
	if count > 0 {
		log.Debug().Int("players", count).Msg("bulk updated players")
	}
	return count
}

func (a *App) validateCreatePlayerRequest(req CreatePlayerRequest) error {
	if req.ExternalID == "" {
		return fmt.Errorf("external_id is required")
	}
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
