package player

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fareast-server/internal/cargo"
	"fareast-server/internal/shared/config"
	"fareast-server/internal/shared/database"
	"fareast-server/internal/shared/errors"
)

type Service struct {
	db     *database.DB
	repo   *Repository
	logger *slog.Logger
}

func NewService(db *database.DB, repo *Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing player service")

	return &Service{
		db:     db,
		repo:   repo,
		logger: logger,
	}
}

// CreatePlayer onboards a new captain: a player row plus the starting ship,
// committed together. The starting port and purse come from game config.
func (s *Service) CreatePlayer(ctx context.Context, name string) (*State, error) {
	logger := s.logger.With("component", "player_service", "operation", "create_player", "name", name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validation("player name is required")
	}

	logger.Info("Creating new player")

	game := config.GlobalConfig.Game

	tx, err := s.db.BeginTxContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin onboarding transaction: %w", err)
	}
	defer tx.Rollback()

	created, err := s.repo.CreatePlayer(ctx, tx, name, game.StartingPortID, game.StartingMoney)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.CreateShip(ctx, tx, created.ID, DefaultStartingShip); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit onboarding transaction: %w", err)
	}

	logger.Info("Player onboarded", "player_id", created.ID)

	return s.GetPlayerState(ctx, created.ID)
}

// GetPlayerState assembles the full read model: player, fleet, cargo and
// the derived cargo ledger totals.
func (s *Service) GetPlayerState(ctx context.Context, playerID int) (*State, error) {
	logger := s.logger.With("component", "player_service", "operation", "get_state", "player_id", playerID)
	logger.Debug("Assembling player state")

	p, err := s.repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NotFoundf("player %d not found", playerID)
	}

	ships, err := s.repo.GetShips(ctx, s.db, playerID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.repo.GetCargo(ctx, s.db, playerID)
	if err != nil {
		return nil, err
	}

	ledger := buildLedger(ships, holdings)

	return &State{
		Player:             *p,
		Ships:              ships,
		Cargo:              holdings,
		TotalCargoUsed:     ledger.Used,
		TotalCargoCapacity: ledger.Total,
	}, nil
}

func buildLedger(ships []Ship, holdings []CargoItem) cargo.Ledger {
	capacities := make([]int, 0, len(ships))
	for _, ship := range ships {
		capacities = append(capacities, ship.MaxCargo)
	}

	items := make([]cargo.Holding, 0, len(holdings))
	for _, h := range holdings {
		items = append(items, cargo.Holding{
			GoodID:        h.GoodID,
			Quantity:      h.Quantity,
			VolumePerUnit: h.VolumePerUnit,
		})
	}

	return cargo.NewLedger(capacities, items)
}
