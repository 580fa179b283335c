// Package voyage implements travel between ports and the events that can
// interrupt it. A voyage is a single database transaction: the player row
// is locked, the event is rolled and resolved against the fleet, every
// effect is applied, and the voyage log row commits with the rest.
package voyage

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"fareast-server/internal/player"
	"fareast-server/internal/port"
	"fareast-server/internal/shared/config"
	"fareast-server/internal/shared/database"
	"fareast-server/internal/shared/errors"
)

type Engine struct {
	db         *database.DB
	repo       *Repository
	playerRepo *player.Repository
	portRepo   *port.Repository
	dice       Dice
	logger     *slog.Logger
}

func NewEngine(db *database.DB, repo *Repository, playerRepo *player.Repository, portRepo *port.Repository, dice Dice, logger *slog.Logger) *Engine {
	logger.Debug("Initializing voyage engine")

	return &Engine{
		db:         db,
		repo:       repo,
		playerRepo: playerRepo,
		portRepo:   portRepo,
		dice:       dice,
		logger:     logger,
	}
}

// Travel moves the player to an adjacent port, rolling for events along the
// way. Unknown or unreachable destinations are rejected without writing a
// voyage log row; every sailed voyage, blocked or not, is logged.
func (e *Engine) Travel(ctx context.Context, playerID, destinationPortID int) (*Result, error) {
	logger := e.logger.With(
		"component", "voyage_engine",
		"operation", "travel",
		"player_id", playerID,
		"destination_port_id", destinationPortID,
	)
	logger.Debug("Executing travel")

	tx, err := e.db.BeginTxContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin voyage transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := e.playerRepo.GetPlayerForUpdate(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NotFoundf("player %d not found", playerID)
	}

	origin, err := e.portRepo.GetPortByID(ctx, tx, p.CurrentPortID)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return nil, errors.WrapInternal("player location references missing port", fmt.Errorf("port %d", p.CurrentPortID))
	}

	destination, err := e.portRepo.GetPortByID(ctx, tx, destinationPortID)
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return nil, errors.NotFoundf("port %d not found", destinationPortID)
	}

	if destination.ID == origin.ID {
		return nil, errors.Validationf("already docked at %s", origin.Name)
	}
	if !slices.Contains(origin.ConnectedPorts, destination.Name) {
		return nil, errors.Conflictf("no direct route from %s to %s", origin.Name, destination.Name)
	}

	var outcome *Outcome
	event := RollEvent(e.dice,
		config.GlobalConfig.Game.BaseEventChance,
		origin.BaseSecurityLevel,
		destination.BaseSecurityLevel,
		p.PirateReputation,
	)
	if event != nil {
		fleet, err := e.playerRepo.GetShips(ctx, tx, playerID)
		if err != nil {
			return nil, err
		}

		resolved := ResolveEvent(e.dice, *event, fleet, p.LawfulReputation)
		outcome = &resolved

		if err := e.applyEffects(ctx, tx, playerID, resolved.Effects); err != nil {
			return nil, err
		}
	}

	arrived := outcome == nil || !outcome.Blocked
	if arrived {
		if err := e.playerRepo.SetCurrentPort(ctx, tx, playerID, destination.ID); err != nil {
			return nil, err
		}
	}

	if err := e.repo.InsertVoyageLog(ctx, tx, playerID, origin.ID, destination.ID, outcome); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit voyage: %w", err)
	}

	logger.Info("Voyage committed",
		"origin_port", origin.Name,
		"destination_port", destination.Name,
		"arrived", arrived,
		"event", outcome != nil,
	)

	return &Result{
		Success:         true,
		OriginPort:      origin.Name,
		DestinationPort: destination.Name,
		Arrived:         arrived,
		Event:           outcome,
	}, nil
}

func (e *Engine) applyEffects(ctx context.Context, tx database.Executor, playerID int, effects []Effect) error {
	for _, effect := range effects {
		switch effect.Kind {
		case EffectHullDamage:
			if err := e.playerRepo.SetShipHull(ctx, tx, effect.ShipID, effect.NewHull); err != nil {
				return err
			}
		case EffectMoneyGain:
			if err := e.playerRepo.AdjustMoney(ctx, tx, playerID, float64(effect.Amount)); err != nil {
				return err
			}
		case EffectMoneyLoss, EffectFine:
			if err := e.playerRepo.DeductMoneyFloored(ctx, tx, playerID, float64(effect.Amount)); err != nil {
				return err
			}
		}
	}
	return nil
}
