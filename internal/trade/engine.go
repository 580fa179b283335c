// Package trade implements the atomic buy/sell engine. Each operation is a
// single database transaction: the player row is locked first, then the
// market row, all validation runs against the locked state, and either
// every delta commits (money, stock, cargo, journal) or none do.
package trade

import (
	"context"
	"fmt"
	"log/slog"

	"fareast-server/internal/cargo"
	"fareast-server/internal/player"
	"fareast-server/internal/shared/database"
	"fareast-server/internal/shared/errors"
)

type Engine struct {
	db         *database.DB
	repo       *Repository
	playerRepo *player.Repository
	logger     *slog.Logger
}

func NewEngine(db *database.DB, repo *Repository, playerRepo *player.Repository, logger *slog.Logger) *Engine {
	logger.Debug("Initializing trade engine")

	return &Engine{
		db:         db,
		repo:       repo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// Buy purchases quantity units of a good at the player's current port.
func (e *Engine) Buy(ctx context.Context, playerID, goodID, quantity int) (*Transaction, error) {
	logger := e.logger.With(
		"component", "trade_engine",
		"operation", "buy",
		"player_id", playerID,
		"good_id", goodID,
		"quantity", quantity,
	)
	logger.Debug("Executing buy")

	tx, err := e.db.BeginTxContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin trade transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := e.playerRepo.GetPlayerForUpdate(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NotFoundf("player %d not found", playerID)
	}

	entry, err := e.repo.GetMarketEntryForUpdate(ctx, tx, p.CurrentPortID, goodID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.NotFoundf("good %d not available at this port", goodID)
	}

	ledger, err := e.loadLedger(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}

	plan, err := PlanBuy(BuyInput{
		Quantity:      quantity,
		Stock:         entry.Stock,
		StockCapacity: entry.StockCapacity,
		BasePrice:     entry.BasePrice,
		VolumePerUnit: entry.VolumePerUnit,
		PlayerMoney:   p.Money,
		Ledger:        ledger,
	})
	if err != nil {
		return nil, err
	}

	if err := e.playerRepo.AdjustMoney(ctx, tx, playerID, plan.MoneyDelta); err != nil {
		return nil, err
	}
	if err := e.repo.AdjustStock(ctx, tx, entry.PortID, goodID, plan.StockDelta); err != nil {
		return nil, err
	}
	if err := e.repo.AddCargo(ctx, tx, playerID, goodID, plan.CargoDelta); err != nil {
		return nil, err
	}
	if err := e.repo.InsertJournal(ctx, tx, playerID, entry.PortID, goodID, plan); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit buy: %w", err)
	}

	logger.Info("Buy committed",
		"port_id", entry.PortID,
		"unit_price", plan.UnitPrice,
		"total_cost", plan.Total,
	)

	return &Transaction{
		Type:        DirectionBuy,
		GoodID:      goodID,
		Quantity:    plan.Quantity,
		UnitPrice:   plan.UnitPrice,
		TotalAmount: plan.Total,
	}, nil
}

// Sell sells quantity units from the player's cargo to their current port.
func (e *Engine) Sell(ctx context.Context, playerID, goodID, quantity int) (*Transaction, error) {
	logger := e.logger.With(
		"component", "trade_engine",
		"operation", "sell",
		"player_id", playerID,
		"good_id", goodID,
		"quantity", quantity,
	)
	logger.Debug("Executing sell")

	tx, err := e.db.BeginTxContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin trade transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := e.playerRepo.GetPlayerForUpdate(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NotFoundf("player %d not found", playerID)
	}

	h, err := e.repo.GetHoldingForUpdate(ctx, tx, playerID, goodID)
	if err != nil {
		return nil, err
	}

	held := 0
	holdingID := 0
	if h != nil {
		held = h.Quantity
		holdingID = h.ID
	}
	if quantity > 0 && quantity > held {
		return nil, errors.Conflictf("insufficient cargo: %d available", held)
	}

	entry, err := e.repo.GetMarketEntryForUpdate(ctx, tx, p.CurrentPortID, goodID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.Conflict("port does not trade this good")
	}

	plan, err := PlanSell(SellInput{
		Quantity:      quantity,
		Held:          held,
		Stock:         entry.Stock,
		StockCapacity: entry.StockCapacity,
		BasePrice:     entry.BasePrice,
	})
	if err != nil {
		return nil, err
	}

	if err := e.playerRepo.AdjustMoney(ctx, tx, playerID, plan.MoneyDelta); err != nil {
		return nil, err
	}
	if err := e.repo.AdjustStock(ctx, tx, entry.PortID, goodID, plan.StockDelta); err != nil {
		return nil, err
	}
	if err := e.repo.RemoveCargo(ctx, tx, holdingID, plan.Quantity); err != nil {
		return nil, err
	}
	if err := e.repo.InsertJournal(ctx, tx, playerID, entry.PortID, goodID, plan); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sell: %w", err)
	}

	logger.Info("Sell committed",
		"port_id", entry.PortID,
		"unit_price", plan.UnitPrice,
		"total_revenue", plan.Total,
	)

	return &Transaction{
		Type:        DirectionSell,
		GoodID:      goodID,
		Quantity:    plan.Quantity,
		UnitPrice:   plan.UnitPrice,
		TotalAmount: plan.Total,
	}, nil
}

func (e *Engine) loadLedger(ctx context.Context, q database.Executor, playerID int) (cargo.Ledger, error) {
	ships, err := e.playerRepo.GetShips(ctx, q, playerID)
	if err != nil {
		return cargo.Ledger{}, err
	}

	holdings, err := e.playerRepo.GetCargo(ctx, q, playerID)
	if err != nil {
		return cargo.Ledger{}, err
	}

	capacities := make([]int, 0, len(ships))
	for _, ship := range ships {
		capacities = append(capacities, ship.MaxCargo)
	}

	items := make([]cargo.Holding, 0, len(holdings))
	for _, item := range holdings {
		items = append(items, cargo.Holding{
			GoodID:        item.GoodID,
			Quantity:      item.Quantity,
			VolumePerUnit: item.VolumePerUnit,
		})
	}

	return cargo.NewLedger(capacities, items), nil
}
