package trade

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"fareast-server/internal/shared/database"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	logger := slog.With("component", "trade_repository", "operation", "init")
	logger.Debug("Initializing trade repository")
	return &Repository{db: db}
}

// GetMarketEntryForUpdate locks the port listing for the transaction, or
// returns nil when the port does not trade the good. The row lock is what
// keeps concurrent trades at one port from losing stock updates.
func (r *Repository) GetMarketEntryForUpdate(ctx context.Context, q database.Executor, portID, goodID int) (*marketEntry, error) {
	logger := slog.With("component", "trade_repository", "operation", "lock_market_entry", "port_id", portID, "good_id", goodID)
	logger.Debug("Locking market entry")

	query := `
		SELECT pg.port_id, pg.good_id, pg.stock, pg.stock_capacity, pg.base_price, g.volume_per_unit
		FROM port_goods pg
		JOIN goods g ON pg.good_id = g.id
		WHERE pg.port_id = $1 AND pg.good_id = $2
		FOR UPDATE OF pg
	`

	var entry marketEntry
	err := q.QueryRowContext(ctx, query, portID, goodID).Scan(
		&entry.PortID,
		&entry.GoodID,
		&entry.Stock,
		&entry.StockCapacity,
		&entry.BasePrice,
		&entry.VolumePerUnit,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Market entry not found")
			return nil, nil
		}
		logger.Error("Database error locking market entry", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &entry, nil
}

// GetHoldingForUpdate locks the player's cargo row for the good, or returns
// nil when the player carries none of it.
func (r *Repository) GetHoldingForUpdate(ctx context.Context, q database.Executor, playerID, goodID int) (*holding, error) {
	logger := slog.With("component", "trade_repository", "operation", "lock_holding", "player_id", playerID, "good_id", goodID)
	logger.Debug("Locking cargo holding")

	query := `
		SELECT id, quantity
		FROM player_cargo
		WHERE player_id = $1 AND good_id = $2
		FOR UPDATE
	`

	var h holding
	err := q.QueryRowContext(ctx, query, playerID, goodID).Scan(&h.ID, &h.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("No holding for good")
			return nil, nil
		}
		logger.Error("Database error locking holding", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &h, nil
}

// AdjustStock applies a stock delta to a port listing. Buys may not take
// stock below zero; the engine validates first, so an unmatched update is
// reported as an error rather than silently committing.
func (r *Repository) AdjustStock(ctx context.Context, q database.Executor, portID, goodID, delta int) error {
	logger := slog.With("component", "trade_repository", "operation", "adjust_stock", "port_id", portID, "good_id", goodID, "delta", delta)
	logger.Debug("Adjusting port stock")

	result, err := q.ExecContext(ctx,
		"UPDATE port_goods SET stock = stock + $1 WHERE port_id = $2 AND good_id = $3 AND stock + $1 >= 0",
		delta, portID, goodID,
	)
	if err != nil {
		logger.Error("Failed to adjust stock", "error", err)
		return fmt.Errorf("failed to adjust stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		logger.Error("Stock adjustment rejected")
		return fmt.Errorf("stock adjustment of %d rejected for port %d good %d", delta, portID, goodID)
	}

	return nil
}

// AddCargo inserts or increments the player's holding for a good.
func (r *Repository) AddCargo(ctx context.Context, q database.Executor, playerID, goodID, quantity int) error {
	logger := slog.With("component", "trade_repository", "operation", "add_cargo", "player_id", playerID, "good_id", goodID, "quantity", quantity)
	logger.Debug("Adding cargo")

	query := `
		INSERT INTO player_cargo (player_id, good_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, good_id)
		DO UPDATE SET quantity = player_cargo.quantity + EXCLUDED.quantity
	`
	if _, err := q.ExecContext(ctx, query, playerID, goodID, quantity); err != nil {
		logger.Error("Failed to add cargo", "error", err)
		return fmt.Errorf("failed to add cargo: %w", err)
	}
	return nil
}

// RemoveCargo decrements a holding, deleting the row when it reaches zero.
func (r *Repository) RemoveCargo(ctx context.Context, q database.Executor, holdingID, quantity int) error {
	logger := slog.With("component", "trade_repository", "operation", "remove_cargo", "holding_id", holdingID, "quantity", quantity)
	logger.Debug("Removing cargo")

	result, err := q.ExecContext(ctx,
		"UPDATE player_cargo SET quantity = quantity - $1 WHERE id = $2 AND quantity >= $1",
		quantity, holdingID,
	)
	if err != nil {
		logger.Error("Failed to remove cargo", "error", err)
		return fmt.Errorf("failed to remove cargo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		logger.Error("Cargo removal rejected")
		return fmt.Errorf("cargo removal of %d rejected for holding %d", quantity, holdingID)
	}

	if _, err := q.ExecContext(ctx, "DELETE FROM player_cargo WHERE id = $1 AND quantity = 0", holdingID); err != nil {
		logger.Error("Failed to delete empty holding", "error", err)
		return fmt.Errorf("failed to delete empty holding: %w", err)
	}

	return nil
}

// InsertJournal appends the immutable trade record.
func (r *Repository) InsertJournal(ctx context.Context, q database.Executor, playerID, portID, goodID int, plan Plan) error {
	logger := slog.With(
		"component", "trade_repository",
		"operation", "insert_journal",
		"player_id", playerID,
		"port_id", portID,
		"good_id", goodID,
		"direction", plan.Direction,
	)
	logger.Debug("Recording trade journal entry")

	query := `
		INSERT INTO trade_journal (player_id, port_id, good_id, transaction_type, quantity, unit_price, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := q.ExecContext(ctx, query, playerID, portID, goodID, string(plan.Direction), plan.Quantity, plan.UnitPrice, plan.Total); err != nil {
		logger.Error("Failed to insert journal entry", "error", err)
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}
