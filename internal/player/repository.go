package player

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
	logger := slog.With("component", "player_repository", "operation", "init")
	logger.Debug("Initializing player repository")
	return &Repository{db: db}
}

// GetPlayerByID returns a player with the current port name resolved, or
// nil when no player exists with that id.
func (r *Repository) GetPlayerByID(ctx context.Context, id int) (*Player, error) {
	return getPlayer(ctx, r.db, id, false)
}

// GetPlayerForUpdate locks the player row for the duration of the enclosing
// transaction. Trade and voyage commits lock the player first so concurrent
// requests for one player serialize instead of interleaving.
func (r *Repository) GetPlayerForUpdate(ctx context.Context, q database.Executor, id int) (*Player, error) {
	return getPlayer(ctx, q, id, true)
}

func getPlayer(ctx context.Context, q database.Executor, id int, forUpdate bool) (*Player, error) {
	logger := slog.With("component", "player_repository", "operation", "get_by_id", "player_id", id)
	logger.Debug("Getting player by ID", "for_update", forUpdate)

	query := `
		SELECT p.id, p.name, p.money, p.current_port_id, ports.name, p.lawful_reputation, p.pirate_reputation, p.created_at
		FROM players p
		JOIN ports ON p.current_port_id = ports.id
		WHERE p.id = $1
	`
	if forUpdate {
		query += " FOR UPDATE OF p"
	}

	var player Player
	err := q.QueryRowContext(ctx, query, id).Scan(
		&player.ID,
		&player.Name,
		&player.Money,
		&player.CurrentPortID,
		&player.CurrentPortName,
		&player.LawfulReputation,
		&player.PirateReputation,
		&player.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("No player found with ID")
			return nil, nil
		}
		logger.Error("Database error getting player by ID", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	logger.Debug("Found player by ID", "name", player.Name)
	return &player, nil
}

// CreatePlayer inserts a player row within the given transaction.
func (r *Repository) CreatePlayer(ctx context.Context, q database.Executor, name string, portID int, money float64) (*Player, error) {
	logger := slog.With(
		"component", "player_repository",
		"operation", "create",
		"name", name,
		"starting_port_id", portID,
	)
	logger.Info("Creating new player")

	query := `
		INSERT INTO players (name, current_port_id, money, lawful_reputation, pirate_reputation)
		VALUES ($1, $2, $3, 50.0, 0.0)
		RETURNING id, name, money, current_port_id, lawful_reputation, pirate_reputation, created_at
	`

	var player Player
	err := q.QueryRowContext(ctx, query, name, portID, money).Scan(
		&player.ID,
		&player.Name,
		&player.Money,
		&player.CurrentPortID,
		&player.LawfulReputation,
		&player.PirateReputation,
		&player.CreatedAt,
	)

	if err != nil {
		logger.Error("Failed to create player", "error", err)
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	logger.Info("Player created successfully", "player_id", player.ID)
	return &player, nil
}

// CreateShip inserts a ship at full hull within the given transaction.
func (r *Repository) CreateShip(ctx context.Context, q database.Executor, playerID int, ship StartingShip) (*Ship, error) {
	logger := slog.With(
		"component", "player_repository",
		"operation", "create_ship",
		"player_id", playerID,
		"ship_type", ship.Type,
	)
	logger.Debug("Creating ship")

	query := `
		INSERT INTO ships (player_id, name, type, max_cargo, speed, hull_strength, current_hull, guns)
		VALUES ($1, $2, $3, $4, $5, $6, $6, $7)
		RETURNING id, player_id, name, type, max_cargo, speed, hull_strength, current_hull, guns,
			armor_level, sail_rigging_level, cargo_mods_level, gun_mods_level
	`

	var created Ship
	err := q.QueryRowContext(ctx, query,
		playerID, ship.Name, ship.Type, ship.MaxCargo, ship.Speed, ship.HullStrength, ship.Guns,
	).Scan(
		&created.ID,
		&created.PlayerID,
		&created.Name,
		&created.Type,
		&created.MaxCargo,
		&created.Speed,
		&created.HullStrength,
		&created.CurrentHull,
		&created.Guns,
		&created.ArmorLevel,
		&created.SailRiggingLevel,
		&created.CargoModsLevel,
		&created.GunModsLevel,
	)

	if err != nil {
		logger.Error("Failed to create ship", "error", err)
		return nil, fmt.Errorf("failed to create ship: %w", err)
	}

	logger.Debug("Ship created", "ship_id", created.ID)
	return &created, nil
}

// GetShips returns the player's fleet.
func (r *Repository) GetShips(ctx context.Context, q database.Executor, playerID int) ([]Ship, error) {
	logger := slog.With("component", "player_repository", "operation", "get_ships", "player_id", playerID)
	logger.Debug("Retrieving fleet")

	query := `
		SELECT id, player_id, name, type, max_cargo, speed, hull_strength, current_hull, guns,
			armor_level, sail_rigging_level, cargo_mods_level, gun_mods_level
		FROM ships
		WHERE player_id = $1
		ORDER BY id
	`

	rows, err := q.QueryContext(ctx, query, playerID)
	if err != nil {
		logger.Error("Failed to query ships", "error", err)
		return nil, fmt.Errorf("failed to query ships: %w", err)
	}
	defer rows.Close()

	var ships []Ship
	for rows.Next() {
		var ship Ship
		err := rows.Scan(
			&ship.ID,
			&ship.PlayerID,
			&ship.Name,
			&ship.Type,
			&ship.MaxCargo,
			&ship.Speed,
			&ship.HullStrength,
			&ship.CurrentHull,
			&ship.Guns,
			&ship.ArmorLevel,
			&ship.SailRiggingLevel,
			&ship.CargoModsLevel,
			&ship.GunModsLevel,
		)
		if err != nil {
			logger.Error("Failed to scan ship row", "error", err)
			return nil, fmt.Errorf("failed to scan ship: %w", err)
		}
		ships = append(ships, ship)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating ships: %w", err)
	}

	logger.Debug("Fleet retrieved", "count", len(ships))
	return ships, nil
}

// GetCargo returns the player's holdings with good names and unit volumes.
func (r *Repository) GetCargo(ctx context.Context, q database.Executor, playerID int) ([]CargoItem, error) {
	logger := slog.With("component", "player_repository", "operation", "get_cargo", "player_id", playerID)
	logger.Debug("Retrieving cargo holdings")

	query := `
		SELECT pc.id, pc.player_id, pc.good_id, g.name, pc.quantity, g.volume_per_unit
		FROM player_cargo pc
		JOIN goods g ON pc.good_id = g.id
		WHERE pc.player_id = $1
		ORDER BY g.name
	`

	rows, err := q.QueryContext(ctx, query, playerID)
	if err != nil {
		logger.Error("Failed to query cargo", "error", err)
		return nil, fmt.Errorf("failed to query cargo: %w", err)
	}
	defer rows.Close()

	var cargo []CargoItem
	for rows.Next() {
		var item CargoItem
		err := rows.Scan(
			&item.ID,
			&item.PlayerID,
			&item.GoodID,
			&item.GoodName,
			&item.Quantity,
			&item.VolumePerUnit,
		)
		if err != nil {
			logger.Error("Failed to scan cargo row", "error", err)
			return nil, fmt.Errorf("failed to scan cargo: %w", err)
		}
		cargo = append(cargo, item)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating cargo: %w", err)
	}

	logger.Debug("Cargo retrieved", "holdings", len(cargo))
	return cargo, nil
}

// AdjustMoney applies a delta to the player's funds within a transaction.
// Negative balances are a bug in the calling engine, so the update refuses
// to go below zero and the caller treats affected=0 as a failed commit.
func (r *Repository) AdjustMoney(ctx context.Context, q database.Executor, playerID int, delta float64) error {
	logger := slog.With("component", "player_repository", "operation", "adjust_money", "player_id", playerID, "delta", delta)
	logger.Debug("Adjusting player money")

	result, err := q.ExecContext(ctx,
		"UPDATE players SET money = money + $1 WHERE id = $2 AND money + $1 >= 0",
		delta, playerID,
	)
	if err != nil {
		logger.Error("Failed to adjust money", "error", err)
		return fmt.Errorf("failed to adjust money: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		logger.Error("Money adjustment would go negative")
		return fmt.Errorf("money adjustment of %.2f rejected for player %d", delta, playerID)
	}

	return nil
}

// DeductMoneyFloored subtracts up to amount from the player's funds,
// flooring the balance at zero. Pirate losses and patrol fines use this:
// the nominal amount is logged even when the purse cannot cover it.
func (r *Repository) DeductMoneyFloored(ctx context.Context, q database.Executor, playerID int, amount float64) error {
	logger := slog.With("component", "player_repository", "operation", "deduct_money_floored", "player_id", playerID, "amount", amount)
	logger.Debug("Deducting player money with zero floor")

	query := `
		UPDATE players
		SET money = CASE WHEN money < $1 THEN 0 ELSE money - $1 END
		WHERE id = $2
	`
	if _, err := q.ExecContext(ctx, query, amount, playerID); err != nil {
		logger.Error("Failed to deduct money", "error", err)
		return fmt.Errorf("failed to deduct money: %w", err)
	}
	return nil
}

// SetCurrentPort moves the player within a transaction.
func (r *Repository) SetCurrentPort(ctx context.Context, q database.Executor, playerID, portID int) error {
	logger := slog.With("component", "player_repository", "operation", "set_current_port", "player_id", playerID, "port_id", portID)
	logger.Debug("Updating player location")

	if _, err := q.ExecContext(ctx, "UPDATE players SET current_port_id = $1 WHERE id = $2", portID, playerID); err != nil {
		logger.Error("Failed to update player location", "error", err)
		return fmt.Errorf("failed to update player location: %w", err)
	}
	return nil
}

// SetShipHull updates one ship's hull within a transaction.
func (r *Repository) SetShipHull(ctx context.Context, q database.Executor, shipID, hull int) error {
	logger := slog.With("component", "player_repository", "operation", "set_ship_hull", "ship_id", shipID, "hull", hull)
	logger.Debug("Updating ship hull")

	if _, err := q.ExecContext(ctx, "UPDATE ships SET current_hull = $1 WHERE id = $2", hull, shipID); err != nil {
		logger.Error("Failed to update ship hull", "error", err)
		return fmt.Errorf("failed to update ship hull: %w", err)
	}
	return nil
}
