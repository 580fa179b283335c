package port

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"fareast-server/internal/shared/database"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	logger := slog.With("component", "port_repository", "operation", "init")
	logger.Debug("Initializing port repository")
	return &Repository{db: db}
}

// GetAllPorts returns the static port catalog ordered by name.
func (r *Repository) GetAllPorts(ctx context.Context) ([]Port, error) {
	logger := slog.With("component", "port_repository", "operation", "get_all")
	logger.Debug("Retrieving all ports")

	query := `
		SELECT id, name, region, faction, base_security_level, connected_ports
		FROM ports
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query ports", "error", err)
		return nil, fmt.Errorf("failed to query ports: %w", err)
	}
	defer rows.Close()

	var ports []Port
	for rows.Next() {
		p, err := scanPort(rows.Scan)
		if err != nil {
			logger.Error("Failed to scan port row", "error", err)
			return nil, fmt.Errorf("failed to scan port: %w", err)
		}
		ports = append(ports, *p)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating ports: %w", err)
	}

	logger.Debug("Ports retrieved", "count", len(ports))
	return ports, nil
}

// GetPortByID returns one port, or nil if it does not exist.
func (r *Repository) GetPortByID(ctx context.Context, q database.Executor, id int) (*Port, error) {
	logger := slog.With("component", "port_repository", "operation", "get_by_id", "port_id", id)
	logger.Debug("Getting port by ID")

	query := `
		SELECT id, name, region, faction, base_security_level, connected_ports
		FROM ports
		WHERE id = $1
	`

	row := q.QueryRowContext(ctx, query, id)
	p, err := scanPort(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Port not found")
			return nil, nil
		}
		logger.Error("Database error getting port", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	logger.Debug("Port retrieved", "name", p.Name)
	return p, nil
}

func scanPort(scan func(dest ...interface{}) error) (*Port, error) {
	var p Port
	var connected []byte
	if err := scan(&p.ID, &p.Name, &p.Region, &p.Faction, &p.BaseSecurityLevel, &connected); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(connected, &p.ConnectedPorts); err != nil {
		return nil, fmt.Errorf("failed to decode connected ports: %w", err)
	}
	return &p, nil
}

// GetMarket returns the port's listings with good metadata joined in.
// Current prices are computed by the service, not stored.
func (r *Repository) GetMarket(ctx context.Context, portID int) ([]MarketEntry, error) {
	logger := slog.With("component", "port_repository", "operation", "get_market", "port_id", portID)
	logger.Debug("Retrieving market listings")

	query := `
		SELECT pg.id, pg.port_id, pg.good_id, g.name, g.category, g.volume_per_unit,
			pg.stock, pg.stock_capacity, pg.base_price
		FROM port_goods pg
		JOIN goods g ON pg.good_id = g.id
		WHERE pg.port_id = $1
		ORDER BY g.name
	`

	rows, err := r.db.QueryContext(ctx, query, portID)
	if err != nil {
		logger.Error("Failed to query market", "error", err)
		return nil, fmt.Errorf("failed to query market: %w", err)
	}
	defer rows.Close()

	var market []MarketEntry
	for rows.Next() {
		var entry MarketEntry
		err := rows.Scan(
			&entry.ID,
			&entry.PortID,
			&entry.GoodID,
			&entry.GoodName,
			&entry.Category,
			&entry.VolumePerUnit,
			&entry.Stock,
			&entry.StockCapacity,
			&entry.BasePrice,
		)
		if err != nil {
			logger.Error("Failed to scan market row", "error", err)
			return nil, fmt.Errorf("failed to scan market entry: %w", err)
		}
		market = append(market, entry)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating market: %w", err)
	}

	logger.Debug("Market retrieved", "listings", len(market))
	return market, nil
}

// InsertPriceSample appends one price observation for a port/good pair.
func (r *Repository) InsertPriceSample(ctx context.Context, portID, goodID int, price float64, stock int) error {
	logger := slog.With("component", "port_repository", "operation", "insert_price_sample", "port_id", portID, "good_id", goodID)
	logger.Debug("Recording price sample", "price", price, "stock", stock)

	query := `
		INSERT INTO price_history (port_id, good_id, price, stock)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, portID, goodID, price, stock); err != nil {
		logger.Error("Failed to insert price sample", "error", err)
		return fmt.Errorf("failed to insert price sample: %w", err)
	}
	return nil
}
