package quartermaster

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"fareast-server/internal/shared/database"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	logger := slog.With("component", "quartermaster_repository", "operation", "init")
	logger.Debug("Initializing quartermaster repository")
	return &Repository{db: db}
}

// GetTradeJournal returns a player's trades, newest first.
func (r *Repository) GetTradeJournal(ctx context.Context, playerID int, filter JournalFilter) ([]TradeRecord, error) {
	logger := slog.With("component", "quartermaster_repository", "operation", "get_trade_journal", "player_id", playerID)
	logger.Debug("Querying trade journal", "limit", filter.Limit, "offset", filter.Offset)

	conditions := []string{"tj.player_id = $1"}
	args := []interface{}{playerID}

	if filter.GoodID > 0 {
		args = append(args, filter.GoodID)
		conditions = append(conditions, fmt.Sprintf("tj.good_id = $%d", len(args)))
	}
	if filter.PortID > 0 {
		args = append(args, filter.PortID)
		conditions = append(conditions, fmt.Sprintf("tj.port_id = $%d", len(args)))
	}
	if filter.TransactionType != "" {
		args = append(args, filter.TransactionType)
		conditions = append(conditions, fmt.Sprintf("tj.transaction_type = $%d", len(args)))
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT tj.id, tj.player_id, tj.port_id, ports.name, tj.good_id, g.name,
			tj.transaction_type, tj.quantity, tj.unit_price, tj.total_amount, tj.timestamp
		FROM trade_journal tj
		JOIN ports ON tj.port_id = ports.id
		JOIN goods g ON tj.good_id = g.id
		WHERE %s
		ORDER BY tj.timestamp DESC, tj.id DESC
		LIMIT $%d OFFSET $%d
	`, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query trade journal", "error", err)
		return nil, fmt.Errorf("failed to query trade journal: %w", err)
	}
	defer rows.Close()

	var trades []TradeRecord
	for rows.Next() {
		var tr TradeRecord
		err := rows.Scan(
			&tr.ID,
			&tr.PlayerID,
			&tr.PortID,
			&tr.PortName,
			&tr.GoodID,
			&tr.GoodName,
			&tr.TransactionType,
			&tr.Quantity,
			&tr.UnitPrice,
			&tr.TotalAmount,
			&tr.Timestamp,
		)
		if err != nil {
			logger.Error("Failed to scan trade record", "error", err)
			return nil, fmt.Errorf("failed to scan trade record: %w", err)
		}
		trades = append(trades, tr)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating trade journal: %w", err)
	}

	logger.Debug("Trade journal retrieved", "count", len(trades))
	return trades, nil
}

// GetTradeStats aggregates a player's entire journal, ignoring paging.
func (r *Repository) GetTradeStats(ctx context.Context, playerID int) (*TradeStats, error) {
	logger := slog.With("component", "quartermaster_repository", "operation", "get_trade_stats", "player_id", playerID)
	logger.Debug("Aggregating trade stats")

	var stats TradeStats
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE transaction_type = 'buy'),
			COUNT(*) FILTER (WHERE transaction_type = 'sell'),
			COALESCE(SUM(total_amount) FILTER (WHERE transaction_type = 'buy'), 0),
			COALESCE(SUM(total_amount) FILTER (WHERE transaction_type = 'sell'), 0)
		FROM trade_journal
		WHERE player_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, playerID).Scan(
		&stats.TotalTrades,
		&stats.TotalBuys,
		&stats.TotalSells,
		&stats.TotalSpent,
		&stats.TotalEarned,
	)
	if err != nil {
		logger.Error("Failed to aggregate trade stats", "error", err)
		return nil, fmt.Errorf("failed to aggregate trade stats: %w", err)
	}
	stats.NetProfit = stats.TotalEarned - stats.TotalSpent

	mostTraded, err := r.topGood(ctx, playerID, "SUM(tj.quantity)")
	if err != nil {
		return nil, err
	}
	stats.MostTradedGood = mostTraded

	mostProfitable, err := r.topGood(ctx, playerID,
		"SUM(CASE WHEN tj.transaction_type = 'sell' THEN tj.total_amount ELSE -tj.total_amount END)")
	if err != nil {
		return nil, err
	}
	stats.MostProfitableGood = mostProfitable

	return &stats, nil
}

func (r *Repository) topGood(ctx context.Context, playerID int, metric string) (string, error) {
	query := fmt.Sprintf(`
		SELECT g.name
		FROM trade_journal tj
		JOIN goods g ON tj.good_id = g.id
		WHERE tj.player_id = $1
		GROUP BY g.name
		ORDER BY %s DESC
		LIMIT 1
	`, metric)

	var name string
	err := r.db.QueryRowContext(ctx, query, playerID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to rank goods: %w", err)
	}
	return name, nil
}

// GetVoyageLogs returns a player's voyages, newest first.
func (r *Repository) GetVoyageLogs(ctx context.Context, playerID int, filter VoyageFilter) ([]VoyageLogEntry, error) {
	logger := slog.With("component", "quartermaster_repository", "operation", "get_voyage_logs", "player_id", playerID)
	logger.Debug("Querying voyage logs", "limit", filter.Limit, "offset", filter.Offset)

	conditions := []string{"vl.player_id = $1"}
	args := []interface{}{playerID}

	if filter.EventType != "" {
		args = append(args, filter.EventType)
		conditions = append(conditions, fmt.Sprintf("vl.event_type = $%d", len(args)))
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT vl.id, vl.player_id, vl.origin_port_id, op.name, vl.destination_port_id, dp.name,
			vl.event_type, vl.description, vl.damage_taken, vl.money_change, vl.timestamp
		FROM voyage_logs vl
		JOIN ports op ON vl.origin_port_id = op.id
		JOIN ports dp ON vl.destination_port_id = dp.id
		WHERE %s
		ORDER BY vl.timestamp DESC, vl.id DESC
		LIMIT $%d OFFSET $%d
	`, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query voyage logs", "error", err)
		return nil, fmt.Errorf("failed to query voyage logs: %w", err)
	}
	defer rows.Close()

	var voyages []VoyageLogEntry
	for rows.Next() {
		var v VoyageLogEntry
		var eventType sql.NullString
		err := rows.Scan(
			&v.ID,
			&v.PlayerID,
			&v.OriginPortID,
			&v.OriginPortName,
			&v.DestinationPortID,
			&v.DestinationPortName,
			&eventType,
			&v.Description,
			&v.DamageTaken,
			&v.MoneyChange,
			&v.Timestamp,
		)
		if err != nil {
			logger.Error("Failed to scan voyage log", "error", err)
			return nil, fmt.Errorf("failed to scan voyage log: %w", err)
		}
		v.EventType = eventType.String
		voyages = append(voyages, v)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating voyage logs: %w", err)
	}

	logger.Debug("Voyage logs retrieved", "count", len(voyages))
	return voyages, nil
}

// GetVoyageStats aggregates a player's voyage history.
func (r *Repository) GetVoyageStats(ctx context.Context, playerID int) (*VoyageStats, error) {
	logger := slog.With("component", "quartermaster_repository", "operation", "get_voyage_stats", "player_id", playerID)
	logger.Debug("Aggregating voyage stats")

	var stats VoyageStats
	query := `
		SELECT COUNT(*),
			COUNT(event_type),
			COUNT(*) FILTER (WHERE event_type = 'storm'),
			COUNT(*) FILTER (WHERE event_type = 'pirates'),
			COUNT(*) FILTER (WHERE event_type = 'merchant'),
			COUNT(*) FILTER (WHERE event_type = 'patrol'),
			COALESCE(SUM(damage_taken), 0),
			COALESCE(SUM(money_change), 0)
		FROM voyage_logs
		WHERE player_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, playerID).Scan(
		&stats.TotalVoyages,
		&stats.EventsEncountered,
		&stats.Storms,
		&stats.PirateEncounters,
		&stats.MerchantEncounters,
		&stats.PatrolEncounters,
		&stats.TotalDamageTaken,
		&stats.TotalMoneyChange,
	)
	if err != nil {
		logger.Error("Failed to aggregate voyage stats", "error", err)
		return nil, fmt.Errorf("failed to aggregate voyage stats: %w", err)
	}

	return &stats, nil
}

// GetPriceHistory returns recorded price samples, newest first.
func (r *Repository) GetPriceHistory(ctx context.Context, filter PriceFilter) ([]PriceSample, error) {
	logger := slog.With("component", "quartermaster_repository", "operation", "get_price_history")
	logger.Debug("Querying price history", "port_id", filter.PortID, "good_id", filter.GoodID)

	conditions := []string{"1 = 1"}
	args := []interface{}{}

	if filter.PortID > 0 {
		args = append(args, filter.PortID)
		conditions = append(conditions, fmt.Sprintf("ph.port_id = $%d", len(args)))
	}
	if filter.GoodID > 0 {
		args = append(args, filter.GoodID)
		conditions = append(conditions, fmt.Sprintf("ph.good_id = $%d", len(args)))
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT ph.id, ph.port_id, ports.name, ph.good_id, g.name, ph.price, ph.stock, ph.timestamp
		FROM price_history ph
		JOIN ports ON ph.port_id = ports.id
		JOIN goods g ON ph.good_id = g.id
		WHERE %s
		ORDER BY ph.timestamp DESC, ph.id DESC
		LIMIT $%d OFFSET $%d
	`, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query price history", "error", err)
		return nil, fmt.Errorf("failed to query price history: %w", err)
	}
	defer rows.Close()

	var samples []PriceSample
	for rows.Next() {
		var s PriceSample
		err := rows.Scan(
			&s.ID,
			&s.PortID,
			&s.PortName,
			&s.GoodID,
			&s.GoodName,
			&s.Price,
			&s.Stock,
			&s.Timestamp,
		)
		if err != nil {
			logger.Error("Failed to scan price sample", "error", err)
			return nil, fmt.Errorf("failed to scan price sample: %w", err)
		}
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating price history: %w", err)
	}

	logger.Debug("Price history retrieved", "count", len(samples))
	return samples, nil
}
