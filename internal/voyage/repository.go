package voyage

import (
	"context"
	"database/sql"
	"fmt"

	"fareast-server/internal/shared/database"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// InsertVoyageLog records a completed (or blocked) voyage. Quiet passages
// store a NULL event type.
func (r *Repository) InsertVoyageLog(ctx context.Context, q database.Executor, playerID, originPortID, destinationPortID int, outcome *Outcome) error {
	var eventType sql.NullString
	description := "Safe passage, no incidents"
	damageTaken := 0
	moneyChange := 0.0

	if outcome != nil {
		eventType = sql.NullString{String: string(outcome.Type), Valid: true}
		description = outcome.Description()
		damageTaken = outcome.DamageTaken()
		moneyChange = outcome.MoneyChange()
	}

	query := `
		INSERT INTO voyage_logs (player_id, origin_port_id, destination_port_id, event_type, description, damage_taken, money_change)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := q.ExecContext(ctx, query, playerID, originPortID, destinationPortID, eventType, description, damageTaken, moneyChange); err != nil {
		return fmt.Errorf("failed to insert voyage log: %w", err)
	}
	return nil
}
