// Package quartermaster exposes read-only views over the trade journal,
// voyage logs, and price history, plus the aggregate statistics built on
// top of them. Nothing here mutates game state.
package quartermaster

import "time"

// TradeRecord is one row of the trade journal with names joined in.
type TradeRecord struct {
	ID              int       `json:"id"`
	PlayerID        int       `json:"player_id"`
	PortID          int       `json:"port_id"`
	PortName        string    `json:"port_name"`
	GoodID          int       `json:"good_id"`
	GoodName        string    `json:"good_name"`
	TransactionType string    `json:"transaction_type"`
	Quantity        int       `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	TotalAmount     float64   `json:"total_amount"`
	Timestamp       time.Time `json:"timestamp"`
}

// TradeStats aggregates a player's journal.
type TradeStats struct {
	TotalTrades        int     `json:"total_trades"`
	TotalBuys          int     `json:"total_buys"`
	TotalSells         int     `json:"total_sells"`
	TotalSpent         float64 `json:"total_spent"`
	TotalEarned        float64 `json:"total_earned"`
	NetProfit          float64 `json:"net_profit"`
	MostTradedGood     string  `json:"most_traded_good,omitempty"`
	MostProfitableGood string  `json:"most_profitable_good,omitempty"`
}

// VoyageLogEntry is one voyage with port names joined in. EventType is
// empty for quiet passages.
type VoyageLogEntry struct {
	ID                  int       `json:"id"`
	PlayerID            int       `json:"player_id"`
	OriginPortID        int       `json:"origin_port_id"`
	OriginPortName      string    `json:"origin_port_name"`
	DestinationPortID   int       `json:"destination_port_id"`
	DestinationPortName string    `json:"destination_port_name"`
	EventType           string    `json:"event_type,omitempty"`
	Description         string    `json:"description"`
	DamageTaken         int       `json:"damage_taken"`
	MoneyChange         float64   `json:"money_change"`
	Timestamp           time.Time `json:"timestamp"`
}

// VoyageStats aggregates a player's voyage logs.
type VoyageStats struct {
	TotalVoyages       int     `json:"total_voyages"`
	EventsEncountered  int     `json:"events_encountered"`
	Storms             int     `json:"storms"`
	PirateEncounters   int     `json:"pirate_encounters"`
	MerchantEncounters int     `json:"merchant_encounters"`
	PatrolEncounters   int     `json:"patrol_encounters"`
	TotalDamageTaken   int     `json:"total_damage_taken"`
	TotalMoneyChange   float64 `json:"total_money_change"`
}

// PriceSample is one recorded price observation.
type PriceSample struct {
	ID        int       `json:"id"`
	PortID    int       `json:"port_id"`
	PortName  string    `json:"port_name"`
	GoodID    int       `json:"good_id"`
	GoodName  string    `json:"good_name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Timestamp time.Time `json:"timestamp"`
}

// JournalFilter narrows and pages the trade journal query.
type JournalFilter struct {
	GoodID          int
	PortID          int
	TransactionType string
	Limit           int
	Offset          int
}

// VoyageFilter narrows and pages the voyage log query.
type VoyageFilter struct {
	EventType string
	Limit     int
	Offset    int
}

// PriceFilter narrows and pages the price history query.
type PriceFilter struct {
	PortID int
	GoodID int
	Limit  int
	Offset int
}

// JournalReport is the trade journal response body.
type JournalReport struct {
	Trades []TradeRecord `json:"trades"`
	Stats  TradeStats    `json:"stats"`
}

// VoyageReport is the voyage log response body.
type VoyageReport struct {
	Voyages []VoyageLogEntry `json:"voyages"`
	Stats   VoyageStats      `json:"stats"`
}
