package trade

import (
	"fareast-server/internal/cargo"
	"fareast-server/internal/market"
	"fareast-server/internal/shared/errors"
)

// Plan is the complete set of deltas one trade will commit. All validation
// happens before a plan exists; applying a plan only writes, so a trade
// either fails with zero deltas or commits all of them.
type Plan struct {
	Direction  Direction
	Quantity   int
	UnitPrice  float64
	Total      float64
	MoneyDelta float64
	StockDelta int
	CargoDelta int
}

// BuyInput is the state a purchase is validated against.
type BuyInput struct {
	Quantity      int
	Stock         int
	StockCapacity int
	BasePrice     float64
	VolumePerUnit int
	PlayerMoney   float64
	Ledger        cargo.Ledger
}

// PlanBuy validates a purchase and returns its deltas. The price is quoted
// at the current stock level.
func PlanBuy(in BuyInput) (Plan, error) {
	if in.Quantity <= 0 {
		return Plan{}, errors.Validationf("quantity must be positive, got %d", in.Quantity)
	}

	if in.Quantity > in.Stock {
		return Plan{}, errors.Conflictf("insufficient stock: %d available", in.Stock)
	}

	unitPrice := market.Price(in.Stock, in.StockCapacity, in.BasePrice)
	total := unitPrice * float64(in.Quantity)

	if total > in.PlayerMoney {
		return Plan{}, errors.Conflictf("insufficient funds: cost %.2f, available %.2f", total, in.PlayerMoney)
	}

	required := in.Quantity * in.VolumePerUnit
	if !in.Ledger.CanLoad(required) {
		return Plan{}, errors.Conflictf("insufficient cargo space: required %d, available %d", required, in.Ledger.Free())
	}

	return Plan{
		Direction:  DirectionBuy,
		Quantity:   in.Quantity,
		UnitPrice:  unitPrice,
		Total:      total,
		MoneyDelta: -total,
		StockDelta: -in.Quantity,
		CargoDelta: in.Quantity,
	}, nil
}

// SellInput is the state a sale is validated against.
type SellInput struct {
	Quantity      int
	Held          int
	Stock         int
	StockCapacity int
	BasePrice     float64
}

// PlanSell validates a sale and returns its deltas. The price uses the
// post-sale stock level, so a large sale realizes a lower marginal price
// than the pre-sale quote would suggest.
func PlanSell(in SellInput) (Plan, error) {
	if in.Quantity <= 0 {
		return Plan{}, errors.Validationf("quantity must be positive, got %d", in.Quantity)
	}

	if in.Quantity > in.Held {
		return Plan{}, errors.Conflictf("insufficient cargo: %d available", in.Held)
	}

	unitPrice := market.SellPrice(in.Stock, in.Quantity, in.StockCapacity, in.BasePrice)
	total := unitPrice * float64(in.Quantity)

	return Plan{
		Direction:  DirectionSell,
		Quantity:   in.Quantity,
		UnitPrice:  unitPrice,
		Total:      total,
		MoneyDelta: total,
		StockDelta: in.Quantity,
		CargoDelta: -in.Quantity,
	}, nil
}
