package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fareast-server/internal/cargo"
	"fareast-server/internal/shared/errors"
)

func TestPlanBuyAtHalfCapacity(t *testing.T) {
	// 10 units at base price 50 from a market at half capacity.
	plan, err := PlanBuy(BuyInput{
		Quantity:      10,
		Stock:         100,
		StockCapacity: 200,
		BasePrice:     50,
		VolumePerUnit: 1,
		PlayerMoney:   1000,
		Ledger:        cargo.Ledger{Used: 0, Total: 100},
	})
	require.NoError(t, err)

	assert.Equal(t, DirectionBuy, plan.Direction)
	assert.Equal(t, 50.0, plan.UnitPrice)
	assert.Equal(t, 500.0, plan.Total)
	assert.Equal(t, -500.0, plan.MoneyDelta)
	assert.Equal(t, -10, plan.StockDelta)
	assert.Equal(t, 10, plan.CargoDelta)
}

func TestPlanBuyConservation(t *testing.T) {
	in := BuyInput{
		Quantity:      7,
		Stock:         40,
		StockCapacity: 400,
		BasePrice:     80,
		VolumePerUnit: 2,
		PlayerMoney:   5000,
		Ledger:        cargo.Ledger{Used: 10, Total: 100},
	}

	plan, err := PlanBuy(in)
	require.NoError(t, err)

	// Money out equals price times quantity; stock out equals cargo in.
	assert.Equal(t, -plan.UnitPrice*float64(in.Quantity), plan.MoneyDelta)
	assert.Equal(t, -in.Quantity, plan.StockDelta)
	assert.Equal(t, in.Quantity, plan.CargoDelta)
}

func TestPlanBuyFailures(t *testing.T) {
	base := BuyInput{
		Quantity:      10,
		Stock:         100,
		StockCapacity: 200,
		BasePrice:     50,
		VolumePerUnit: 1,
		PlayerMoney:   1000,
		Ledger:        cargo.Ledger{Used: 0, Total: 100},
	}

	tests := []struct {
		name     string
		mutate   func(*BuyInput)
		wantType errors.ErrorType
	}{
		{
			name:     "zero quantity",
			mutate:   func(in *BuyInput) { in.Quantity = 0 },
			wantType: errors.ErrorTypeValidation,
		},
		{
			name:     "negative quantity",
			mutate:   func(in *BuyInput) { in.Quantity = -5 },
			wantType: errors.ErrorTypeValidation,
		},
		{
			name:     "insufficient stock",
			mutate:   func(in *BuyInput) { in.Quantity = 101 },
			wantType: errors.ErrorTypeConflict,
		},
		{
			name:     "insufficient funds",
			mutate:   func(in *BuyInput) { in.PlayerMoney = 499.99 },
			wantType: errors.ErrorTypeConflict,
		},
		{
			name:     "insufficient cargo space",
			mutate:   func(in *BuyInput) { in.Ledger = cargo.Ledger{Used: 95, Total: 100} },
			wantType: errors.ErrorTypeConflict,
		},
		{
			name:     "bulky good overflows cargo",
			mutate:   func(in *BuyInput) { in.VolumePerUnit = 20 },
			wantType: errors.ErrorTypeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)

			plan, err := PlanBuy(in)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, errors.GetType(err))
			// A failed plan carries no deltas to apply.
			assert.Equal(t, Plan{}, plan)
		})
	}
}

func TestPlanBuyExactFunds(t *testing.T) {
	plan, err := PlanBuy(BuyInput{
		Quantity:      10,
		Stock:         100,
		StockCapacity: 200,
		BasePrice:     50,
		VolumePerUnit: 1,
		PlayerMoney:   500,
		Ledger:        cargo.Ledger{Used: 0, Total: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, plan.Total)
}

func TestPlanBuyExactCargoFit(t *testing.T) {
	plan, err := PlanBuy(BuyInput{
		Quantity:      10,
		Stock:         100,
		StockCapacity: 200,
		BasePrice:     50,
		VolumePerUnit: 1,
		PlayerMoney:   1000,
		Ledger:        cargo.Ledger{Used: 90, Total: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, plan.CargoDelta)
}

func TestPlanSellUsesPostSaleStock(t *testing.T) {
	plan, err := PlanSell(SellInput{
		Quantity:      100,
		Held:          100,
		Stock:         100,
		StockCapacity: 200,
		BasePrice:     50,
	})
	require.NoError(t, err)

	// Post-sale the market is full, so the price bottoms out at half base.
	assert.Equal(t, 25.0, plan.UnitPrice)
	assert.Equal(t, 2500.0, plan.Total)
	assert.Equal(t, 2500.0, plan.MoneyDelta)
	assert.Equal(t, 100, plan.StockDelta)
	assert.Equal(t, -100, plan.CargoDelta)
}

func TestPlanSellFailures(t *testing.T) {
	tests := []struct {
		name     string
		in       SellInput
		wantType errors.ErrorType
	}{
		{
			name:     "zero quantity",
			in:       SellInput{Quantity: 0, Held: 10, Stock: 100, StockCapacity: 200, BasePrice: 50},
			wantType: errors.ErrorTypeValidation,
		},
		{
			name:     "more than held",
			in:       SellInput{Quantity: 11, Held: 10, Stock: 100, StockCapacity: 200, BasePrice: 50},
			wantType: errors.ErrorTypeConflict,
		},
		{
			name:     "nothing held",
			in:       SellInput{Quantity: 1, Held: 0, Stock: 100, StockCapacity: 200, BasePrice: 50},
			wantType: errors.ErrorTypeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanSell(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, errors.GetType(err))
		})
	}
}

func TestBuyThenSellRoundTripLosesMoney(t *testing.T) {
	// Buying and immediately selling back must not be profitable: the buy
	// lowers stock (raising the quote) but the sell is priced post-sale at
	// the restored stock level, which is the original ratio or worse.
	buy, err := PlanBuy(BuyInput{
		Quantity:      50,
		Stock:         100,
		StockCapacity: 200,
		BasePrice:     50,
		VolumePerUnit: 1,
		PlayerMoney:   100000,
		Ledger:        cargo.Ledger{Used: 0, Total: 1000},
	})
	require.NoError(t, err)

	sell, err := PlanSell(SellInput{
		Quantity:      50,
		Held:          50,
		Stock:         100 + buy.StockDelta,
		StockCapacity: 200,
		BasePrice:     50,
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, sell.Total, buy.Total)
}
