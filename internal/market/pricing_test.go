package market

import "testing"

func TestPriceAtHalfCapacityIsBasePrice(t *testing.T) {
	price := Price(100, 200, 50)
	if price != 50 {
		t.Fatalf("expected base price 50 at half capacity, got %v", price)
	}
}

func TestPriceAtZeroStock(t *testing.T) {
	price := Price(0, 200, 50)
	if price != 75 {
		t.Fatalf("expected price 75 at zero stock, got %v", price)
	}
}

func TestPriceBounds(t *testing.T) {
	const (
		capacity  = 200
		basePrice = 50.0
	)

	for stock := 0; stock <= capacity; stock++ {
		price := Price(stock, capacity, basePrice)
		if price < basePrice*0.5 || price > basePrice*2.0 {
			t.Fatalf("price %v at stock %d outside [%v, %v]", price, stock, basePrice*0.5, basePrice*2.0)
		}
	}
}

func TestPriceMonotonicallyNonIncreasingInStock(t *testing.T) {
	const (
		capacity  = 500
		basePrice = 80.0
	)

	prev := Price(0, capacity, basePrice)
	for stock := 1; stock <= capacity; stock++ {
		price := Price(stock, capacity, basePrice)
		if price > prev {
			t.Fatalf("price increased from %v to %v at stock %d", prev, price, stock)
		}
		prev = price
	}
}

func TestPriceClampsHighAlpha(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		want  float64
	}{
		{name: "empty market clamps at double", stock: 0, want: 200},
		{name: "full market clamps at half", stock: 100, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceWithAlpha(tt.stock, 100, 100, 4.0)
			if got != tt.want {
				t.Fatalf("expected clamped price %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSellPriceUsesPostSaleStock(t *testing.T) {
	// Selling 100 into a market holding 100/200 prices at 200/200, not 100/200.
	got := SellPrice(100, 100, 200, 50)
	want := Price(200, 200, 50)
	if got != want {
		t.Fatalf("expected post-sale price %v, got %v", want, got)
	}
	if got >= Price(100, 200, 50) {
		t.Fatalf("post-sale price %v should be below the pre-sale quote", got)
	}
}
