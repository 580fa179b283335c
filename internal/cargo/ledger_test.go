package cargo

import "testing"

func TestNewLedgerAggregatesFleetAndHoldings(t *testing.T) {
	ledger := NewLedger(
		[]int{100, 60},
		[]Holding{
			{GoodID: 1, Quantity: 10, VolumePerUnit: 1},
			{GoodID: 4, Quantity: 5, VolumePerUnit: 2},
		},
	)

	if ledger.Total != 160 {
		t.Fatalf("expected total capacity 160, got %d", ledger.Total)
	}
	if ledger.Used != 20 {
		t.Fatalf("expected used capacity 20, got %d", ledger.Used)
	}
	if ledger.Free() != 140 {
		t.Fatalf("expected free capacity 140, got %d", ledger.Free())
	}
}

func TestCanLoad(t *testing.T) {
	ledger := Ledger{Used: 90, Total: 100}

	tests := []struct {
		name     string
		required int
		want     bool
	}{
		{name: "fits", required: 10, want: true},
		{name: "exceeds by one", required: 11, want: false},
		{name: "zero volume", required: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ledger.CanLoad(tt.required); got != tt.want {
				t.Fatalf("CanLoad(%d) = %v, want %v", tt.required, got, tt.want)
			}
		})
	}
}

func TestEmptyFleetHasNoCapacity(t *testing.T) {
	ledger := NewLedger(nil, nil)
	if ledger.CanLoad(1) {
		t.Fatal("empty fleet should not accept cargo")
	}
}
