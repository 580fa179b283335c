package trade

// Direction is the side of a trade.
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

// Transaction summarizes one committed trade for the response body.
type Transaction struct {
	Type        Direction `json:"type"`
	GoodID      int       `json:"good_id"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalAmount float64   `json:"total_amount"`
}

// marketEntry is the locked port listing a trade executes against.
type marketEntry struct {
	PortID        int
	GoodID        int
	Stock         int
	StockCapacity int
	BasePrice     float64
	VolumePerUnit int
}

// holding is the locked cargo row a sale draws from.
type holding struct {
	ID       int
	Quantity int
}
