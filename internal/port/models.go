package port

type Port struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	Region            string   `json:"region"`
	Faction           string   `json:"faction"`
	BaseSecurityLevel int      `json:"base_security_level"`
	ConnectedPorts    []string `json:"connected_ports"`
}

// MarketEntry is a port's listing for one good. Stock is the sole driver of
// the current price.
type MarketEntry struct {
	ID            int     `json:"id"`
	PortID        int     `json:"port_id"`
	GoodID        int     `json:"good_id"`
	GoodName      string  `json:"good_name"`
	Category      string  `json:"category"`
	VolumePerUnit int     `json:"volume_per_unit"`
	Stock         int     `json:"stock"`
	StockCapacity int     `json:"stock_capacity"`
	BasePrice     float64 `json:"base_price"`
	CurrentPrice  float64 `json:"current_price"`
}

// Detail is the market view returned by the port endpoint.
type Detail struct {
	Port   Port          `json:"port"`
	Market []MarketEntry `json:"market"`
}
