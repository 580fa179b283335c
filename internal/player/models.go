package player

import "time"

type Player struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Money            float64   `json:"money"`
	CurrentPortID    int       `json:"current_port_id"`
	CurrentPortName  string    `json:"current_port_name,omitempty"`
	LawfulReputation float64   `json:"lawful_reputation"`
	PirateReputation float64   `json:"pirate_reputation"`
	CreatedAt        time.Time `json:"created_at"`
}

type Ship struct {
	ID               int    `json:"id"`
	PlayerID         int    `json:"player_id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	MaxCargo         int    `json:"max_cargo"`
	Speed            int    `json:"speed"`
	HullStrength     int    `json:"hull_strength"`
	CurrentHull      int    `json:"current_hull"`
	Guns             int    `json:"guns"`
	ArmorLevel       int    `json:"armor_level"`
	SailRiggingLevel int    `json:"sail_rigging_level"`
	CargoModsLevel   int    `json:"cargo_mods_level"`
	GunModsLevel     int    `json:"gun_mods_level"`
}

type CargoItem struct {
	ID            int    `json:"id"`
	PlayerID      int    `json:"player_id"`
	GoodID        int    `json:"good_id"`
	GoodName      string `json:"good_name"`
	Quantity      int    `json:"quantity"`
	VolumePerUnit int    `json:"volume_per_unit"`
}

// State is the full read model returned after onboarding, trades and voyages.
type State struct {
	Player             Player      `json:"player"`
	Ships              []Ship      `json:"ships"`
	Cargo              []CargoItem `json:"cargo"`
	TotalCargoUsed     int         `json:"totalCargoUsed"`
	TotalCargoCapacity int         `json:"totalCargoCapacity"`
}

// StartingShip describes the ship granted at onboarding.
type StartingShip struct {
	Name         string
	Type         string
	MaxCargo     int
	Speed        int
	HullStrength int
	Guns         int
}

// DefaultStartingShip is the small junk every new captain begins with.
var DefaultStartingShip = StartingShip{
	Name:         "Lucky Dragon",
	Type:         "small_junk",
	MaxCargo:     100,
	Speed:        50,
	HullStrength: 100,
	Guns:         2,
}
