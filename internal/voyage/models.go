package voyage

import "fmt"

type EventType string

const (
	EventStorm    EventType = "storm"
	EventPirates  EventType = "pirates"
	EventMerchant EventType = "merchant"
	EventPatrol   EventType = "patrol"
)

type Severity string

const (
	SeverityMinor Severity = "minor"
	SeverityMajor Severity = "major"
)

// Event is one rolled occurrence, before resolution.
type Event struct {
	Type     EventType `json:"type"`
	Severity Severity  `json:"severity"`
}

type EffectKind string

const (
	EffectHullDamage EffectKind = "hull_damage"
	EffectMoneyGain  EffectKind = "money_gain"
	EffectMoneyLoss  EffectKind = "money_loss"
	EffectFine       EffectKind = "fine"
)

// Effect is one typed consequence of an event. The voyage log derives its
// damage and money columns from these fields; nothing is parsed back out of
// display text.
type Effect struct {
	Kind     EffectKind `json:"kind"`
	ShipID   int        `json:"ship_id,omitempty"`
	ShipName string     `json:"ship_name,omitempty"`
	Amount   int        `json:"amount"`

	// NewHull is the floored hull value to persist for hull damage effects.
	NewHull int `json:"-"`
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectHullDamage:
		return fmt.Sprintf("%s took %d hull damage", e.ShipName, e.Amount)
	case EffectMoneyGain:
		return fmt.Sprintf("Gained %d silver from captured loot", e.Amount)
	case EffectMoneyLoss:
		return fmt.Sprintf("Lost %d silver", e.Amount)
	case EffectFine:
		return fmt.Sprintf("Paid %d silver in fines", e.Amount)
	default:
		return string(e.Kind)
	}
}

// Outcome is a resolved event. Blocked outcomes leave the player at the
// origin; every other outcome still completes the voyage.
type Outcome struct {
	Type     EventType `json:"type"`
	Severity Severity  `json:"severity,omitempty"`
	Blocked  bool      `json:"blocked"`
	Message  string    `json:"message"`
	Effects  []Effect  `json:"effects"`
}

// DamageTaken sums hull damage across the fleet.
func (o *Outcome) DamageTaken() int {
	total := 0
	for _, e := range o.Effects {
		if e.Kind == EffectHullDamage {
			total += e.Amount
		}
	}
	return total
}

// MoneyChange nets the monetary effects. Losses and fines report their
// nominal amount even when the purse was floored at zero.
func (o *Outcome) MoneyChange() float64 {
	total := 0.0
	for _, e := range o.Effects {
		switch e.Kind {
		case EffectMoneyGain:
			total += float64(e.Amount)
		case EffectMoneyLoss, EffectFine:
			total -= float64(e.Amount)
		}
	}
	return total
}

// Description renders the log line for the voyage record.
func (o *Outcome) Description() string {
	desc := o.Message
	for i, e := range o.Effects {
		if i == 0 {
			desc += " "
		} else {
			desc += ", "
		}
		desc += e.String()
	}
	return desc
}

// Result is the travel response body.
type Result struct {
	Success         bool     `json:"success"`
	OriginPort      string   `json:"origin_port"`
	DestinationPort string   `json:"destination_port"`
	Arrived         bool     `json:"arrived"`
	Event           *Outcome `json:"event"`
}
