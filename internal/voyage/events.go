package voyage

import (
	"math"
	"math/rand/v2"

	"fareast-server/internal/player"
)

const (
	stormDamageMajor = 0.3
	stormDamageMinor = 0.1

	pirateThresholdMajor = 15
	pirateThresholdMinor = 8
	pirateDamagePct      = 0.2

	patrolFine          = 100
	lawfulRepPatrolSafe = 30

	minHull = 1
)

// Dice is the randomness source for event rolls and resolution. Tests
// substitute a fixed sequence.
type Dice interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type stdDice struct{}

func (stdDice) Float64() float64 { return rand.Float64() }
func (stdDice) IntN(n int) int   { return rand.IntN(n) }

// NewDice returns the production randomness source.
func NewDice() Dice { return stdDice{} }

var eventTypes = []EventType{EventStorm, EventPirates, EventMerchant, EventPatrol}

// RollEvent decides whether a voyage triggers an event. The chance scales
// with the average insecurity of the two ports and the player's pirate
// reputation; a nil return means a quiet passage.
func RollEvent(d Dice, baseChance float64, originSecurity, destSecurity int, pirateReputation float64) *Event {
	avgSecurity := float64(originSecurity+destSecurity) / 2
	securityMod := (100 - avgSecurity) / 100
	reputationMod := 1 + pirateReputation/100

	chance := baseChance * securityMod * reputationMod
	if d.Float64() >= chance {
		return nil
	}

	event := &Event{
		Type:     eventTypes[d.IntN(len(eventTypes))],
		Severity: SeverityMajor,
	}
	if d.Float64() < 0.5 {
		event.Severity = SeverityMinor
	}
	return event
}

// ResolveEvent turns a rolled event into concrete effects against the fleet.
// It is pure: callers persist the returned hull values and money deltas.
func ResolveEvent(d Dice, event Event, fleet []player.Ship, lawfulReputation float64) Outcome {
	if len(fleet) == 0 {
		return Outcome{
			Type:     event.Type,
			Severity: event.Severity,
			Blocked:  true,
			Message:  "You have no ships to sail with!",
		}
	}

	outcome := Outcome{Type: event.Type, Severity: event.Severity}

	switch event.Type {
	case EventStorm:
		pct := stormDamageMinor
		if event.Severity == SeverityMajor {
			pct = stormDamageMajor
		}
		outcome.Message = "A " + string(event.Severity) + " storm hit your fleet!"
		for _, ship := range fleet {
			damage := int(math.Floor(float64(ship.HullStrength) * pct))
			outcome.Effects = append(outcome.Effects, hullDamage(ship, damage))
		}

	case EventPirates:
		threshold := pirateThresholdMinor
		if event.Severity == SeverityMajor {
			threshold = pirateThresholdMajor
		}
		totalGuns := 0
		for _, ship := range fleet {
			totalGuns += ship.Guns
		}
		if totalGuns > threshold {
			loot := d.IntN(200) + 100
			outcome.Message = "Pirates attacked but you drove them off!"
			outcome.Effects = append(outcome.Effects, Effect{Kind: EffectMoneyGain, Amount: loot})
		} else {
			stolen := d.IntN(300) + 100
			outcome.Message = "Pirates overwhelmed your fleet!"
			outcome.Effects = append(outcome.Effects, Effect{Kind: EffectMoneyLoss, Amount: stolen})
			for _, ship := range fleet {
				damage := int(math.Floor(float64(ship.HullStrength) * pirateDamagePct))
				outcome.Effects = append(outcome.Effects, hullDamage(ship, damage))
			}
		}

	case EventPatrol:
		if lawfulReputation < lawfulRepPatrolSafe {
			outcome.Message = "Naval patrol inspected your ship"
			outcome.Effects = append(outcome.Effects, Effect{Kind: EffectFine, Amount: patrolFine})
		} else {
			outcome.Message = "Naval patrol waved you through"
		}

	case EventMerchant:
		outcome.Message = "You encountered a friendly merchant vessel"
	}

	return outcome
}

func hullDamage(ship player.Ship, damage int) Effect {
	newHull := ship.CurrentHull - damage
	if newHull < minHull {
		newHull = minHull
	}
	return Effect{
		Kind:     EffectHullDamage,
		ShipID:   ship.ID,
		ShipName: ship.Name,
		Amount:   damage,
		NewHull:  newHull,
	}
}
