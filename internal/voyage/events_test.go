package voyage

import (
	"testing"

	"fareast-server/internal/player"
)

// scriptedDice replays fixed values so resolution is deterministic.
type scriptedDice struct {
	floats []float64
	ints   []int
}

func (d *scriptedDice) Float64() float64 {
	if len(d.floats) == 0 {
		return 0.99
	}
	v := d.floats[0]
	d.floats = d.floats[1:]
	return v
}

func (d *scriptedDice) IntN(n int) int {
	if len(d.ints) == 0 {
		return 0
	}
	v := d.ints[0]
	d.ints = d.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func fleet(ships ...player.Ship) []player.Ship { return ships }

func junk(id, hullStrength, currentHull, guns int) player.Ship {
	return player.Ship{
		ID:           id,
		Name:         "Ship",
		HullStrength: hullStrength,
		CurrentHull:  currentHull,
		Guns:         guns,
	}
}

func TestRollEventQuietPassage(t *testing.T) {
	// Canton to Macau, average security 65, no pirate reputation:
	// chance = 0.3 * 0.35 * 1.0 = 0.105.
	d := &scriptedDice{floats: []float64{0.2}}
	if ev := RollEvent(d, 0.3, 70, 60, 0); ev != nil {
		t.Fatalf("expected no event at roll 0.2 vs chance 0.105, got %+v", ev)
	}
}

func TestRollEventScalesWithReputation(t *testing.T) {
	// The same roll that misses at reputation 0 hits at reputation 100,
	// which doubles the chance to 0.21.
	d := &scriptedDice{floats: []float64{0.15, 0.9}, ints: []int{1}}
	ev := RollEvent(d, 0.3, 70, 60, 100)
	if ev == nil {
		t.Fatal("expected an event at roll 0.15 vs chance 0.21")
	}
	if ev.Type != EventPirates {
		t.Fatalf("expected pirates, got %s", ev.Type)
	}
	if ev.Severity != SeverityMajor {
		t.Fatalf("expected major severity at roll 0.9, got %s", ev.Severity)
	}
}

func TestResolveEventBlockedWithoutShips(t *testing.T) {
	d := &scriptedDice{}
	out := ResolveEvent(d, Event{Type: EventStorm, Severity: SeverityMajor}, nil, 50)
	if !out.Blocked {
		t.Fatal("expected blocked outcome with an empty fleet")
	}
	if len(out.Effects) != 0 {
		t.Fatalf("blocked outcome should carry no effects, got %d", len(out.Effects))
	}
}

func TestResolveStormDamage(t *testing.T) {
	tests := []struct {
		name       string
		severity   Severity
		hull       int
		wantDamage int
		wantHull   int
	}{
		{name: "major storm", severity: SeverityMajor, hull: 100, wantDamage: 30, wantHull: 70},
		{name: "minor storm", severity: SeverityMinor, hull: 100, wantDamage: 10, wantHull: 90},
		{name: "hull floors at one", severity: SeverityMajor, hull: 5, wantDamage: 30, wantHull: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &scriptedDice{}
			ship := junk(1, 100, tt.hull, 2)
			out := ResolveEvent(d, Event{Type: EventStorm, Severity: tt.severity}, fleet(ship), 50)

			if len(out.Effects) != 1 {
				t.Fatalf("expected one effect, got %d", len(out.Effects))
			}
			e := out.Effects[0]
			if e.Kind != EffectHullDamage {
				t.Fatalf("expected hull damage, got %s", e.Kind)
			}
			if e.Amount != tt.wantDamage {
				t.Fatalf("expected %d damage, got %d", tt.wantDamage, e.Amount)
			}
			if e.NewHull != tt.wantHull {
				t.Fatalf("expected hull %d, got %d", tt.wantHull, e.NewHull)
			}
		})
	}
}

func TestResolveStormHitsEveryShip(t *testing.T) {
	d := &scriptedDice{}
	ships := fleet(junk(1, 100, 100, 2), junk(2, 50, 40, 0))
	out := ResolveEvent(d, Event{Type: EventStorm, Severity: SeverityMinor}, ships, 50)

	if len(out.Effects) != 2 {
		t.Fatalf("expected effects for both ships, got %d", len(out.Effects))
	}
	if out.DamageTaken() != 15 {
		t.Fatalf("expected 15 total damage, got %d", out.DamageTaken())
	}
}

func TestResolvePiratesVictory(t *testing.T) {
	// 20 guns clears the major threshold of 15; IntN(200)=57 yields loot 157.
	d := &scriptedDice{ints: []int{57}}
	ships := fleet(junk(1, 100, 100, 12), junk(2, 100, 100, 8))
	out := ResolveEvent(d, Event{Type: EventPirates, Severity: SeverityMajor}, ships, 50)

	if len(out.Effects) != 1 {
		t.Fatalf("expected a single loot effect, got %d", len(out.Effects))
	}
	e := out.Effects[0]
	if e.Kind != EffectMoneyGain {
		t.Fatalf("expected money gain, got %s", e.Kind)
	}
	if e.Amount != 157 {
		t.Fatalf("expected loot 157, got %d", e.Amount)
	}
	if out.DamageTaken() != 0 {
		t.Fatalf("victory should deal no damage, got %d", out.DamageTaken())
	}
	if out.MoneyChange() != 157 {
		t.Fatalf("expected money change 157, got %.2f", out.MoneyChange())
	}
}

func TestResolvePiratesDefeat(t *testing.T) {
	// 8 guns does not exceed the minor threshold of 8.
	d := &scriptedDice{ints: []int{150}}
	ships := fleet(junk(1, 100, 60, 8))
	out := ResolveEvent(d, Event{Type: EventPirates, Severity: SeverityMinor}, ships, 50)

	if out.MoneyChange() != -250 {
		t.Fatalf("expected to lose 250 silver, got %.2f", out.MoneyChange())
	}
	if out.DamageTaken() != 20 {
		t.Fatalf("expected 20 hull damage, got %d", out.DamageTaken())
	}
	var hull *Effect
	for i := range out.Effects {
		if out.Effects[i].Kind == EffectHullDamage {
			hull = &out.Effects[i]
		}
	}
	if hull == nil {
		t.Fatal("expected a hull damage effect")
	}
	if hull.NewHull != 40 {
		t.Fatalf("expected hull 40 after defeat, got %d", hull.NewHull)
	}
}

func TestResolvePatrol(t *testing.T) {
	tests := []struct {
		name      string
		lawfulRep float64
		wantFine  bool
	}{
		{name: "low reputation fined", lawfulRep: 20, wantFine: true},
		{name: "threshold passes clean", lawfulRep: 30, wantFine: false},
		{name: "high reputation passes clean", lawfulRep: 80, wantFine: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &scriptedDice{}
			out := ResolveEvent(d, Event{Type: EventPatrol, Severity: SeverityMinor}, fleet(junk(1, 100, 100, 2)), tt.lawfulRep)

			if tt.wantFine {
				if len(out.Effects) != 1 || out.Effects[0].Kind != EffectFine {
					t.Fatalf("expected a fine, got %+v", out.Effects)
				}
				if out.Effects[0].Amount != 100 {
					t.Fatalf("expected fine of 100, got %d", out.Effects[0].Amount)
				}
			} else if len(out.Effects) != 0 {
				t.Fatalf("expected no effects, got %+v", out.Effects)
			}
		})
	}
}

func TestResolveMerchantIsFlavorOnly(t *testing.T) {
	d := &scriptedDice{}
	out := ResolveEvent(d, Event{Type: EventMerchant, Severity: SeverityMajor}, fleet(junk(1, 100, 100, 2)), 50)

	if len(out.Effects) != 0 {
		t.Fatalf("merchant encounter should carry no effects, got %+v", out.Effects)
	}
	if out.DamageTaken() != 0 || out.MoneyChange() != 0 {
		t.Fatal("merchant encounter should not change damage or money")
	}
}

func TestOutcomeDescriptionJoinsEffects(t *testing.T) {
	out := Outcome{
		Type:     EventStorm,
		Severity: SeverityMajor,
		Message:  "A major storm hit your fleet!",
		Effects: []Effect{
			{Kind: EffectHullDamage, ShipName: "Lucky Dragon", Amount: 30},
		},
	}
	want := "A major storm hit your fleet! Lucky Dragon took 30 hull damage"
	if got := out.Description(); got != want {
		t.Fatalf("description mismatch:\n got %q\nwant %q", got, want)
	}
}
