// Package cargo computes a player's aggregate cargo load against fleet
// capacity. It has no storage of its own; callers derive a Ledger from the
// player's ships and holdings on demand.
package cargo

// Holding is one good carried by a player, with the volume each unit takes.
type Holding struct {
	GoodID        int
	Quantity      int
	VolumePerUnit int
}

// Ledger is a point-in-time view of used versus total cargo capacity.
type Ledger struct {
	Used  int
	Total int
}

// NewLedger builds a ledger from fleet cargo capacities and current holdings.
func NewLedger(shipCapacities []int, holdings []Holding) Ledger {
	var ledger Ledger
	for _, capacity := range shipCapacities {
		ledger.Total += capacity
	}
	for _, h := range holdings {
		ledger.Used += h.Quantity * h.VolumePerUnit
	}
	return ledger
}

// Free returns the remaining capacity.
func (l Ledger) Free() int {
	return l.Total - l.Used
}

// CanLoad reports whether requiredVolume more cargo volume fits in the fleet.
func (l Ledger) CanLoad(requiredVolume int) bool {
	return l.Used+requiredVolume <= l.Total
}
