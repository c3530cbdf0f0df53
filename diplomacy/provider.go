package diplomacy

import "github.com/nicoberrocal/nomarch/ids"

// Provider is the narrow read-only interface the engine consults to decide
// hostility without reaching into the full State type
// — mirrors the teacher's Provider interface, generalized from
// (mapID, playerID, playerID, now time.Time) to (houseID, houseID, turn).
type Provider interface {
	AreEnemies(a, b ids.HouseID, turn uint32) bool
	ArePacted(a, b ids.HouseID, turn uint32) bool
}

// AreSquadronsEnemies reports whether two squadrons' owning houses are at
// Enemy per p — the generalization of the teacher's AreStacksEnemies helper
// from *ships.ShipStack to bare owner IDs, since combat operates on
// state.Squadron rather than the teacher's ShipStack.
func AreSquadronsEnemies(p Provider, ownerA, ownerB ids.HouseID, turn uint32) bool {
	if ownerA == ownerB {
		return false
	}
	return p.AreEnemies(ownerA, ownerB, turn)
}
