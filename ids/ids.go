// Package ids defines the dense, namespaced 32-bit identifiers used by every
// entity kind in the engine, plus the monotonic counters that mint them.
package ids

import "fmt"

// HouseID, SystemID, ... are namespaced so that a ColonyID and a FleetID with
// the same numeric value never compare equal at the type level. 0 is the
// reserved null sentinel for every namespace.
type (
	HouseID               uint32
	SystemID              uint32
	ColonyID              uint32
	FacilityID            uint32
	FleetID               uint32
	SquadronID            uint32
	ShipID                uint32
	GroundUnitID          uint32
	ConstructionProjectID uint32
	RepairProjectID       uint32
	PopulationTransferID  uint32
)

// Null is the reserved sentinel value for every ID namespace.
const Null = 0

// Counter mints monotonically increasing IDs within one namespace. Create one
// with NewCounter: the zero value is not ready to use (its next value is the
// reserved 0, so Next panics).
type Counter struct {
	next uint32
}

// NewCounter returns a Counter that will mint 1 as its first ID.
func NewCounter() *Counter {
	return &Counter{next: 1}
}

// Next mints a new ID, panicking on overflow of the 32-bit space — this is an
// invariant violation (spec.md §8.2: IDs are never reused and always exceed
// every prior ID of the same type).
func (c *Counter) Next() uint32 {
	if c.next == 0 {
		panic(fmt.Errorf("ids: counter overflowed 32-bit namespace"))
	}
	id := c.next
	c.next++
	return id
}

// Peek returns the next ID that would be minted without consuming it.
func (c *Counter) Peek() uint32 { return c.next }

// Restore sets the counter's next value directly, so a counter can resume
// where a saved state left off. It does not check next against IDs already
// minted. Package snapshot does not call Peek or Restore.
func (c *Counter) Restore(next uint32) {
	c.next = next
}
