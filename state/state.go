package state

import (
	"fmt"
	"sort"

	"github.com/nicoberrocal/nomarch/ids"
)

// State owns every entity table, the ID counters that mint new entities, and
// the secondary indices listed in spec.md §3. It is the only way the rest of
// the engine touches world data (spec.md §4.1): Get for O(1) lookup, the
// Add*/Update*/Del* family for mutation with index maintenance built in, and
// the *Owned/*At/*Of family for index-backed queries.
type State struct {
	Turn uint32

	houseCounter        *ids.Counter
	systemCounter       *ids.Counter
	colonyCounter       *ids.Counter
	facilityCounter     *ids.Counter
	fleetCounter        *ids.Counter
	squadronCounter     *ids.Counter
	shipCounter         *ids.Counter
	groundUnitCounter   *ids.Counter
	constructionCounter *ids.Counter
	repairCounter       *ids.Counter
	transferCounter     *ids.Counter

	houses        *Table[ids.HouseID, House]
	systems       *Table[ids.SystemID, System]
	colonies      *Table[ids.ColonyID, Colony]
	facilities    *Table[ids.FacilityID, Facility]
	fleets        *Table[ids.FleetID, Fleet]
	squadrons     *Table[ids.SquadronID, Squadron]
	ships         *Table[ids.ShipID, Ship]
	groundUnits   *Table[ids.GroundUnitID, GroundUnit]
	constructions *Table[ids.ConstructionProjectID, ConstructionProject]
	repairs       *Table[ids.RepairProjectID, RepairProject]
	transfers     *Table[ids.PopulationTransferID, PopulationTransfer]

	coloniesByOwner         map[ids.HouseID][]ids.ColonyID
	colonyBySystem          map[ids.SystemID]ids.ColonyID
	fleetsByLocation        map[ids.SystemID][]ids.FleetID
	shipsBySquadron         map[ids.SquadronID][]ids.ShipID
	squadronsByFleet        map[ids.FleetID][]ids.SquadronID
	squadronsByHouse        map[ids.HouseID][]ids.SquadronID
	neoriasByColony         map[ids.ColonyID][]ids.FacilityID
	kastrasByColony         map[ids.ColonyID][]ids.FacilityID
	groundUnitsByColony     map[ids.ColonyID][]ids.GroundUnitID
	groundUnitsByTransport  map[ids.FleetID][]ids.GroundUnitID
	constructionsByColony   map[ids.ColonyID][]ids.ConstructionProjectID
	constructionsByFacility map[ids.FacilityID][]ids.ConstructionProjectID
}

// New returns an empty State ready to have a game's initial entities added.
func New() *State {
	return &State{
		houseCounter: ids.NewCounter(), systemCounter: ids.NewCounter(),
		colonyCounter: ids.NewCounter(), facilityCounter: ids.NewCounter(),
		fleetCounter: ids.NewCounter(), squadronCounter: ids.NewCounter(),
		shipCounter: ids.NewCounter(), groundUnitCounter: ids.NewCounter(),
		constructionCounter: ids.NewCounter(), repairCounter: ids.NewCounter(),
		transferCounter: ids.NewCounter(),

		houses:        NewTable(func(h House) ids.HouseID { return h.ID }),
		systems:       NewTable(func(s System) ids.SystemID { return s.ID }),
		colonies:      NewTable(func(c Colony) ids.ColonyID { return c.ID }),
		facilities:    NewTable(func(f Facility) ids.FacilityID { return f.ID }),
		fleets:        NewTable(func(f Fleet) ids.FleetID { return f.ID }),
		squadrons:     NewTable(func(s Squadron) ids.SquadronID { return s.ID }),
		ships:         NewTable(func(s Ship) ids.ShipID { return s.ID }),
		groundUnits:   NewTable(func(g GroundUnit) ids.GroundUnitID { return g.ID }),
		constructions: NewTable(func(c ConstructionProject) ids.ConstructionProjectID { return c.ID }),
		repairs:       NewTable(func(r RepairProject) ids.RepairProjectID { return r.ID }),
		transfers:     NewTable(func(p PopulationTransfer) ids.PopulationTransferID { return p.ID }),

		coloniesByOwner:         map[ids.HouseID][]ids.ColonyID{},
		colonyBySystem:          map[ids.SystemID]ids.ColonyID{},
		fleetsByLocation:        map[ids.SystemID][]ids.FleetID{},
		shipsBySquadron:         map[ids.SquadronID][]ids.ShipID{},
		squadronsByFleet:        map[ids.FleetID][]ids.SquadronID{},
		squadronsByHouse:        map[ids.HouseID][]ids.SquadronID{},
		neoriasByColony:         map[ids.ColonyID][]ids.FacilityID{},
		kastrasByColony:         map[ids.ColonyID][]ids.FacilityID{},
		groundUnitsByColony:     map[ids.ColonyID][]ids.GroundUnitID{},
		groundUnitsByTransport:  map[ids.FleetID][]ids.GroundUnitID{},
		constructionsByColony:   map[ids.ColonyID][]ids.ConstructionProjectID{},
		constructionsByFacility: map[ids.FacilityID][]ids.ConstructionProjectID{},
	}
}

func removeID[T comparable](s []T, v T) []T {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// ---- House ----

// AddHouse mints a new HouseID and inserts h, returning the assigned ID.
func (s *State) AddHouse(h House) ids.HouseID {
	h.ID = ids.HouseID(s.houseCounter.Next())
	s.houses.Insert(h)
	return h.ID
}

// House returns the house for id.
func (s *State) House(id ids.HouseID) (House, bool) { return s.houses.Get(id) }

// UpdateHouse replaces the stored record for h.ID.
func (s *State) UpdateHouse(h House) { s.houses.Update(h.ID, h) }

// AllHouses returns every house sorted by ascending ID (spec.md §5 ordering
// guarantee 2: houses are processed in ascending HouseID).
func (s *State) AllHouses() []House {
	out := s.houses.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- System ----

func (s *State) AddSystem(sys System) ids.SystemID {
	sys.ID = ids.SystemID(s.systemCounter.Next())
	s.systems.Insert(sys)
	return sys.ID
}

func (s *State) System(id ids.SystemID) (System, bool) { return s.systems.Get(id) }

// AllSystems returns every system, sorted by ascending ID.
func (s *State) AllSystems() []System {
	out := s.systems.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- Colony ----

// AddColony mints a ColonyID, inserts c, and maintains the by_owner/by_system
// indices (spec.md §3 invariant 4).
func (s *State) AddColony(c Colony) ids.ColonyID {
	c.ID = ids.ColonyID(s.colonyCounter.Next())
	s.colonies.Insert(c)
	s.coloniesByOwner[c.Owner] = append(s.coloniesByOwner[c.Owner], c.ID)
	if _, occupied := s.colonyBySystem[c.System]; occupied {
		panic(fmt.Errorf("state: system %d already has a colony", c.System))
	}
	s.colonyBySystem[c.System] = c.ID
	return c.ID
}

func (s *State) Colony(id ids.ColonyID) (Colony, bool) { return s.colonies.Get(id) }

// UpdateColony replaces the stored record, re-homing the by_owner index if
// Owner changed (e.g. invasion).
func (s *State) UpdateColony(c Colony) {
	old := s.colonies.MustGet(c.ID)
	if old.Owner != c.Owner {
		s.coloniesByOwner[old.Owner] = removeID(s.coloniesByOwner[old.Owner], c.ID)
		s.coloniesByOwner[c.Owner] = append(s.coloniesByOwner[c.Owner], c.ID)
	}
	s.colonies.Update(c.ID, c)
}

// DelColony removes a colony and its index entries (liquidation/invasion).
func (s *State) DelColony(id ids.ColonyID) {
	c, ok := s.colonies.Get(id)
	if !ok {
		return
	}
	s.coloniesByOwner[c.Owner] = removeID(s.coloniesByOwner[c.Owner], id)
	delete(s.colonyBySystem, c.System)
	s.colonies.Delete(id)
}

// ColoniesOwnedBy returns the colony IDs owned by h, sorted ascending.
func (s *State) ColoniesOwnedBy(h ids.HouseID) []ids.ColonyID {
	out := append([]ids.ColonyID(nil), s.coloniesByOwner[h]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ColonyAtSystem returns the colony occupying sys, if any.
func (s *State) ColonyAtSystem(sys ids.SystemID) (ids.ColonyID, bool) {
	id, ok := s.colonyBySystem[sys]
	return id, ok
}

// AllColonies returns every colony, sorted by ascending ID.
func (s *State) AllColonies() []Colony {
	out := s.colonies.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- Facility ----

func (s *State) AddFacility(f Facility) ids.FacilityID {
	f.ID = ids.FacilityID(s.facilityCounter.Next())
	s.facilities.Insert(f)
	if f.Kind == FacilityKindNeoria {
		s.neoriasByColony[f.Colony] = append(s.neoriasByColony[f.Colony], f.ID)
	} else {
		s.kastrasByColony[f.Colony] = append(s.kastrasByColony[f.Colony], f.ID)
	}
	return f.ID
}

func (s *State) Facility(id ids.FacilityID) (Facility, bool) { return s.facilities.Get(id) }
func (s *State) UpdateFacility(f Facility)                   { s.facilities.Update(f.ID, f) }

func (s *State) DelFacility(id ids.FacilityID) {
	f, ok := s.facilities.Get(id)
	if !ok {
		return
	}
	if f.Kind == FacilityKindNeoria {
		s.neoriasByColony[f.Colony] = removeID(s.neoriasByColony[f.Colony], id)
	} else {
		s.kastrasByColony[f.Colony] = removeID(s.kastrasByColony[f.Colony], id)
	}
	s.facilities.Delete(id)
}

// NeoriasAt and KastrasAt back the "neorias.by_colony / kastras.by_colony"
// secondary index from spec.md §3.
func (s *State) NeoriasAt(c ids.ColonyID) []ids.FacilityID {
	return append([]ids.FacilityID(nil), s.neoriasByColony[c]...)
}
func (s *State) KastrasAt(c ids.ColonyID) []ids.FacilityID {
	return append([]ids.FacilityID(nil), s.kastrasByColony[c]...)
}

// AllFacilities returns every facility, sorted by ascending ID.
func (s *State) AllFacilities() []Facility {
	out := s.facilities.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- Fleet ----

func (s *State) AddFleet(f Fleet) ids.FleetID {
	f.ID = ids.FleetID(s.fleetCounter.Next())
	s.fleets.Insert(f)
	s.fleetsByLocation[f.Location] = append(s.fleetsByLocation[f.Location], f.ID)
	return f.ID
}

func (s *State) Fleet(id ids.FleetID) (Fleet, bool) { return s.fleets.Get(id) }

// UpdateFleet replaces the stored record, re-homing the by_location index if
// Location changed.
func (s *State) UpdateFleet(f Fleet) {
	old := s.fleets.MustGet(f.ID)
	if old.Location != f.Location {
		s.fleetsByLocation[old.Location] = removeID(s.fleetsByLocation[old.Location], f.ID)
		s.fleetsByLocation[f.Location] = append(s.fleetsByLocation[f.Location], f.ID)
	}
	s.fleets.Update(f.ID, f)
}

func (s *State) DelFleet(id ids.FleetID) {
	f, ok := s.fleets.Get(id)
	if !ok {
		return
	}
	s.fleetsByLocation[f.Location] = removeID(s.fleetsByLocation[f.Location], id)
	s.fleets.Delete(id)
}

// FleetsAt returns the fleet IDs present at sys, sorted ascending.
func (s *State) FleetsAt(sys ids.SystemID) []ids.FleetID {
	out := append([]ids.FleetID(nil), s.fleetsByLocation[sys]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllFleets returns every fleet, sorted by ascending ID.
func (s *State) AllFleets() []Fleet {
	out := s.fleets.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- Squadron ----

func (s *State) AddSquadron(sq Squadron) ids.SquadronID {
	sq.ID = ids.SquadronID(s.squadronCounter.Next())
	s.squadrons.Insert(sq)
	s.squadronsByFleet[sq.Fleet] = append(s.squadronsByFleet[sq.Fleet], sq.ID)
	s.squadronsByHouse[sq.Owner] = append(s.squadronsByHouse[sq.Owner], sq.ID)
	return sq.ID
}

func (s *State) Squadron(id ids.SquadronID) (Squadron, bool) { return s.squadrons.Get(id) }

func (s *State) UpdateSquadron(sq Squadron) {
	old := s.squadrons.MustGet(sq.ID)
	if old.Fleet != sq.Fleet {
		s.squadronsByFleet[old.Fleet] = removeID(s.squadronsByFleet[old.Fleet], sq.ID)
		s.squadronsByFleet[sq.Fleet] = append(s.squadronsByFleet[sq.Fleet], sq.ID)
	}
	if old.Owner != sq.Owner {
		s.squadronsByHouse[old.Owner] = removeID(s.squadronsByHouse[old.Owner], sq.ID)
		s.squadronsByHouse[sq.Owner] = append(s.squadronsByHouse[sq.Owner], sq.ID)
	}
	s.squadrons.Update(sq.ID, sq)
}

func (s *State) DelSquadron(id ids.SquadronID) {
	sq, ok := s.squadrons.Get(id)
	if !ok {
		return
	}
	s.squadronsByFleet[sq.Fleet] = removeID(s.squadronsByFleet[sq.Fleet], id)
	s.squadronsByHouse[sq.Owner] = removeID(s.squadronsByHouse[sq.Owner], id)
	s.squadrons.Delete(id)
}

// SquadronsOf returns the squadron IDs belonging to fleet f, sorted.
func (s *State) SquadronsOf(f ids.FleetID) []ids.SquadronID {
	out := append([]ids.SquadronID(nil), s.squadronsByFleet[f]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SquadronsOwnedBy returns every squadron owned by h, sorted.
func (s *State) SquadronsOwnedBy(h ids.HouseID) []ids.SquadronID {
	out := append([]ids.SquadronID(nil), s.squadronsByHouse[h]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllSquadrons returns every squadron, sorted by ascending ID.
func (s *State) AllSquadrons() []Squadron {
	out := s.squadrons.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- Ship ----

func (s *State) AddShip(sh Ship) ids.ShipID {
	sh.ID = ids.ShipID(s.shipCounter.Next())
	s.ships.Insert(sh)
	s.shipsBySquadron[sh.Squadron] = append(s.shipsBySquadron[sh.Squadron], sh.ID)
	return sh.ID
}

func (s *State) Ship(id ids.ShipID) (Ship, bool) { return s.ships.Get(id) }

func (s *State) UpdateShip(sh Ship) {
	old := s.ships.MustGet(sh.ID)
	if old.Squadron != sh.Squadron {
		s.shipsBySquadron[old.Squadron] = removeID(s.shipsBySquadron[old.Squadron], sh.ID)
		s.shipsBySquadron[sh.Squadron] = append(s.shipsBySquadron[sh.Squadron], sh.ID)
	}
	s.ships.Update(sh.ID, sh)
}

func (s *State) DelShip(id ids.ShipID) {
	sh, ok := s.ships.Get(id)
	if !ok {
		return
	}
	s.shipsBySquadron[sh.Squadron] = removeID(s.shipsBySquadron[sh.Squadron], id)
	s.ships.Delete(id)
}

// ShipsOf returns the ship IDs in squadron sq, sorted.
func (s *State) ShipsOf(sq ids.SquadronID) []ids.ShipID {
	out := append([]ids.ShipID(nil), s.shipsBySquadron[sq]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllShips returns every ship, sorted by ascending ID.
func (s *State) AllShips() []Ship {
	out := s.ships.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- GroundUnit ----

func (s *State) AddGroundUnit(g GroundUnit) ids.GroundUnitID {
	g.ID = ids.GroundUnitID(s.groundUnitCounter.Next())
	s.groundUnits.Insert(g)
	s.groundUnitsByColony[g.Colony] = append(s.groundUnitsByColony[g.Colony], g.ID)
	if g.Transport != 0 {
		s.groundUnitsByTransport[g.Transport] = append(s.groundUnitsByTransport[g.Transport], g.ID)
	}
	return g.ID
}

func (s *State) GroundUnit(id ids.GroundUnitID) (GroundUnit, bool) { return s.groundUnits.Get(id) }

func (s *State) DelGroundUnit(id ids.GroundUnitID) {
	g, ok := s.groundUnits.Get(id)
	if !ok {
		return
	}
	s.groundUnitsByColony[g.Colony] = removeID(s.groundUnitsByColony[g.Colony], id)
	if g.Transport != 0 {
		s.groundUnitsByTransport[g.Transport] = removeID(s.groundUnitsByTransport[g.Transport], id)
	}
	s.groundUnits.Delete(id)
}

// GroundUnitsAt returns the ground units garrisoned at colony c.
func (s *State) GroundUnitsAt(c ids.ColonyID) []ids.GroundUnitID {
	return append([]ids.GroundUnitID(nil), s.groundUnitsByColony[c]...)
}

// AllGroundUnits returns every ground unit, sorted by ascending ID.
func (s *State) AllGroundUnits() []GroundUnit {
	out := s.groundUnits.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- ConstructionProject ----

func (s *State) AddConstruction(c ConstructionProject) ids.ConstructionProjectID {
	c.ID = ids.ConstructionProjectID(s.constructionCounter.Next())
	s.constructions.Insert(c)
	s.constructionsByColony[c.Colony] = append(s.constructionsByColony[c.Colony], c.ID)
	if c.Facility != 0 {
		s.constructionsByFacility[c.Facility] = append(s.constructionsByFacility[c.Facility], c.ID)
	}
	return c.ID
}

func (s *State) Construction(id ids.ConstructionProjectID) (ConstructionProject, bool) {
	return s.constructions.Get(id)
}
func (s *State) UpdateConstruction(c ConstructionProject) { s.constructions.Update(c.ID, c) }

func (s *State) DelConstruction(id ids.ConstructionProjectID) {
	c, ok := s.constructions.Get(id)
	if !ok {
		return
	}
	s.constructionsByColony[c.Colony] = removeID(s.constructionsByColony[c.Colony], id)
	if c.Facility != 0 {
		s.constructionsByFacility[c.Facility] = removeID(s.constructionsByFacility[c.Facility], id)
	}
	s.constructions.Delete(id)
}

// ConstructionsAt returns the construction projects queued at colony c,
// sorted by ascending ID (FIFO queue order).
func (s *State) ConstructionsAt(c ids.ColonyID) []ids.ConstructionProjectID {
	out := append([]ids.ConstructionProjectID(nil), s.constructionsByColony[c]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllConstructions returns every construction project, sorted by ascending ID.
func (s *State) AllConstructions() []ConstructionProject {
	out := s.constructions.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- RepairProject ----

func (s *State) AddRepair(r RepairProject) ids.RepairProjectID {
	r.ID = ids.RepairProjectID(s.repairCounter.Next())
	s.repairs.Insert(r)
	return r.ID
}
func (s *State) Repair(id ids.RepairProjectID) (RepairProject, bool) { return s.repairs.Get(id) }
func (s *State) UpdateRepair(r RepairProject)                        { s.repairs.Update(r.ID, r) }
func (s *State) DelRepair(id ids.RepairProjectID)                    { s.repairs.Delete(id) }

// AllRepairs returns every repair project, sorted by ascending ID.
func (s *State) AllRepairs() []RepairProject {
	out := s.repairs.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- PopulationTransfer ----

func (s *State) AddTransfer(p PopulationTransfer) ids.PopulationTransferID {
	p.ID = ids.PopulationTransferID(s.transferCounter.Next())
	s.transfers.Insert(p)
	return p.ID
}
func (s *State) Transfer(id ids.PopulationTransferID) (PopulationTransfer, bool) {
	return s.transfers.Get(id)
}
func (s *State) UpdateTransfer(p PopulationTransfer)     { s.transfers.Update(p.ID, p) }
func (s *State) DelTransfer(id ids.PopulationTransferID) { s.transfers.Delete(id) }

// AllTransfers returns every population transfer, sorted by ascending ID.
func (s *State) AllTransfers() []PopulationTransfer {
	out := s.transfers.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TransfersOf returns every in-flight transfer owned by h (used to enforce
// the 5-concurrent-transfers cap from spec.md §4.4).
func (s *State) TransfersOf(h ids.HouseID) []PopulationTransfer {
	var out []PopulationTransfer
	s.transfers.Range(func(p PopulationTransfer) bool {
		if p.Owner == h {
			out = append(out, p)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clone performs a deep-enough copy of State to serve as the pre-turn
// snapshot the orchestrator restores on a fatal invariant violation
// (spec.md §7). Tables and indices are copied, and records are copied by
// value; slice and map fields inside a record (e.g. Colony.FacilityIDs,
// House.ResearchAllocation) still share their backing storage with the
// original.
func (s *State) Clone() *State {
	clone := *s
	clone.houses = cloneTable(s.houses)
	clone.systems = cloneTable(s.systems)
	clone.colonies = cloneTable(s.colonies)
	clone.facilities = cloneTable(s.facilities)
	clone.fleets = cloneTable(s.fleets)
	clone.squadrons = cloneTable(s.squadrons)
	clone.ships = cloneTable(s.ships)
	clone.groundUnits = cloneTable(s.groundUnits)
	clone.constructions = cloneTable(s.constructions)
	clone.repairs = cloneTable(s.repairs)
	clone.transfers = cloneTable(s.transfers)

	clone.coloniesByOwner = cloneIndex(s.coloniesByOwner)
	clone.colonyBySystem = map[ids.SystemID]ids.ColonyID{}
	for k, v := range s.colonyBySystem {
		clone.colonyBySystem[k] = v
	}
	clone.fleetsByLocation = cloneIndex(s.fleetsByLocation)
	clone.shipsBySquadron = cloneIndex(s.shipsBySquadron)
	clone.squadronsByFleet = cloneIndex(s.squadronsByFleet)
	clone.squadronsByHouse = cloneIndex(s.squadronsByHouse)
	clone.neoriasByColony = cloneIndex(s.neoriasByColony)
	clone.kastrasByColony = cloneIndex(s.kastrasByColony)
	clone.groundUnitsByColony = cloneIndex(s.groundUnitsByColony)
	clone.groundUnitsByTransport = cloneIndex(s.groundUnitsByTransport)
	clone.constructionsByColony = cloneIndex(s.constructionsByColony)
	clone.constructionsByFacility = cloneIndex(s.constructionsByFacility)

	hc := *s.houseCounter
	clone.houseCounter = &hc
	sc := *s.systemCounter
	clone.systemCounter = &sc
	cc := *s.colonyCounter
	clone.colonyCounter = &cc
	fc := *s.facilityCounter
	clone.facilityCounter = &fc
	flc := *s.fleetCounter
	clone.fleetCounter = &flc
	sqc := *s.squadronCounter
	clone.squadronCounter = &sqc
	shc := *s.shipCounter
	clone.shipCounter = &shc
	guc := *s.groundUnitCounter
	clone.groundUnitCounter = &guc
	conc := *s.constructionCounter
	clone.constructionCounter = &conc
	repc := *s.repairCounter
	clone.repairCounter = &repc
	trc := *s.transferCounter
	clone.transferCounter = &trc

	return &clone
}

func cloneTable[ID comparable, T any](t *Table[ID, T]) *Table[ID, T] {
	clone := &Table[ID, T]{
		records: append([]T(nil), t.records...),
		index:   make(map[ID]int, len(t.index)),
		idOf:    t.idOf,
	}
	for k, v := range t.index {
		clone.index[k] = v
	}
	return clone
}

func cloneIndex[K comparable, V any](m map[K][]V) map[K][]V {
	clone := make(map[K][]V, len(m))
	for k, v := range m {
		clone[k] = append([]V(nil), v...)
	}
	return clone
}
