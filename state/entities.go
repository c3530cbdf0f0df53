// Package state owns every entity collection in the engine, their
// monotonic ID counters, and the secondary indices spec.md §3 requires to
// stay coherent after every mutation. It generalizes the teacher repo's
// ad hoc per-package maps (players.PlayerGameState.ColonizedSystems,
// orbitables.System.DefendingFleet, ships.ShipStack.by-fleet lookups) into
// one reusable Table[T] plus named index maps, all reachable only through
// the Get/Mutate/Query method families on State (spec.md §4.1).
package state

import "github.com/nicoberrocal/nomarch/ids"

// HouseStatus is the lifecycle state of a player faction (spec.md §3).
type HouseStatus string

const (
	HouseActive            HouseStatus = "Active"
	HouseAutopilot         HouseStatus = "Autopilot"
	HouseDefensiveCollapse HouseStatus = "DefensiveCollapse"
	HouseEliminated        HouseStatus = "Eliminated"
)

// TechLevels holds the per-field tech levels named in spec.md glossary.
type TechLevels struct {
	EL  int // Economic Level
	SL  int // Science Level
	CST int
	WEP int
	TER int
	ELI int
	CLK int
	SLD int
	CIC int
	FD  int
	ACO int
}

// House is a single player's faction (spec.md §3).
type House struct {
	ID       ids.HouseID
	Name     string
	Treasury int64 // signed
	Prestige int64 // signed
	Tech     TechLevels
	EBP      int // espionage budget points
	CIP      int // counter-intel points
	TaxRate  float64
	Status   HouseStatus

	// ResearchAllocation is this turn's TRP split by tech field, submitted via
	// the command packet; a shortfall cascade forfeits it (spec.md §4.4 step 2).
	ResearchAllocation map[string]float64

	ConsecutiveShortfalls       int
	ConsecutiveNegativePrestige int

	// DishonoredUntilTurn/IsolatedUntilTurn are not written by the engine;
	// the live pact-violation windows (spec.md §4.7) are kept in
	// diplomacy.State.
	DishonoredUntilTurn uint32
	IsolatedUntilTurn   uint32

	PendingProposals []DiplomaticProposal
}

// DiplomaticProposal is a pending pact/ceasefire offer awaiting the other
// house's acceptance.
type DiplomaticProposal struct {
	From ids.HouseID
	To   ids.HouseID
	Kind string // "Pact" | "Ceasefire"
	Turn uint32
}

// PlanetClass ranges from Extreme (least capacity) to Eden (most), per
// spec.md §3.
type PlanetClass string

const (
	PlanetExtreme PlanetClass = "Extreme"
	PlanetHostile PlanetClass = "Hostile"
	PlanetPoor    PlanetClass = "Poor"
	PlanetAverage PlanetClass = "Average"
	PlanetFertile PlanetClass = "Fertile"
	PlanetEden    PlanetClass = "Eden"
)

// PlanetCapacity maps a class to its population capacity K (spec.md §3:
// "Extreme -> Eden, capacities 20 -> 5000 PU").
var PlanetCapacity = map[PlanetClass]int{
	PlanetExtreme: 20,
	PlanetHostile: 100,
	PlanetPoor:    500,
	PlanetAverage: 1500,
	PlanetFertile: 3000,
	PlanetEden:    5000,
}

// ResourceRating is the per-system production multiplier category (spec.md
// glossary: RAW).
type ResourceRating string

const (
	ResourceVeryPoor ResourceRating = "VeryPoor"
	ResourcePoor     ResourceRating = "Poor"
	ResourceAverage  ResourceRating = "Average"
	ResourceRich     ResourceRating = "Rich"
	ResourceVeryRich ResourceRating = "VeryRich"
)

// HexCoord is an axial hex coordinate (q, r).
type HexCoord struct {
	Q, R int
}

// System is a star system sited on the hex map (spec.md §3).
type System struct {
	ID       ids.SystemID
	Coord    HexCoord
	Ring     int
	Class    PlanetClass
	Resource ResourceRating
}

// Colony occupies exactly one System (spec.md §3 invariant 4).
type Colony struct {
	ID         ids.ColonyID
	Owner      ids.HouseID
	System     ids.SystemID
	Population int64
	IU         int64 // industrial units
	TaxRate    float64

	FacilityIDs   []ids.FacilityID
	FighterHangar []ids.ShipID // embarked fighters, not in a squadron

	Blockaded        bool
	BlockadingHouses []ids.HouseID

	ConstructionQueue []ids.ConstructionProjectID
	RepairQueue       []ids.RepairProjectID

	AutomationBuild       bool
	AutomationFighterLoad bool

	UnassignedSquadrons []ids.SquadronID // must be empty at end of turn (invariant 7)
}

// FacilityKind distinguishes Neoria (production) from Kastra (defensive),
// per spec.md glossary.
type FacilityKind string

const (
	FacilityKindNeoria FacilityKind = "Neoria"
	FacilityKindKastra FacilityKind = "Kastra"
)

// FacilityState tracks battle damage to a facility.
type FacilityState string

const (
	FacilityUndamaged FacilityState = "Undamaged"
	FacilityCrippled  FacilityState = "Crippled"
)

// Facility is a Neoria (Spaceport/Shipyard/Drydock) or Kastra (Starbase).
type Facility struct {
	ID     ids.FacilityID
	Colony ids.ColonyID
	Kind   FacilityKind
	Class  string // config.FacilityClass value, kept as string to avoid an
	// import cycle between state and config
	State FacilityState

	ConstructionQueue []ids.ConstructionProjectID
	RepairQueue       []ids.RepairProjectID
}

// FleetStatus is the activation state of a fleet (spec.md §3).
type FleetStatus string

const (
	FleetActive     FleetStatus = "Active"
	FleetReserve    FleetStatus = "Reserve"
	FleetMothballed FleetStatus = "Mothballed"
)

// MissionState is the current order-execution state of a fleet.
type MissionState string

const (
	MissionIdle        MissionState = "Idle"
	MissionTraveling   MissionState = "Traveling"
	MissionExecuting   MissionState = "Executing"
	MissionScoutLocked MissionState = "ScoutLocked"
)

// Fleet is a collection of squadrons under one set of standing orders.
type Fleet struct {
	ID          ids.FleetID
	Owner       ids.HouseID
	Location    ids.SystemID
	Status      FleetStatus
	Mission     MissionState
	ROE         int // 0-10
	SquadronIDs []ids.SquadronID

	// HasAssignedCommand is false when Idle. The concrete command payload lives
	// in package fleets; state only tracks which fleet has one pending to
	// avoid an import cycle (fleets depends on state, not vice versa).
	HasAssignedCommand bool
	HasStandingOrder   bool
}

// SquadronType is derived from the flagship's class (spec.md §3).
type SquadronType string

const (
	SquadronCombat    SquadronType = "Combat"
	SquadronIntel     SquadronType = "Intel"
	SquadronExpansion SquadronType = "Expansion"
	SquadronAuxiliary SquadronType = "Auxiliary"
	SquadronFighter   SquadronType = "Fighter"
)

// Squadron groups ships under one flagship. Invariant 5 (spec.md §3):
// Σ ship.CommandCost ≤ flagship.CommandRating.
type Squadron struct {
	ID               ids.SquadronID
	Owner            ids.HouseID
	Fleet            ids.FleetID
	Flagship         ids.ShipID
	OtherShips       []ids.ShipID
	EmbarkedFighters []ids.ShipID
	Type             SquadronType
}

// CargoKind distinguishes the two cargo payloads a ship can carry.
type CargoKind string

const (
	CargoNone      CargoKind = ""
	CargoMarines   CargoKind = "Marines"
	CargoColonists CargoKind = "Colonists"
)

// Cargo is the optional payload carried by a transport-capable ship.
type Cargo struct {
	Kind     CargoKind
	Quantity int
	Capacity int
}

// Ship is a single hull. Class is kept as a string (config.ShipClass value)
// to avoid an import cycle between state and config.
type Ship struct {
	ID                ids.ShipID
	Owner             ids.HouseID
	Squadron          ids.SquadronID
	Class             string
	AS                int // WEP-tiered, resolved at construction time
	DS                int
	AccumulatedDamage int // damage taken since the last DS-threshold crossing
	Crippled          bool
	Cargo             Cargo
}

// GroundUnit is one ground unit. Class holds a config.GroundUnitClass value
// as a string to avoid an import cycle.
type GroundUnit struct {
	ID        ids.GroundUnitID
	Colony    ids.ColonyID
	Transport ids.FleetID // 0 if not embarked on a transport
	Class     string
}

// ConstructionProject tracks one in-progress build (spec.md §4.5).
type ConstructionProject struct {
	ID             ids.ConstructionProjectID
	Colony         ids.ColonyID
	Facility       ids.FacilityID
	TargetClass    string // ship or facility class being built
	IsShip         bool
	CostTotal      int
	CostPaid       int
	RemainingTurns int
	Owner          ids.HouseID
}

// RepairProject tracks one in-progress repair (spec.md §4.5).
type RepairProject struct {
	ID             ids.RepairProjectID
	Colony         ids.ColonyID
	Facility       ids.FacilityID
	TargetShip     ids.ShipID // 0 if repairing a facility instead
	CostTotal      int
	CostPaid       int
	RemainingTurns int
	Owner          ids.HouseID
}

// PopulationTransfer tracks a Space-Guild transfer in flight (spec.md §4.4).
type PopulationTransfer struct {
	ID             ids.PopulationTransferID
	Owner          ids.HouseID
	FromColony     ids.ColonyID
	ToColony       ids.ColonyID
	Quantity       int64
	Jumps          int
	RemainingTurns int
}
