// Package events defines the typed domain event log the engine emits for
// every turn (spec.md §6). Every event carries the common envelope
// {turn, optional house/system/fleet, description}; variant-specific data
// lives in a per-Type payload struct, mirroring the teacher repo's
// Ability/AbilityKind tagged-payload convention (ships/abilities.go).
package events

import "github.com/nicoberrocal/nomarch/ids"

// Type discriminates the event payload. Kept as a string so event logs are
// self-describing when inspected outside the engine (debug dumps, tests).
type Type string

const (
	TypeConstructionStarted    Type = "ConstructionStarted"
	TypeConstructionCancelled  Type = "ConstructionCancelled"
	TypePopulationTransfer     Type = "PopulationTransfer"
	TypeTerraformComplete      Type = "TerraformComplete"
	TypeFleetArrived           Type = "FleetArrived"
	TypeOrderIssued            Type = "OrderIssued"
	TypeOrderCompleted         Type = "OrderCompleted"
	TypeOrderRejected          Type = "OrderRejected"
	TypeOrderFailed            Type = "OrderFailed"
	TypeOrderAborted           Type = "OrderAborted"
	TypeStandingOrderSet       Type = "StandingOrderSet"
	TypeStandingOrderActivated Type = "StandingOrderActivated"
	TypeStandingOrderSuspended Type = "StandingOrderSuspended"
	TypeFleetEncounter         Type = "FleetEncounter"
	TypeFleetMerged            Type = "FleetMerged"
	TypeFleetDetachment        Type = "FleetDetachment"
	TypeFleetTransfer          Type = "FleetTransfer"
	TypeCargoLoaded            Type = "CargoLoaded"
	TypeCargoUnloaded          Type = "CargoUnloaded"
	TypeFleetDisbanded         Type = "FleetDisbanded"
	TypeSquadronDisbanded      Type = "SquadronDisbanded"
	TypeSquadronScrapped       Type = "SquadronScrapped"
	TypeResourceWarning        Type = "ResourceWarning"
	TypeThreatDetected         Type = "ThreatDetected"
	TypeAutomationCompleted    Type = "AutomationCompleted"
	TypeCombatResolved         Type = "CombatResolved"
	TypeBlockadeDeclared       Type = "BlockadeDeclared"
	TypeBlockadeLifted         Type = "BlockadeLifted"
	TypeEspionageDetected      Type = "EspionageDetected"
	TypeEspionageResolved      Type = "EspionageResolved"
	TypeDiplomaticTransition   Type = "DiplomaticTransition"
	TypePactViolation          Type = "PactViolation"
	TypeHouseStatusChanged     Type = "HouseStatusChanged"
	TypeColonyLiquidated       Type = "ColonyLiquidated"
)

// Event is the common envelope every emitted record shares. Payload holds
// the variant-specific data for Type; callers type-assert it based on Type.
type Event struct {
	Turn        uint32
	Type        Type
	HouseID     ids.HouseID  // 0 (ids.Null) if not house-scoped
	SystemID    ids.SystemID // 0 if not system-scoped
	FleetID     ids.FleetID  // 0 if not fleet-scoped
	Description string
	Payload     any
}

// Log accumulates events in emission order for one turn; it does not sort
// them, so their order is the order in which the engine emits them.
type Log struct {
	events []Event
}

// NewLog returns an empty event log.
func NewLog() *Log { return &Log{} }

// Emit appends ev to the log.
func (l *Log) Emit(ev Event) { l.events = append(l.events, ev) }

// All returns the accumulated events in emission order.
func (l *Log) All() []Event { return l.events }

// Len reports how many events have been emitted so far.
func (l *Log) Len() int { return len(l.events) }
