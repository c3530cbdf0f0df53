package events

import "github.com/nicoberrocal/nomarch/ids"

// OrderRejectedPayload carries the validation diagnostic for a single
// rejected command inside an otherwise-accepted packet (spec.md §7).
type OrderRejectedPayload struct {
	Reason string
	Line   int
}

// OrderAbortedPayload carries why an in-flight order was cancelled mid-turn
// (target destroyed, path impassable, colony changed owner).
type OrderAbortedPayload struct {
	Reason string
}

// CombatResolvedPayload mirrors combat.Report without importing the combat
// package (events must not depend on combat to keep the dependency order in
// SPEC_FULL.md §2 acyclic); the engine copies the relevant fields in.
type CombatResolvedPayload struct {
	Participants  []ids.HouseID
	Victor        ids.HouseID // ids.Null for stalemate
	WasStalemate  bool
	TotalRounds   int
	LossesByHouse map[ids.HouseID]int
}

// ShortfallCascadePayload summarizes one house's whole maintenance-shortfall
// cascade for a turn (spec.md §4.4): one payload per cascade, not one per
// liquidation step.
type ShortfallCascadePayload struct {
	ConsecutiveShortfall int
	SalvageCollected     int
	PrestigeDelta        int
}

// PactViolationPayload records a Non-Aggression Pact violation (spec.md §4.7,
// §8 S6).
type PactViolationPayload struct {
	Violator      ids.HouseID
	Victim        ids.HouseID
	RepeatCount   int
	PrestigeDelta int
}

// EspionageResolvedPayload records the outcome of one espionage operation
// (spec.md §4.7).
type EspionageResolvedPayload struct {
	Attacker  ids.HouseID
	Defender  ids.HouseID
	Detected  bool
	Succeeded bool
	Magnitude float64
}

// CapacityEnforcedPayload records an auto-disband/scrap triggered by
// capacity enforcement (spec.md §4.6).
type CapacityEnforcedPayload struct {
	Limit        string
	Excess       int
	SalvageTotal int
}
