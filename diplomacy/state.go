package diplomacy

import (
	"sort"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/ids"
)

// Entry is the stored relation for one house pair.
type Entry struct {
	Relation Relation
}

// ViolationRecord is one logged Non-Aggression Pact violation, used to scale
// the prestige penalty by repeat-violation count within the configured
// window (spec.md §4.7).
type ViolationRecord struct {
	Violator ids.HouseID
	Victim   ids.HouseID
	Turn     uint32
}

// State is the full diplomatic picture for one game: relations between every
// house pair, per-house Dishonored/Isolation expiry, and the violation
// history. Pairs are normalized before lookup, so a relation is symmetric:
// Get(a, b) always equals Get(b, a); a one-sided stance is not represented.
type State struct {
	Relations           map[Pair]Entry
	DishonoredUntilTurn map[ids.HouseID]uint32
	IsolatedUntilTurn   map[ids.HouseID]uint32
	Violations          []ViolationRecord
}

// New returns an empty diplomatic state; every house pair defaults to
// Neutral until recorded otherwise.
func New() *State {
	return &State{
		Relations:           map[Pair]Entry{},
		DishonoredUntilTurn: map[ids.HouseID]uint32{},
		IsolatedUntilTurn:   map[ids.HouseID]uint32{},
	}
}

// Get returns the current relation between a and b (Neutral by default).
func (s *State) Get(a, b ids.HouseID) Relation {
	e, ok := s.Relations[normalizePair(a, b)]
	if !ok {
		return RelationNeutral
	}
	return e.Relation
}

func (s *State) set(a, b ids.HouseID, r Relation) {
	s.Relations[normalizePair(a, b)] = Entry{Relation: r}
}

func rank(r Relation) int {
	switch r {
	case RelationHostile:
		return 1
	case RelationEnemy:
		return 2
	default:
		return 0
	}
}

// Declare moves the relation forward along the lattice by explicit
// declaration: Neutral -> Hostile -> Enemy. Declaring is a one-way ratchet;
// de-escalation only happens via an accepted ceasefire (spec.md §4.7).
func (s *State) Declare(a, b ids.HouseID, target Relation) {
	if rank(target) > rank(s.Get(a, b)) {
		s.set(a, b, target)
	}
}

// IsDishonored reports whether h is still inside its post-violation
// Dishonored window at turn.
func (s *State) IsDishonored(h ids.HouseID, turn uint32) bool {
	return turn < s.DishonoredUntilTurn[h]
}

// IsIsolated reports whether h is still barred from forming new pacts at
// turn.
func (s *State) IsIsolated(h ids.HouseID, turn uint32) bool {
	return turn < s.IsolatedUntilTurn[h]
}

// AcceptCeasefire performs Enemy -> Neutral for the pair. Callers are
// responsible for establishing that both sides proposed it — this method
// just commits the transition (mirrors the teacher's FormAlliance, which
// likewise trusts its caller to have checked eligibility).
func (s *State) AcceptCeasefire(a, b ids.HouseID) {
	s.set(a, b, RelationNeutral)
}

// RecordViolation logs a Non-Aggression Pact violation by violator against
// victim at turn, applies the Dishonored/Isolation windows, force-
// transitions the pair to Enemy, and returns the (negative) prestige delta
// to apply to violator — scaled by how many times violator has violated a
// pact in the last cfg.ViolationWindowTurns turns (spec.md §4.7, §8 S6).
func (s *State) RecordViolation(cfg config.DiplomacyConfig, prestige config.PrestigeConfig, violator, victim ids.HouseID, turn uint32) int {
	s.Violations = append(s.Violations, ViolationRecord{Violator: violator, Victim: victim, Turn: turn})

	repeatCount := 0
	for _, v := range s.Violations {
		if v.Violator == violator && turn >= v.Turn && turn-v.Turn <= uint32(cfg.ViolationWindowTurns) {
			repeatCount++
		}
	}

	s.DishonoredUntilTurn[violator] = turn + uint32(cfg.DishonoredTurns)
	s.IsolatedUntilTurn[violator] = turn + uint32(cfg.IsolationTurns)
	s.set(violator, victim, RelationEnemy)

	penalty := prestige.PactViolationBase + prestige.PactViolationPerRepeat*(repeatCount-1)
	return -abs(penalty)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// RelationsOf returns every relation house h is party to, keyed by the
// other house.
func (s *State) RelationsOf(h ids.HouseID) map[ids.HouseID]Relation {
	out := map[ids.HouseID]Relation{}
	for pair, entry := range s.Relations {
		switch {
		case pair.A == h:
			out[pair.B] = entry.Relation
		case pair.B == h:
			out[pair.A] = entry.Relation
		}
	}
	return out
}

// SortedHouses is a small determinism helper: ascending HouseID.
func SortedHouses(hs []ids.HouseID) []ids.HouseID {
	out := append([]ids.HouseID(nil), hs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
