// Package diplomacy implements the 3-valued relation lattice between houses
// (spec.md §4.7): Neutral / Hostile / Enemy, Non-Aggression Pact violation
// tracking, and the Dishonored/Isolation penalty windows. It generalizes the
// teacher repo's normalized-pair relation map (diplomacy.Pair/normalizePair,
// keyed by ObjectID with time.Time expiry) to turn-numbered expiry keyed by
// the engine's dense HouseID.
package diplomacy

import "github.com/nicoberrocal/nomarch/ids"

// Relation is one value of the 3-valued lattice.
type Relation string

const (
	RelationNeutral Relation = "Neutral"
	RelationHostile Relation = "Hostile"
	RelationEnemy   Relation = "Enemy"
)

// Pair is a normalized, order-independent house pair used as a map key —
// mirrors the teacher's diplomacy.Pair/normalizePair idiom, generalized from
// ObjectID byte comparison to plain uint32 comparison.
type Pair struct {
	A, B ids.HouseID
}

func normalizePair(a, b ids.HouseID) Pair {
	if a <= b {
		return Pair{A: a, B: b}
	}
	return Pair{A: b, B: a}
}
