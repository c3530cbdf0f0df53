package diplomacy

import "github.com/nicoberrocal/nomarch/ids"

// MemoryProvider adapts one game's *State to the Provider interface —
// generalized from the teacher's MemoryProvider (which multiplexed many
// maps, each keyed by bson.ObjectID) to the engine's single-State-per-game
// shape, since the turn-resolution engine only ever has one active game.
type MemoryProvider struct {
	state *State
}

// NewMemoryProvider wraps an existing diplomacy.State.
func NewMemoryProvider(state *State) *MemoryProvider {
	return &MemoryProvider{state: state}
}

// AreEnemies reports whether a and b are currently at Enemy.
func (p *MemoryProvider) AreEnemies(a, b ids.HouseID, turn uint32) bool {
	return p.state.Get(a, b) == RelationEnemy
}

// ArePacted reports whether a and b are Neutral and neither is Isolated —
// i.e. a Non-Aggression Pact attack against the other would count as a
// violation (spec.md §4.7).
func (p *MemoryProvider) ArePacted(a, b ids.HouseID, turn uint32) bool {
	return p.state.Get(a, b) == RelationNeutral &&
		!p.state.IsIsolated(a, turn) && !p.state.IsIsolated(b, turn)
}
