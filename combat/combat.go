// Package combat resolves space/orbital combat at one system per spec.md
// §4.3: Ambush -> Fighters -> Capitals sub-phases per round, CER rolls
// mapped through a piecewise damage-multiplier table, a desperation round at
// five stale rounds, retreat from round two, and an absolute 20-round
// ceiling. It generalizes the teacher's ships/formation_combat.go
// CombatContext (attacker/defender stack, per-round damage application) from
// a single attacker/defender pair into a multi-house battle.
package combat

import (
	"math/rand"
	"sort"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/state"
)

// Report is the always-produced outcome of a resolved battle (spec.md §4.3:
// "No combat exception is fatal — the engine emits a report even for
// degenerate inputs").
type Report struct {
	System            ids.SystemID
	Turn              uint32
	Participants      []ids.HouseID
	Victor            ids.HouseID // ids.Null for stalemate
	WasStalemate      bool
	TacticalStalemate bool // true if ended via desperation-round no-progress
	TotalRounds       int
	LossesByHouse     map[ids.HouseID]int
	RetreatedHouses   []ids.HouseID
}

// side is one house's committed combatants for the duration of the battle.
type side struct {
	house     ids.HouseID
	squadrons []ids.SquadronID
}

// Resolve fights every hostile squadron present at sys to a conclusion. sides
// is keyed by house; callers (package engine) are responsible for grouping
// fleets at a system into mutually hostile sides before calling this.
// rng must already be seeded deterministically from (turn, game_seed) per
// spec.md's determinism contract — this package never seeds its own source.
func Resolve(s *state.State, cfg config.CombatConfig, rng *rand.Rand, sys ids.SystemID, turn uint32, houseSquadrons map[ids.HouseID][]ids.SquadronID) Report {
	report := Report{
		System:        sys,
		Turn:          turn,
		LossesByHouse: map[ids.HouseID]int{},
	}

	var sides []side
	for h, sqs := range houseSquadrons {
		sides = append(sides, side{house: h, squadrons: append([]ids.SquadronID(nil), sqs...)})
		report.Participants = append(report.Participants, h)
	}
	sort.Slice(sides, func(i, j int) bool { return sides[i].house < sides[j].house })
	sort.Slice(report.Participants, func(i, j int) bool { return report.Participants[i] < report.Participants[j] })

	if len(sides) < 2 {
		report.WasStalemate = true
		return report
	}

	staleRounds := 0
	round := 1
	for ; round <= cfg.MaxRounds; round++ {
		progressed := false
		cer := 0
		if round == 1 {
			cer += cfg.AmbushCERBonus
		}
		desperation := staleRounds >= cfg.DesperationTrigger
		if desperation {
			cer += cfg.DesperationCERBonus
		}

		for subphase := 0; subphase < 3; subphase++ {
			// 0 = Ambush (round 1 only), 1 = Fighters, 2 = Capitals
			if subphase == 0 && round != 1 {
				continue
			}
			changed := fightSubphase(s, cfg, rng, sides, subphase, cer, report.LossesByHouse)
			progressed = progressed || changed
		}

		sides = pruneEmptySides(s, sides)
		if len(sides) < 2 {
			break
		}

		if round >= 2 {
			retreating := evaluateRetreats(s, cfg, sides)
			for _, h := range retreating {
				report.RetreatedHouses = append(report.RetreatedHouses, h)
			}
			if len(retreating) > 0 {
				sides = removeHouses(sides, retreating)
			}
			if len(sides) < 2 {
				break
			}
		}

		if progressed {
			staleRounds = 0
		} else {
			staleRounds++
			if desperation {
				// Desperation round itself produced no progress: tactical
				// stalemate (spec.md §4.3).
				report.TacticalStalemate = true
				report.WasStalemate = true
				report.TotalRounds = round
				return report
			}
		}
	}

	if round > cfg.MaxRounds {
		report.TotalRounds = cfg.MaxRounds
		report.WasStalemate = true
		return report
	}
	report.TotalRounds = round

	if len(sides) == 1 {
		report.Victor = sides[0].house
	} else {
		report.WasStalemate = true
	}
	return report
}

// cerMultiplier maps a roll through the piecewise CER table, returning the
// highest band whose MinRoll does not exceed roll.
func cerMultiplier(bands []config.CERBand, roll int) float64 {
	mult := 0.0
	for _, b := range bands {
		if roll >= b.MinRoll && b.Multiplier > mult {
			mult = b.Multiplier
		}
	}
	return mult
}

// rollCER simulates the teacher's 2d6-style roll: two d6 plus flat modifiers.
func rollCER(rng *rand.Rand, modifier int) int {
	return rng.Intn(6) + 1 + rng.Intn(6) + 1 + modifier
}

func shipRole(cls string) string { return cls } // role lookup is config-driven; callers pass pre-resolved roles via squadron type

// fightSubphase resolves one Ambush/Fighters/Capitals pass: every eligible
// attacking ship on every side rolls CER and applies damage to a weighted-
// random target on an opposing side. Returns whether any squadron state
// changed (cripple or destruction) this subphase.
func fightSubphase(s *state.State, cfg config.CombatConfig, rng *rand.Rand, sides []side, subphase int, cerMod int, losses map[ids.HouseID]int) bool {
	changed := false
	for _, attackerSide := range sides {
		for _, sqID := range attackerSide.squadrons {
			sq, ok := s.Squadron(sqID)
			if !ok {
				continue
			}
			if !subphaseMatches(sq.Type, subphase) {
				continue
			}
			shipIDs := append([]ids.ShipID{sq.Flagship}, sq.OtherShips...)
			sort.Slice(shipIDs, func(i, j int) bool { return shipIDs[i] < shipIDs[j] })
			for _, shipID := range shipIDs {
				ship, ok := s.Ship(shipID)
				if !ok || ship.AS <= 0 {
					continue
				}
				target, targetSide, ok := pickTarget(s, cfg.TargetingWeights, rng, sides, attackerSide.house)
				if !ok {
					continue
				}
				roll := rollCER(rng, cerMod)
				mult := cerMultiplier(cfg.CERBands, roll)
				damage := int(float64(ship.AS) * mult)
				if applyDamage(s, target, damage) {
					changed = true
					losses[targetSide]++
				}
			}
		}
	}
	return changed
}

func subphaseMatches(t state.SquadronType, subphase int) bool {
	switch subphase {
	case 0: // Ambush: raiders/scouts/intel squadrons strike first
		return t == state.SquadronIntel
	case 1: // Fighters
		return t == state.SquadronFighter
	default: // Capitals: everything else that can fight
		return t == state.SquadronCombat || t == state.SquadronAuxiliary || t == state.SquadronExpansion
	}
}

// pickTarget performs weighted-random target selection across every
// opposing side, ties broken by lowest entity ID (spec.md §4.3).
func pickTarget(s *state.State, weights config.TargetingWeights, rng *rand.Rand, sides []side, attacker ids.HouseID) (ids.ShipID, ids.HouseID, bool) {
	type candidate struct {
		ship   ids.ShipID
		house  ids.HouseID
		weight float64
	}
	var pool []candidate
	for _, sd := range sides {
		if sd.house == attacker {
			continue
		}
		for _, sqID := range sd.squadrons {
			sq, ok := s.Squadron(sqID)
			if !ok {
				continue
			}
			w := weightFor(weights, sq.Type)
			for _, shipID := range append([]ids.ShipID{sq.Flagship}, sq.OtherShips...) {
				if _, ok := s.Ship(shipID); ok {
					pool = append(pool, candidate{ship: shipID, house: sd.house, weight: w})
				}
			}
		}
	}
	if len(pool) == 0 {
		return 0, 0, false
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].ship < pool[j].ship })

	total := 0.0
	for _, c := range pool {
		total += c.weight
	}
	if total <= 0 {
		return pool[0].ship, pool[0].house, true
	}
	r := rng.Float64() * total
	for _, c := range pool {
		if r < c.weight {
			return c.ship, c.house, true
		}
		r -= c.weight
	}
	last := pool[len(pool)-1]
	return last.ship, last.house, true
}

func weightFor(w config.TargetingWeights, t state.SquadronType) float64 {
	switch t {
	case state.SquadronCombat:
		return w.Capital
	case state.SquadronFighter:
		return w.Fighter
	case state.SquadronIntel:
		return w.Raider
	default:
		return w.Escort
	}
}

// applyDamage debits a ship's accumulated damage across however many hits it
// has taken this battle: once the running total crosses DS, the ship
// cripples (AS halved) and the counter resets to track the next crossing; a
// ship that crosses DS again while already crippled is destroyed (spec.md
// §4.3). Returns whether the ship's state changed (cripple or destruction).
func applyDamage(s *state.State, shipID ids.ShipID, damage int) bool {
	ship, ok := s.Ship(shipID)
	if !ok || damage <= 0 {
		return false
	}
	ship.AccumulatedDamage += damage
	if ship.AccumulatedDamage < ship.DS {
		s.UpdateShip(ship)
		return false
	}
	if ship.Crippled {
		s.DelShip(shipID)
		return true
	}
	ship.Crippled = true
	ship.AS /= 2
	ship.AccumulatedDamage = 0
	s.UpdateShip(ship)
	return true
}

func pruneEmptySides(s *state.State, sides []side) []side {
	var out []side
	for _, sd := range sides {
		var alive []ids.SquadronID
		for _, sqID := range sd.squadrons {
			sq, ok := s.Squadron(sqID)
			if !ok {
				continue
			}
			if len(s.ShipsOf(sqID)) == 0 {
				s.DelSquadron(sqID)
				continue
			}
			alive = append(alive, sq.ID)
		}
		if len(alive) > 0 {
			out = append(out, side{house: sd.house, squadrons: alive})
		}
	}
	return out
}

// evaluateRetreats applies the threat comparison from spec.md §4.3: a side
// whose opposing firepower exceeds its own firepower × (1 + RetreatThreshold)
// retreats starting round 2. Firepower is approximated as total remaining
// AS across the side's squadrons. Fleet ROE is not consulted; every side
// uses the same threshold.
func evaluateRetreats(s *state.State, cfg config.CombatConfig, sides []side) []ids.HouseID {
	firepower := map[ids.HouseID]int{}
	for _, sd := range sides {
		sum := 0
		for _, sqID := range sd.squadrons {
			sq, ok := s.Squadron(sqID)
			if !ok {
				continue
			}
			for _, shipID := range append([]ids.ShipID{sq.Flagship}, sq.OtherShips...) {
				if ship, ok := s.Ship(shipID); ok {
					sum += ship.AS
				}
			}
		}
		firepower[sd.house] = sum
	}

	var retreating []ids.HouseID
	for _, sd := range sides {
		opposing := 0
		for h, fp := range firepower {
			if h != sd.house {
				opposing += fp
			}
		}
		if float64(opposing) > float64(firepower[sd.house])*(1+cfg.RetreatThreshold) {
			retreating = append(retreating, sd.house)
		}
	}
	sort.Slice(retreating, func(i, j int) bool { return retreating[i] < retreating[j] })
	return retreating
}

func removeHouses(sides []side, houses []ids.HouseID) []side {
	remove := map[ids.HouseID]bool{}
	for _, h := range houses {
		remove[h] = true
	}
	var out []side
	for _, sd := range sides {
		if !remove[sd.house] {
			out = append(out, sd)
		}
	}
	return out
}
