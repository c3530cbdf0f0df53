// Package capacity enforces the three squadron/fighter limits from spec.md
// §4.6: capital squadron cap, total squadron cap, and fighter-per-colony
// cap, each with a 2-turn grace period before auto-disband/scrap kicks in.
// It generalizes the teacher's ships/stack.go capacity bookkeeping (a stack
// tracks how many ships it can still absorb) up to the house level.
package capacity

import (
	"sort"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/state"
)

// Limits is the computed set of capacity ceilings for one house at the
// current IU total (spec.md §4.6).
type Limits struct {
	CapitalSquadrons int
	TotalSquadrons   int
}

// ComputeLimits derives a house's squadron ceilings from its total colony IU:
//
//	capitalCap = max(CapitalSquadronMin, totalIU / CapitalSquadronIUDivisor)
//	totalCap   = max(TotalSquadronMin,   totalIU / TotalSquadronIUDivisor)
//
// both scaled by MapSizeMultiplier (spec.md §4.6).
func ComputeLimits(cfg config.MilitaryConfig, totalIU int64) Limits {
	capital := int(float64(totalIU) / float64(cfg.CapitalSquadronIUDivisor) * cfg.MapSizeMultiplier)
	if capital < cfg.CapitalSquadronMin {
		capital = cfg.CapitalSquadronMin
	}
	total := int(float64(totalIU) / float64(cfg.TotalSquadronIUDivisor) * cfg.MapSizeMultiplier)
	if total < cfg.TotalSquadronMin {
		total = cfg.TotalSquadronMin
	}
	return Limits{CapitalSquadrons: capital, TotalSquadrons: total}
}

// OverageTracker tracks, per house, how many consecutive turns it has been
// over a given capacity limit. Grace expires after cfg.GraceTurns (spec.md
// §4.6); the caller (package engine) is responsible for persisting this
// across turns — it is not part of state.State because it's bookkeeping for
// enforcement timing, not world data.
type OverageTracker struct {
	CapitalOverTurns map[ids.HouseID]int
	TotalOverTurns   map[ids.HouseID]int
	FighterOverTurns map[ids.ColonyID]int
}

// NewOverageTracker returns an empty tracker.
func NewOverageTracker() *OverageTracker {
	return &OverageTracker{
		CapitalOverTurns: map[ids.HouseID]int{},
		TotalOverTurns:   map[ids.HouseID]int{},
		FighterOverTurns: map[ids.ColonyID]int{},
	}
}

// Action describes one enforcement step the capacity check produced.
type Action struct {
	House        ids.HouseID
	Squadron     ids.SquadronID // 0 for fighter-hangar overflow
	Colony       ids.ColonyID   // non-zero for fighter-hangar overflow
	Limit        string         // "Capital" | "Total" | "Fighters"
	SalvageTotal int
}

func totalIU(s *state.State, h ids.HouseID) int64 {
	var sum int64
	for _, cid := range s.ColoniesOwnedBy(h) {
		if c, ok := s.Colony(cid); ok {
			sum += c.IU
		}
	}
	return sum
}

func isCapitalSquadron(s *state.State, sq state.Squadron) bool {
	return sq.Type == state.SquadronCombat
}

// Enforce checks house h's squadron counts against its computed limits,
// advances or resets the grace counters in tracker, and returns the
// auto-disband/scrap actions for squadrons/fighters that have exceeded their
// limit for more than cfg.GraceTurns consecutive turns. It does not mutate
// state.State; the caller applies the returned actions (spec.md §4.6's
// plan/apply split, mirroring the economy package's shortfall cascade).
func Enforce(s *state.State, cfg config.MilitaryConfig, tracker *OverageTracker, h ids.HouseID) []Action {
	squadronIDs := s.SquadronsOwnedBy(h)
	sort.Slice(squadronIDs, func(i, j int) bool { return squadronIDs[i] < squadronIDs[j] })

	var capitalCount, totalCount int
	var capitalIDs []ids.SquadronID
	for _, sqID := range squadronIDs {
		sq, ok := s.Squadron(sqID)
		if !ok {
			continue
		}
		totalCount++
		if isCapitalSquadron(s, sq) {
			capitalCount++
			capitalIDs = append(capitalIDs, sqID)
		}
	}

	limits := ComputeLimits(cfg, totalIU(s, h))
	var actions []Action

	if capitalCount > limits.CapitalSquadrons {
		tracker.CapitalOverTurns[h]++
	} else {
		tracker.CapitalOverTurns[h] = 0
	}
	if tracker.CapitalOverTurns[h] > cfg.GraceTurns {
		excess := capitalCount - limits.CapitalSquadrons
		// Disband the highest-ID (newest) capital squadrons first — a house
		// over the cap kept its oldest, most-invested ships.
		for i := len(capitalIDs) - 1; i >= 0 && excess > 0; i-- {
			actions = append(actions, Action{House: h, Squadron: capitalIDs[i], Limit: "Capital", SalvageTotal: len(s.ShipsOf(capitalIDs[i]))})
			excess--
		}
	}

	if totalCount > limits.TotalSquadrons {
		tracker.TotalOverTurns[h]++
	} else {
		tracker.TotalOverTurns[h] = 0
	}
	if tracker.TotalOverTurns[h] > cfg.GraceTurns {
		excess := totalCount - limits.TotalSquadrons
		for i := len(squadronIDs) - 1; i >= 0 && excess > 0; i-- {
			sqID := squadronIDs[i]
			alreadyFlagged := false
			for _, a := range actions {
				if a.Squadron == sqID {
					alreadyFlagged = true
				}
			}
			if alreadyFlagged {
				continue
			}
			actions = append(actions, Action{House: h, Squadron: sqID, Limit: "Total", SalvageTotal: len(s.ShipsOf(sqID))})
			excess--
		}
	}

	for _, cid := range s.ColoniesOwnedBy(h) {
		c, ok := s.Colony(cid)
		if !ok {
			continue
		}
		cap := fighterCapacity(cfg, c)
		if len(c.FighterHangar) > cap {
			tracker.FighterOverTurns[cid]++
		} else {
			tracker.FighterOverTurns[cid] = 0
		}
		if tracker.FighterOverTurns[cid] > cfg.GraceTurns {
			excess := len(c.FighterHangar) - cap
			actions = append(actions, Action{House: h, Colony: cid, Limit: "Fighters", SalvageTotal: excess})
		}
	}

	return actions
}

func fighterCapacity(cfg config.MilitaryConfig, c state.Colony) int {
	return cfg.TotalSquadronMin // flat per-colony hangar cap; does not scale with IU or FD tech
}

// Apply performs the disbands/scraps an Enforce call produced, returning the
// total salvage recovered.
func Apply(s *state.State, actions []Action) int {
	salvage := 0
	for _, a := range actions {
		switch a.Limit {
		case "Fighters":
			c, ok := s.Colony(a.Colony)
			if !ok {
				continue
			}
			n := a.SalvageTotal
			if n > len(c.FighterHangar) {
				n = len(c.FighterHangar)
			}
			for i := 0; i < n; i++ {
				shipID := c.FighterHangar[len(c.FighterHangar)-1]
				c.FighterHangar = c.FighterHangar[:len(c.FighterHangar)-1]
				s.DelShip(shipID)
				salvage++
			}
			s.UpdateColony(c)
		default:
			sq, ok := s.Squadron(a.Squadron)
			if !ok {
				continue
			}
			for _, shipID := range s.ShipsOf(sq.ID) {
				s.DelShip(shipID)
				salvage++
			}
			s.DelSquadron(sq.ID)
		}
	}
	return salvage
}
