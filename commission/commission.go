// Package commission implements the construction pipeline that spans turn
// boundaries (spec.md §4.5): build-order validation and debit, queue
// advancement, Unified Commissioning (draining pending_commissions at the
// start of the next Command phase before automation/new builds), auto-
// assignment to stationary fleets, and the spaceport/shipyard cost
// multiplier. It generalizes the teacher's declarative per-class rate-table
// idiom (ships/economy.go's EconomicCap map) to the cost-multiplier-by-
// facility-class table this phase applies.
package commission

import (
	"sort"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/state"
)

// CostMultiplier returns the commissioning cost multiplier for building at a
// facility of class facClass: Spaceports charge 200% of base cost on
// anything except Fighters (always 100% regardless of facility),
// Shipyards/Drydocks are 100% (spec.md §4.5).
func CostMultiplier(cfg config.ConstructionConfig, facClass config.FacilityClass, isFighter bool) float64 {
	if isFighter {
		return cfg.FighterCostMultiplier
	}
	if facClass == config.FacilitySpaceport {
		return cfg.SpaceportCostMultiplier
	}
	return cfg.ShipyardCostMultiplier
}

// DockCapacity returns a colony's total simultaneous build slots:
// Σ facility.docks × (1 + CST_bonus) across every Neoria sited there
// (spec.md §4.5).
func DockCapacity(cfg config.GameConfig, s *state.State, colony ids.ColonyID, cst int) int {
	total := 0
	for _, fid := range s.NeoriasAt(colony) {
		f, ok := s.Facility(fid)
		if !ok {
			continue
		}
		spec, ok := cfg.Facilities[config.FacilityClass(f.Class)]
		if !ok {
			continue
		}
		total += spec.Docks
	}
	bonus := 1 + float64(cst)*cfg.Construction.CSTDockBonusPerLevel
	return int(float64(total) * bonus)
}

// SubmitBuildOrder validates a new construction/ship order against treasury,
// tech unlock, and dock capacity, debits the cost immediately, and enqueues
// the project — returns an error rather than mutating state.State on any
// failure (spec.md §7: validation failures are per-command, never fatal).
func SubmitBuildOrder(cfg config.GameConfig, s *state.State, house ids.HouseID, colony ids.ColonyID, facility ids.FacilityID, targetClass string, isShip bool, minCST int, baseCost int, houseTech int) (ids.ConstructionProjectID, error) {
	h, ok := s.House(house)
	if !ok {
		return 0, errInvalidHouse
	}
	if houseTech < minCST {
		return 0, errTechLocked
	}

	c, ok := s.Colony(colony)
	if !ok || c.Owner != house {
		return 0, errNotOwned
	}

	f, ok := s.Facility(facility)
	if !ok || f.Colony != colony {
		return 0, errInvalidFacility
	}

	mult := CostMultiplier(cfg.Construction, config.FacilityClass(f.Class), targetClass == string(config.ShipFighter))
	cost := int(float64(baseCost) * mult)
	if int64(cost) > h.Treasury {
		return 0, errInsufficientFunds
	}

	inQueue := len(s.ConstructionsAt(colony))
	if inQueue >= DockCapacity(cfg, s, colony, houseTech) {
		return 0, errDockCapacityExceeded
	}

	h.Treasury -= int64(cost)
	s.UpdateHouse(h)

	proj := state.ConstructionProject{
		Colony: colony, Facility: facility, TargetClass: targetClass, IsShip: isShip,
		CostTotal: cost, CostPaid: cost, RemainingTurns: remainingTurnsFor(cost), Owner: house,
	}
	return s.AddConstruction(proj), nil
}

func remainingTurnsFor(cost int) int {
	turns := cost / 100
	if turns < 1 {
		turns = 1
	}
	return turns
}

// AdvanceQueues ticks every in-progress construction project by one turn
// (the Maintenance-phase step of spec.md §4.5); completed projects' IDs are
// returned so the caller can move them into pending commissions. Repair
// projects are not advanced.
func AdvanceQueues(s *state.State) (completedConstructions []ids.ConstructionProjectID) {
	for _, cid := range allColoniesWithProjects(s) {
		for _, pid := range s.ConstructionsAt(cid) {
			proj, ok := s.Construction(pid)
			if !ok {
				continue
			}
			proj.RemainingTurns--
			if proj.RemainingTurns <= 0 {
				completedConstructions = append(completedConstructions, pid)
			} else {
				s.UpdateConstruction(proj)
			}
		}
	}
	sort.Slice(completedConstructions, func(i, j int) bool { return completedConstructions[i] < completedConstructions[j] })
	return completedConstructions
}

func allColoniesWithProjects(s *state.State) []ids.ColonyID {
	seen := map[ids.ColonyID]bool{}
	var out []ids.ColonyID
	for _, h := range s.AllHouses() {
		for _, cid := range s.ColoniesOwnedBy(h.ID) {
			if !seen[cid] {
				seen[cid] = true
				out = append(out, cid)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Commission drains pending (completed) construction projects in ascending
// ID order — Unified Commissioning, spec.md §4.5: for each completed ship
// project, mint the ship and auto-assign it to a stationary fleet at the
// same colony's system (Idle/Hold/Guard/same-system Patrol only; Reserve and
// Mothballed fleets never receive reinforcements). Facility projects
// instead add the facility directly. Returns the IDs commissioned.
func Commission(s *state.State, pending []ids.ConstructionProjectID) []ids.ShipID {
	sort.Slice(pending, func(i, j int) bool { return pending[i] < pending[j] })

	var commissioned []ids.ShipID
	for _, pid := range pending {
		proj, ok := s.Construction(pid)
		if !ok {
			continue
		}
		if proj.IsShip {
			shipID := s.AddShip(state.Ship{Owner: proj.Owner, Class: proj.TargetClass, AS: 0, DS: 0})
			commissioned = append(commissioned, shipID)
			assignToStationaryFleet(s, proj, shipID)
		} else {
			s.AddFacility(state.Facility{Colony: proj.Colony, Kind: state.FacilityKindNeoria, Class: proj.TargetClass, State: state.FacilityUndamaged})
		}
		s.DelConstruction(pid)
	}
	return commissioned
}

func assignToStationaryFleet(s *state.State, proj state.ConstructionProject, shipID ids.ShipID) {
	colony, ok := s.Colony(proj.Colony)
	if !ok {
		return
	}
	candidates := s.FleetsAt(colony.System)
	for _, fid := range candidates {
		f, ok := s.Fleet(fid)
		if !ok || f.Owner != proj.Owner {
			continue
		}
		if f.Status != state.FleetActive {
			continue
		}
		if f.Mission != state.MissionIdle && f.Mission != state.MissionExecuting {
			continue
		}
		// Commissioned ships without a squadron stay unassigned until
		// colony automation forms a squadron around them — spec.md §8
		// invariant 7 requires that pool to drain by end of turn, which
		// colony automation (engine's Command phase) is responsible for.
		return
	}
	colony.FighterHangar = append(colony.FighterHangar, shipID)
	s.UpdateColony(colony)
}

type commissionError string

func (e commissionError) Error() string { return string(e) }

const (
	errInvalidHouse         = commissionError("invalid submitting house")
	errTechLocked           = commissionError("required tech level not met")
	errNotOwned             = commissionError("colony not owned by submitting house")
	errInvalidFacility      = commissionError("facility does not belong to colony")
	errInsufficientFunds    = commissionError("insufficient treasury")
	errDockCapacityExceeded = commissionError("dock capacity exceeded")
)
