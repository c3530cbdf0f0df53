// Package economy implements the Income phase: Gross Colony Output, tax
// collection, logistic population growth, and the maintenance-shortfall
// cascade (spec.md §4.4). It generalizes the teacher repo's per-ship
// "compute effective stat from base + tech modifiers" pattern
// (ships/compute.go's ComputeLoadout) into a per-colony output computation.
package economy

import (
	"math"
	"sort"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/state"
)

// ColonyOutput is the per-colony result of GCO computation, prior to tax
// split (spec.md §4.4).
type ColonyOutput struct {
	Colony ids.ColonyID
	GCO    float64
	Tax    int64
	Net    int64
}

// ComputeGCO returns a colony's Gross Colony Output:
//
//	GCO = (PU * RAW) + (IU * ELMod * CSTMod * (1 + ProdGrowth))
//
// where ELMod = 1 + ELModPerLevel*(EL-1), CSTMod = 1 + CSTModPerLevel*(CST-1),
// per spec.md §4.4. RAW comes from the colony's system resource rating and
// applies only to the population term, not the industrial term; the whole
// sum is then reduced by econ.BlockadeGCOFactor if the colony is blockaded
// (spec.md §8 S3).
func ComputeGCO(econ config.EconomyConfig, c state.Colony, sys state.System, tech state.TechLevels) float64 {
	raw := econ.RawIndexByRating[string(sys.Resource)]
	elMod := 1 + econ.ELModPerLevel*float64(tech.EL-1)
	cstMod := 1 + econ.CSTModPerLevel*float64(tech.CST-1)
	gco := float64(c.Population)*raw + float64(c.IU)*elMod*cstMod*(1+econ.ProdGrowthRate)
	if c.Blockaded {
		gco *= econ.BlockadeGCOFactor
	}
	return gco
}

// SplitTax returns (tax, net) for a given GCO and the colony's own TaxRate;
// tax goes to the owning house's treasury, net accrues... nowhere further —
// spec.md §4.4 treats GCO entirely as taxable income, there is no colony-kept
// remainder modeled.
func SplitTax(gco float64, taxRate float64) (tax int64, net int64) {
	t := int64(math.Round(gco * taxRate))
	return t, int64(math.Round(gco)) - t
}

// GrowPopulation applies one turn of logistic growth:
//
//	P' = P + r*P*(1 - P/K)
//
// clamped to [0, K], per spec.md §4.4.
func GrowPopulation(pop, capacity int64, rate float64) int64 {
	if capacity <= 0 {
		return pop
	}
	p := float64(pop)
	k := float64(capacity)
	grown := p + rate*p*(1-p/k)
	if grown < 0 {
		grown = 0
	}
	if grown > k {
		grown = k
	}
	return int64(math.Round(grown))
}

// ResolveIncome runs the Income phase for every colony of house h: computes
// GCO, splits tax into the house treasury, grows population, and then pays
// upkeep for every ship/facility/ground unit the house owns (spec.md §4.4:
// "the engine ... pays maintenance"). Colonies are processed in ascending
// ColonyID order (spec.md §5 determinism guarantee). Returns the total tax
// collected; treasury ends up negative here, not in Maintenance, whenever
// tax_income + prior treasury falls short of total upkeep — that negative
// treasury is what triggers PlanShortfall during the Maintenance phase.
func ResolveIncome(s *state.State, cfg config.GameConfig, h ids.HouseID) int64 {
	house, ok := s.House(h)
	if !ok {
		return 0
	}
	colonyIDs := s.ColoniesOwnedBy(h)
	sort.Slice(colonyIDs, func(i, j int) bool { return colonyIDs[i] < colonyIDs[j] })

	var totalTax int64
	var blockadePenalty int64
	for _, cid := range colonyIDs {
		c, ok := s.Colony(cid)
		if !ok {
			continue
		}
		sys, ok := s.System(c.System)
		if !ok {
			continue
		}
		gco := ComputeGCO(cfg.Economy, c, sys, house.Tech)
		tax, _ := SplitTax(gco, c.TaxRate)
		totalTax += tax
		if c.Blockaded {
			blockadePenalty += int64(cfg.Prestige.BlockadePerColony)
		}

		capacity := int64(statePlanetCapacity(c, sys))
		c.Population = GrowPopulation(c.Population, capacity, cfg.Economy.PopGrowthRate)
		s.UpdateColony(c)
	}

	house.Treasury += totalTax
	house.Treasury -= TotalUpkeep(s, cfg, h)
	house.Prestige += blockadePenalty
	s.UpdateHouse(house)
	return totalTax
}

func statePlanetCapacity(c state.Colony, sys state.System) int {
	return state.PlanetCapacity[sys.Class]
}

// TotalUpkeep sums the per-turn PP upkeep of every ship, facility, and
// ground unit house h owns (spec.md §6's ship/facility/ground_unit config
// sections each carry a maintenance/upkeep field; spec.md §4.4 charges it
// against treasury every Income phase).
func TotalUpkeep(s *state.State, cfg config.GameConfig, h ids.HouseID) int64 {
	var total int64
	for _, sh := range s.AllShips() {
		if sh.Owner != h {
			continue
		}
		if spec, ok := cfg.Ships[config.ShipClass(sh.Class)]; ok {
			total += int64(spec.Maintenance)
		}
	}
	for _, cid := range s.ColoniesOwnedBy(h) {
		c, ok := s.Colony(cid)
		if !ok {
			continue
		}
		for _, fid := range c.FacilityIDs {
			fac, ok := s.Facility(fid)
			if !ok {
				continue
			}
			if spec, ok := cfg.Facilities[config.FacilityClass(fac.Class)]; ok {
				total += int64(spec.Upkeep)
			}
		}
		for _, gid := range s.GroundUnitsAt(cid) {
			gu, ok := s.GroundUnit(gid)
			if !ok {
				continue
			}
			if spec, ok := cfg.GroundUnits[config.GroundUnitClass(gu.Class)]; ok {
				total += int64(spec.Upkeep)
			}
		}
	}
	return total
}

// Fleet disband priority tiers (spec.md §4.4 step 3).
const (
	priorityScoutOnly     = 100
	priorityGenericCombat = 500
	priorityColonyAux     = 900
)

// Per-unit salvage values for the fixed infrastructure-stripping order
// (spec.md §4.4 step 4).
const (
	salvageIU              int64 = 1
	salvageGroundBattery   int64 = 25
	salvageArmy            int64 = 4
	salvageMarine          int64 = 6
	salvagePlanetaryShield int64 = 25
)

// IUStrip records how many IU were stripped from a single colony.
type IUStrip struct {
	Colony ids.ColonyID
	Units  int64
}

// ShortfallPlan is the pure-plan half of the maintenance-shortfall cascade
// (spec.md §4.4): computed without mutating State, then handed to Apply.
type ShortfallPlan struct {
	House               ids.HouseID
	Shortfall           int64 // treasury deficit, positive
	CancelConstructions []ids.ConstructionProjectID
	CancelResearch      bool          // house's ResearchAllocation forfeited
	DisbandFleets       []ids.FleetID // priority order: tier, then ascending FleetID
	StripIU             []IUStrip
	StripFacilities     []ids.FacilityID   // order: Spaceports -> Shipyards -> Starbases
	StripGroundUnits    []ids.GroundUnitID // order: Batteries -> Armies -> Marines -> Shields

	Salvage              int64 // total PP recovered across steps 3-4
	ConsecutiveShortfall int
	PrestigeDelta        int
}

// fleetPriority classifies a fleet for disband ordering (spec.md §4.4 step 3):
// scout-only (every squadron Intel) -> 100, generic combat (any
// Combat/Fighter squadron) -> 500, colonization/auxiliary (Expansion/
// Auxiliary squadrons, no combat) -> 900.
func fleetPriority(s *state.State, fleet ids.FleetID) int {
	sqIDs := s.SquadronsOf(fleet)
	if len(sqIDs) == 0 {
		return priorityGenericCombat
	}
	hasCombat, hasColonyAux, allIntel := false, false, true
	for _, sqID := range sqIDs {
		sq, ok := s.Squadron(sqID)
		if !ok {
			continue
		}
		switch sq.Type {
		case state.SquadronIntel:
		case state.SquadronCombat, state.SquadronFighter:
			hasCombat = true
			allIntel = false
		case state.SquadronExpansion, state.SquadronAuxiliary:
			hasColonyAux = true
			allIntel = false
		default:
			allIntel = false
		}
	}
	switch {
	case allIntel:
		return priorityScoutOnly
	case hasCombat:
		return priorityGenericCombat
	case hasColonyAux:
		return priorityColonyAux
	default:
		return priorityGenericCombat
	}
}

// fleetBuildCost sums the construction PC of every ship currently in fleet
// (spec.md §4.4 step 3: disband salvage is 25% of cumulative build cost).
func fleetBuildCost(s *state.State, cfg config.GameConfig, fleet ids.FleetID) int64 {
	var total int64
	for _, sqID := range s.SquadronsOf(fleet) {
		for _, shipID := range s.ShipsOf(sqID) {
			ship, ok := s.Ship(shipID)
			if !ok {
				continue
			}
			if spec, ok := cfg.Ships[config.ShipClass(ship.Class)]; ok {
				total += int64(spec.BuildCost)
			}
		}
	}
	return total
}

// fleetsOwnedBy collects the distinct fleet IDs with at least one squadron
// owned by h, ordered by disband priority tier then ascending FleetID.
func fleetsOwnedBy(s *state.State, h ids.HouseID) []ids.FleetID {
	seen := make(map[ids.FleetID]bool)
	var fleetIDs []ids.FleetID
	for _, sqID := range s.SquadronsOwnedBy(h) {
		sq, ok := s.Squadron(sqID)
		if !ok || seen[sq.Fleet] {
			continue
		}
		seen[sq.Fleet] = true
		fleetIDs = append(fleetIDs, sq.Fleet)
	}
	sort.Slice(fleetIDs, func(i, j int) bool {
		pi, pj := fleetPriority(s, fleetIDs[i]), fleetPriority(s, fleetIDs[j])
		if pi != pj {
			return pi < pj
		}
		return fleetIDs[i] < fleetIDs[j]
	})
	return fleetIDs
}

// PlanShortfall computes what a negative treasury forces the house to
// give up this turn, without mutating State (spec.md §4.4 step order:
// cancel construction/research -> disband fleets by priority tier -> strip
// infrastructure in fixed order -> prestige penalty scaling with
// ConsecutiveShortfalls).
func PlanShortfall(s *state.State, cfg config.GameConfig, h ids.HouseID) (ShortfallPlan, bool) {
	house, ok := s.House(h)
	if !ok || house.Treasury >= 0 {
		return ShortfallPlan{}, false
	}

	plan := ShortfallPlan{
		House:                h,
		Shortfall:            -house.Treasury,
		ConsecutiveShortfall: house.ConsecutiveShortfalls + 1,
	}

	remaining := plan.Shortfall

	// Step 2: cancel construction projects (highest ID, most recently
	// started, first; cost paid so far is sunk) and forfeit this turn's
	// research allocation.
	for _, cid := range s.ColoniesOwnedBy(h) {
		projIDs := s.ConstructionsAt(cid)
		for i := len(projIDs) - 1; i >= 0; i-- {
			proj, ok := s.Construction(projIDs[i])
			if !ok {
				continue
			}
			plan.CancelConstructions = append(plan.CancelConstructions, proj.ID)
		}
	}
	if len(house.ResearchAllocation) > 0 {
		plan.CancelResearch = true
	}

	// Step 3: disband fleets by priority tier, ascending FleetID within a
	// tier; each fleet yields 25% of its cumulative build cost as salvage.
	for _, fid := range fleetsOwnedBy(s, h) {
		if remaining <= 0 {
			break
		}
		plan.DisbandFleets = append(plan.DisbandFleets, fid)
		fleetSalvage := fleetBuildCost(s, cfg, fid) / 4
		plan.Salvage += fleetSalvage
		remaining -= fleetSalvage
	}

	// Step 4: strip infrastructure in fixed order with fixed per-unit
	// salvage: IU -> Spaceports -> Shipyards -> Starbases -> Ground
	// Batteries -> Armies -> Marines -> Planetary Shields.
	if remaining > 0 {
		for _, cid := range s.ColoniesOwnedBy(h) {
			if remaining <= 0 {
				break
			}
			c, ok := s.Colony(cid)
			if !ok || c.IU <= 0 {
				continue
			}
			units := c.IU
			if needed := (remaining + salvageIU - 1) / salvageIU; units > needed {
				units = needed
			}
			plan.StripIU = append(plan.StripIU, IUStrip{Colony: cid, Units: units})
			plan.Salvage += units * salvageIU
			remaining -= units * salvageIU
		}
	}
	if remaining > 0 {
		remaining = stripFacilityClass(s, h, config.FacilitySpaceport, 125, &plan, remaining)
	}
	if remaining > 0 {
		remaining = stripFacilityClass(s, h, config.FacilityShipyard, 250, &plan, remaining)
	}
	if remaining > 0 {
		remaining = stripFacilityClass(s, h, config.FacilityStarbase, 300, &plan, remaining)
	}
	if remaining > 0 {
		remaining = stripGroundUnitClass(s, h, config.GroundBattery, salvageGroundBattery, &plan, remaining)
	}
	if remaining > 0 {
		remaining = stripGroundUnitClass(s, h, config.GroundArmy, salvageArmy, &plan, remaining)
	}
	if remaining > 0 {
		remaining = stripGroundUnitClass(s, h, config.GroundMarine, salvageMarine, &plan, remaining)
	}
	if remaining > 0 {
		remaining = stripGroundUnitClass(s, h, config.GroundPlanetaryShield, salvagePlanetaryShield, &plan, remaining)
	}

	idx := plan.ConsecutiveShortfall - 1
	bands := cfg.Prestige.ShortfallPenaltyByConsecutive
	if len(bands) == 0 {
		plan.PrestigeDelta = 0
	} else if idx >= len(bands) {
		plan.PrestigeDelta = bands[len(bands)-1]
	} else {
		plan.PrestigeDelta = bands[idx]
	}

	return plan, true
}

// stripFacilityClass appends every colony-ascending facility of class cls
// owned by h to plan.StripFacilities until remaining is covered, crediting
// salvage PP per unit.
func stripFacilityClass(s *state.State, h ids.HouseID, cls config.FacilityClass, salvagePerUnit int64, plan *ShortfallPlan, remaining int64) int64 {
	for _, cid := range s.ColoniesOwnedBy(h) {
		if remaining <= 0 {
			break
		}
		for _, fid := range append(s.NeoriasAt(cid), s.KastrasAt(cid)...) {
			if remaining <= 0 {
				break
			}
			fac, ok := s.Facility(fid)
			if !ok || config.FacilityClass(fac.Class) != cls {
				continue
			}
			plan.StripFacilities = append(plan.StripFacilities, fid)
			plan.Salvage += salvagePerUnit
			remaining -= salvagePerUnit
		}
	}
	return remaining
}

// stripGroundUnitClass appends every colony-ascending ground unit of class
// cls owned by h to plan.StripGroundUnits until remaining is covered.
func stripGroundUnitClass(s *state.State, h ids.HouseID, cls config.GroundUnitClass, salvagePerUnit int64, plan *ShortfallPlan, remaining int64) int64 {
	for _, cid := range s.ColoniesOwnedBy(h) {
		if remaining <= 0 {
			break
		}
		for _, gid := range s.GroundUnitsAt(cid) {
			if remaining <= 0 {
				break
			}
			gu, ok := s.GroundUnit(gid)
			if !ok || config.GroundUnitClass(gu.Class) != cls {
				continue
			}
			plan.StripGroundUnits = append(plan.StripGroundUnits, gid)
			plan.Salvage += salvagePerUnit
			remaining -= salvagePerUnit
		}
	}
	return remaining
}

// ApplyShortfall performs the mutations PlanShortfall computed: cancels
// construction and research, disbands fleets, strips IU/facilities/ground
// units, then sets the house's treasury to the salvage collected and applies
// the prestige penalty (spec.md §4.4 step 1: "treasury becomes 0; any
// salvage collected in later steps is added back" — equivalently,
// treasury' = salvage).
func ApplyShortfall(s *state.State, plan ShortfallPlan) int64 {
	for _, cid := range plan.CancelConstructions {
		s.DelConstruction(cid)
	}

	for _, fid := range plan.DisbandFleets {
		for _, sqID := range s.SquadronsOf(fid) {
			for _, shipID := range s.ShipsOf(sqID) {
				s.DelShip(shipID)
			}
			s.DelSquadron(sqID)
		}
		s.DelFleet(fid)
	}

	for _, strip := range plan.StripIU {
		c, ok := s.Colony(strip.Colony)
		if !ok {
			continue
		}
		c.IU -= strip.Units
		if c.IU < 0 {
			c.IU = 0
		}
		s.UpdateColony(c)
	}

	for _, fid := range plan.StripFacilities {
		s.DelFacility(fid)
	}
	for _, gid := range plan.StripGroundUnits {
		s.DelGroundUnit(gid)
	}

	house, ok := s.House(plan.House)
	if !ok {
		return plan.Salvage
	}
	house.Treasury = plan.Salvage
	if plan.CancelResearch {
		house.ResearchAllocation = nil
	}
	house.Prestige += int64(plan.PrestigeDelta)
	house.ConsecutiveShortfalls = plan.ConsecutiveShortfall
	if house.Prestige < 0 {
		house.ConsecutiveNegativePrestige++
	} else {
		house.ConsecutiveNegativePrestige = 0
	}
	s.UpdateHouse(house)
	return plan.Salvage
}
