package economy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicoberrocal/nomarch/config"
	"github.com/nicoberrocal/nomarch/economy"
	"github.com/nicoberrocal/nomarch/ids"
	"github.com/nicoberrocal/nomarch/state"
)

// TestComputeGCO_TwoTermFormula mirrors spec.md §8 S3 (PU=500, IU=100,
// EL=2, CST=2): GCO = PU*RAW + IU*ELMod*CSTMod*(1+ProdGrowth), with RAW
// applying only to the population term.
func TestComputeGCO_TwoTermFormula(t *testing.T) {
	econ := config.EconomyConfig{
		RawIndexByRating: map[string]float64{"Average": 1.0},
		ELModPerLevel:    0.05,
		CSTModPerLevel:   0.10,
	}
	c := state.Colony{Population: 500, IU: 100}
	sys := state.System{Resource: state.ResourceAverage}
	tech := state.TechLevels{EL: 2, CST: 2}

	got := economy.ComputeGCO(econ, c, sys, tech)
	want := 500.0*1.0 + 100.0*1.05*1.10
	assert.InDelta(t, want, got, 0.001)
}

func TestComputeGCO_BlockadeAppliesFactor(t *testing.T) {
	econ := config.EconomyConfig{
		RawIndexByRating:  map[string]float64{"Average": 1.0},
		ELModPerLevel:     0.05,
		CSTModPerLevel:    0.10,
		BlockadeGCOFactor: 0.4,
	}
	c := state.Colony{Population: 500, IU: 100, Blockaded: true}
	sys := state.System{Resource: state.ResourceAverage}
	tech := state.TechLevels{EL: 2, CST: 2}

	got := economy.ComputeGCO(econ, c, sys, tech)
	unblockaded := 500.0*1.0 + 100.0*1.05*1.10
	assert.InDelta(t, unblockaded*0.4, got, 0.001)
}

func TestGrowPopulation_ClampsToCapacity(t *testing.T) {
	got := economy.GrowPopulation(1490, 1500, 0.1)
	assert.LessOrEqual(t, got, int64(1500))
}

func TestGrowPopulation_NeverNegative(t *testing.T) {
	got := economy.GrowPopulation(0, 1500, 0.1)
	assert.GreaterOrEqual(t, got, int64(0))
}

// TestResolveIncome_DeductsUpkeep mirrors spec.md §8 S1: a house with one
// Destroyer (2 PP) and one ground Army (2 PP) pays both out of treasury
// during Income, not Maintenance.
func TestResolveIncome_DeductsUpkeep(t *testing.T) {
	s := state.New()
	cfg := config.Default()
	h := s.AddHouse(state.House{Treasury: 100})
	sys := s.AddSystem(state.System{Class: state.PlanetAverage, Resource: state.ResourceAverage})
	cid := s.AddColony(state.Colony{Owner: h, System: sys})
	s.AddShip(state.Ship{Owner: h, Class: string(config.ShipDestroyer)})
	s.AddGroundUnit(state.GroundUnit{Colony: cid, Class: string(config.GroundArmy)})

	economy.ResolveIncome(s, cfg, h)

	house, _ := s.House(h)
	wantUpkeep := int64(cfg.Ships[config.ShipDestroyer].Maintenance + cfg.GroundUnits[config.GroundArmy].Upkeep)
	assert.EqualValues(t, 100-wantUpkeep, house.Treasury)
}

func TestTotalUpkeep_SumsShipsFacilitiesAndGroundUnits(t *testing.T) {
	s := state.New()
	cfg := config.Default()
	h := s.AddHouse(state.House{})
	sys := s.AddSystem(state.System{Class: state.PlanetAverage, Resource: state.ResourceAverage})
	cid := s.AddColony(state.Colony{Owner: h, System: sys})
	fid := s.AddFacility(state.Facility{Colony: cid, Kind: state.FacilityKindNeoria, Class: string(config.FacilityShipyard)})
	c, _ := s.Colony(cid)
	c.FacilityIDs = append(c.FacilityIDs, fid)
	s.UpdateColony(c)
	s.AddShip(state.Ship{Owner: h, Class: string(config.ShipCorvette)})
	s.AddGroundUnit(state.GroundUnit{Colony: cid, Class: string(config.GroundMarine)})

	got := economy.TotalUpkeep(s, cfg, h)
	want := int64(cfg.Ships[config.ShipCorvette].Maintenance +
		cfg.Facilities[config.FacilityShipyard].Upkeep +
		cfg.GroundUnits[config.GroundMarine].Upkeep)
	assert.Equal(t, want, got)
}

func TestPlanShortfall_NoPlanWhenTreasuryNonNegative(t *testing.T) {
	s := state.New()
	h := s.AddHouse(state.House{Treasury: 10})
	_, ok := economy.PlanShortfall(s, config.Default(), h)
	assert.False(t, ok)
}

func TestPlanShortfall_CancelsConstructionFirst(t *testing.T) {
	s := state.New()
	cfg := config.Default()
	h := s.AddHouse(state.House{Treasury: -50})
	sys := s.AddSystem(state.System{Class: state.PlanetAverage, Resource: state.ResourceAverage})
	cid := s.AddColony(state.Colony{Owner: h, System: sys, IU: 10})
	s.AddConstruction(state.ConstructionProject{Colony: cid, CostPaid: 60, Owner: h})

	plan, ok := economy.PlanShortfall(s, cfg, h)
	require.True(t, ok)
	assert.Len(t, plan.CancelConstructions, 1)
	assert.Equal(t, 1, plan.ConsecutiveShortfall)
}

// TestPlanShortfall_CancelsResearchAllocation covers spec.md §4.4 step 2:
// any TRP allocation submitted this turn is forfeited during a cascade.
func TestPlanShortfall_CancelsResearchAllocation(t *testing.T) {
	s := state.New()
	cfg := config.Default()
	h := s.AddHouse(state.House{Treasury: -5, ResearchAllocation: map[string]float64{"WEP": 1.0}})

	plan, ok := economy.PlanShortfall(s, cfg, h)
	require.True(t, ok)
	assert.True(t, plan.CancelResearch)

	economy.ApplyShortfall(s, plan)
	house, _ := s.House(h)
	assert.Nil(t, house.ResearchAllocation)
}

// TestPlanShortfall_DisbandsFleetsByPriorityTier covers spec.md §4.4 step 3:
// scout-only fleets (priority 100) disband before generic combat fleets
// (500), which disband before colonization/auxiliary fleets (900),
// regardless of FleetID order.
func TestPlanShortfall_DisbandsFleetsByPriorityTier(t *testing.T) {
	s := state.New()
	cfg := config.Default()
	h := s.AddHouse(state.House{Treasury: -1000})
	sys := s.AddSystem(state.System{})

	mkFleet := func(sqType state.SquadronType) ids.FleetID {
		fid := s.AddFleet(state.Fleet{Owner: h, Location: sys})
		shipID := s.AddShip(state.Ship{Owner: h, Class: string(config.ShipScout)})
		sqID := s.AddSquadron(state.Squadron{Owner: h, Fleet: fid, Flagship: shipID, Type: sqType})
		ship, _ := s.Ship(shipID)
		ship.Squadron = sqID
		s.UpdateShip(ship)
		return fid
	}

	auxFleet := mkFleet(state.SquadronAuxiliary)
	combatFleet := mkFleet(state.SquadronCombat)
	scoutFleet := mkFleet(state.SquadronIntel)

	plan, ok := economy.PlanShortfall(s, cfg, h)
	require.True(t, ok)
	require.Len(t, plan.DisbandFleets, 3)
	assert.Equal(t, []ids.FleetID{scoutFleet, combatFleet, auxFleet}, plan.DisbandFleets)
}

// TestPlanShortfall_FleetSalvageIsQuarterBuildCost covers spec.md §4.4 step
// 3's "25% of cumulative build cost" salvage rule.
func TestPlanShortfall_FleetSalvageIsQuarterBuildCost(t *testing.T) {
	s := state.New()
	cfg := config.Default()
	h := s.AddHouse(state.House{Treasury: -1})
	sys := s.AddSystem(state.System{})
	fid := s.AddFleet(state.Fleet{Owner: h, Location: sys})
	shipID := s.AddShip(state.Ship{Owner: h, Class: string(config.ShipDestroyer)})
	sqID := s.AddSquadron(state.Squadron{Owner: h, Fleet: fid, Flagship: shipID, Type: state.SquadronCombat})
	ship, _ := s.Ship(shipID)
	ship.Squadron = sqID
	s.UpdateShip(ship)

	plan, ok := economy.PlanShortfall(s, cfg, h)
	require.True(t, ok)
	require.Len(t, plan.DisbandFleets, 1)
	wantSalvage := int64(cfg.Ships[config.ShipDestroyer].BuildCost) / 4
	assert.Equal(t, wantSalvage, plan.Salvage)
}

// TestPlanShortfall_StripsInfrastructureInFixedOrder covers spec.md §4.4 step
// 4's order and per-unit salvage once fleets alone can't cover the gap.
func TestPlanShortfall_StripsInfrastructureInFixedOrder(t *testing.T) {
	s := state.New()
	cfg := config.Default()
	h := s.AddHouse(state.House{Treasury: -130})
	sys := s.AddSystem(state.System{Class: state.PlanetAverage, Resource: state.ResourceAverage})
	cid := s.AddColony(state.Colony{Owner: h, System: sys, IU: 3})
	spaceportID := s.AddFacility(state.Facility{Colony: cid, Kind: state.FacilityKindNeoria, Class: string(config.FacilitySpaceport)})

	plan, ok := economy.PlanShortfall(s, cfg, h)
	require.True(t, ok)
	require.Len(t, plan.StripIU, 1)
	assert.Equal(t, int64(3), plan.StripIU[0].Units)
	require.Len(t, plan.StripFacilities, 1)
	assert.Equal(t, spaceportID, plan.StripFacilities[0])
	assert.Equal(t, int64(3)+125, plan.Salvage)
}

func TestResolveIncome_BlockadedColonyDeductsPrestige(t *testing.T) {
	s := state.New()
	cfg := config.Default()
	h := s.AddHouse(state.House{Treasury: 0, Prestige: 10, TaxRate: 0.25})
	sys := s.AddSystem(state.System{Class: state.PlanetAverage, Resource: state.ResourceAverage})
	s.AddColony(state.Colony{Owner: h, System: sys, Population: 500, IU: 100, TaxRate: 0.25, Blockaded: true})

	economy.ResolveIncome(s, cfg, h)

	house, _ := s.House(h)
	assert.EqualValues(t, 10+int64(cfg.Prestige.BlockadePerColony), house.Prestige)
}

func TestApplyShortfall_ZeroesTreasuryAndAppliesPrestige(t *testing.T) {
	s := state.New()
	cfg := config.Default()
	h := s.AddHouse(state.House{Treasury: -50, Prestige: 10})

	plan, ok := economy.PlanShortfall(s, cfg, h)
	require.True(t, ok)
	economy.ApplyShortfall(s, plan)

	house, _ := s.House(h)
	assert.EqualValues(t, 0, house.Treasury) // no liquidatable assets, so salvage=0
	assert.Equal(t, 1, house.ConsecutiveShortfalls)
}

// TestApplyShortfall_CreditsSalvageToTreasury covers spec.md §4.4 step 1 and
// §8 invariant 5: during a cascade turn treasury' = salvage, not 0.
func TestApplyShortfall_CreditsSalvageToTreasury(t *testing.T) {
	s := state.New()
	cfg := config.Default()
	h := s.AddHouse(state.House{Treasury: -1})
	sys := s.AddSystem(state.System{})
	fid := s.AddFleet(state.Fleet{Owner: h, Location: sys})
	shipID := s.AddShip(state.Ship{Owner: h, Class: string(config.ShipDestroyer)})
	sqID := s.AddSquadron(state.Squadron{Owner: h, Fleet: fid, Flagship: shipID, Type: state.SquadronCombat})
	ship, _ := s.Ship(shipID)
	ship.Squadron = sqID
	s.UpdateShip(ship)

	plan, ok := economy.PlanShortfall(s, cfg, h)
	require.True(t, ok)
	require.Greater(t, plan.Salvage, int64(0))

	salvage := economy.ApplyShortfall(s, plan)
	house, _ := s.House(h)
	assert.Equal(t, salvage, house.Treasury)
	assert.Equal(t, plan.Salvage, house.Treasury)
}

var _ = ids.Null
